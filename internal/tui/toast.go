package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wavefeed/wavefeed/internal/feed"
)

const toastDuration = 3 * time.Second

// toast is one transient notice shown above the status bar.
type toast struct {
	id    int
	text  string
	level feed.Level
}

// toastInbox collects notices raised synchronously during an update
// pass, such as the controller reporting a failed load-more. The model
// drains it after every controller call. Shared by pointer so copies of
// the model see the same inbox.
type toastInbox struct {
	pending []toast
}

func (in *toastInbox) push(text string, level feed.Level) {
	in.pending = append(in.pending, toast{text: text, level: level})
}

func (in *toastInbox) drain() []toast {
	out := in.pending
	in.pending = nil
	return out
}

// pushToast assigns the toast an id, queues it, and returns the expiry
// command that removes it again.
func (m *Model) pushToast(t toast) tea.Cmd {
	m.nextToastID++
	t.id = m.nextToastID
	m.toasts = append(m.toasts, t)
	id := t.id
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *Model) expireToast(id int) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// drainInbox converts queued controller notices into visible toasts.
func (m *Model) drainInbox() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.inbox.drain() {
		cmds = append(cmds, m.pushToast(t))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	var out string
	for i, t := range m.toasts {
		style := m.styles.ToastInfo
		switch t.level {
		case feed.LevelSuccess:
			style = m.styles.ToastSuccess
		case feed.LevelError:
			style = m.styles.ToastError
		}
		if i > 0 {
			out += "\n"
		}
		out += style.Render(t.text)
	}
	return out
}
