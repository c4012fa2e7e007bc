package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wavefeed/wavefeed/internal/feed"
	"github.com/wavefeed/wavefeed/internal/i18n"
)

// adminMenu is the per-card admin action list. It currently carries a
// single real action, password reset for the activity's owner, plus
// cancel.
type adminMenu struct {
	item    feed.Item
	styles  Styles
	entries []string
	cursor  int
}

func newAdminMenu(item feed.Item, styles Styles) *adminMenu {
	return &adminMenu{
		item:   item,
		styles: styles,
		entries: []string{
			i18n.T("admin.resetPassword", "Send password reset"),
			i18n.T("admin.cancel", "Cancel"),
		},
	}
}

func (m *adminMenu) Init() tea.Cmd { return nil }

func (m *adminMenu) update(msg tea.Msg) (overlayModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return m, closeOverlay

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case "enter":
		if m.cursor == 0 {
			userID := m.item.MetaValue("user_id")
			if userID == "" {
				userID = "me"
			}
			return m, func() tea.Msg { return resetPasswordMsg{userID: userID} }
		}
		return m, closeOverlay
	}
	return m, nil
}

func (m *adminMenu) viewContent() string {
	title := m.styles.Header.Render(i18n.T("admin.title", "Admin"))

	selected := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("212")).
		Padding(0, 1)
	unselected := lipgloss.NewStyle().
		Foreground(lipgloss.Color("247")).
		Padding(0, 1)

	body := title + "\n\n"
	for i, entry := range m.entries {
		style := unselected
		if i == m.cursor {
			style = selected
		}
		body += style.Render(entry) + "\n"
	}
	return m.styles.Overlay.Render(body)
}
