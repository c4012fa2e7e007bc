package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wavefeed/wavefeed/internal/api"
	"github.com/wavefeed/wavefeed/internal/cards"
	"github.com/wavefeed/wavefeed/internal/feed"
	"github.com/wavefeed/wavefeed/internal/i18n"
	"github.com/wavefeed/wavefeed/internal/uilog"
)

const fetchTimeout = 15 * time.Second

// loadMoreMargin is how many cards before the end of the view the next
// page fetch is kicked off, so scrolling rarely hits a visible wall.
const loadMoreMargin = 3

// filterCycle is the order the kind filter steps through on "f". The
// zero Kind means no filter.
var filterCycle = []feed.Kind{
	"",
	feed.KindGenerationCompleted,
	feed.KindTemplateUsed,
	feed.KindHistoryEntry,
	feed.KindErrorOccurred,
}

// Model is the activity feed page.
type Model struct {
	client *api.Client
	ctrl   *feed.Controller
	inbox  *toastInbox
	now    func() time.Time

	keys   feedKeyMap
	styles Styles

	vp     viewport.Model
	spin   spinner.Model
	search textinput.Model

	searching bool
	filterIdx int

	selected   int
	yoffset    int
	offsets    []int
	heights    []int
	totalLines int

	promos []promoTile

	overlay overlayModel

	toasts      []toast
	nextToastID int

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the feed page backed by client, with pages of
// pageSize items.
func NewModel(client *api.Client, pageSize int) Model {
	inbox := &toastInbox{}
	store := feed.NewStore(pageSize)
	ctrl := feed.NewController(store, feed.WithNotifier(feed.NotifierFunc(inbox.push)))

	styles := DefaultStyles()
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("81"))),
	)

	ti := textinput.New()
	ti.Placeholder = i18n.T("search.placeholder", "Search activities...")
	ti.CharLimit = 120

	return Model{
		client: client,
		ctrl:   ctrl,
		inbox:  inbox,
		now:    time.Now,
		keys:   defaultFeedKeyMap(),
		styles: styles,
		spin:   s,
		search: ti,
	}
}

func (m Model) Init() tea.Cmd {
	f, ok := m.ctrl.BeginRefresh()
	if !ok {
		return m.spin.Tick
	}
	return tea.Batch(m.fetchCmd(f), m.spin.Tick)
}

// fetchCmd runs one page request off the update loop.
func (m Model) fetchCmd(f feed.Fetch) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		items, err := client.ListActivities(ctx, f.Page, f.Limit)
		return activitiesMsg{fetch: f, items: items, err: err}
	}
}

func (m Model) resetPasswordCmd(userID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return passwordResetDoneMsg{err: client.ResetPassword(ctx, userID)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New()
			m.ready = true
		}
		m.vp.SetWidth(msg.Width)
		m.vp.SetHeight(m.bodyHeight())
		m.rebuild()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.overlay != nil {
			overlay, cmd := m.overlay.update(msg)
			m.overlay = overlay
			cmds = append(cmds, cmd)
		}
		if m.ctrl.Fetching() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case activitiesMsg:
		m.ctrl.Complete(msg.fetch, msg.items, msg.err)
		toastCmd := m.drainInbox()
		if msg.fetch.Replace {
			m.selected = 0
			m.yoffset = 0
		}
		m.clampSelection()
		m.rebuild()
		m.ensureVisible()
		return m, toastCmd

	case toastExpiredMsg:
		m.expireToast(msg.id)
		return m, nil

	case passwordResetDoneMsg:
		if msg.err != nil {
			cmd := m.pushToast(toast{text: msg.err.Error(), level: feed.LevelError})
			return m, cmd
		}
		cmd := m.pushToast(toast{
			text:  i18n.T("toast.passwordResetSent", "Password reset email sent"),
			level: feed.LevelSuccess,
		})
		return m, cmd

	case templateAppliedMsg:
		m.overlay = nil
		added := m.ctrl.AddActivity(feed.Item{
			Kind:        feed.KindTemplateUsed,
			Title:       i18n.Tf("feed.templateUsedTitle", "Used template %s", msg.template.Name),
			Description: msg.template.Description,
			TemplateID:  msg.template.ID,
			Meta:        map[string]string{"template_name": msg.template.Name},
		})
		uilog.Log.Info("template applied", "template", msg.template.ID, "activity", added.ID)
		m.selected = 0
		m.yoffset = 0
		m.rebuild()
		m.ensureVisible()
		cmd := m.pushToast(toast{
			text:  i18n.Tf("toast.templateApplied", "Template %s applied", msg.template.Name),
			level: feed.LevelSuccess,
		})
		return m, cmd

	case resetPasswordMsg:
		m.overlay = nil
		return m, m.resetPasswordCmd(msg.userID)

	case closeOverlayMsg:
		m.overlay = nil
		return m, nil
	}

	if m.overlay != nil {
		overlay, cmd := m.overlay.update(msg)
		m.overlay = overlay
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.updateKeys(keyMsg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		m.filterIdx = (m.filterIdx + 1) % len(filterCycle)
		m.ctrl.SetKind(filterCycle[m.filterIdx])
		m.clampSelection()
		m.rebuild()
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveSelection(-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveSelection(1)

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.rebuild()
		m.yoffset = 0
		m.vp.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if n := m.ctrl.Store().ViewLen(); n > 0 {
			m.selected = n - 1
		}
		m.rebuild()
		m.ensureVisible()
		cmd := m.maybeLoadMore()
		return m, cmd

	case key.Matches(msg, m.keys.Details):
		if m.ctrl.State() == feed.StateError {
			return m.refresh()
		}
		cmd := m.triggerAction(cards.ActionDetails)
		return m, cmd

	case key.Matches(msg, m.keys.Play):
		cmd := m.triggerAction(cards.ActionPlay)
		return m, cmd

	case key.Matches(msg, m.keys.Promote):
		cmd := m.triggerAction(cards.ActionPromote)
		return m, cmd

	case key.Matches(msg, m.keys.Apply):
		cmd := m.triggerAction(cards.ActionApplyTemplate)
		return m, cmd

	case key.Matches(msg, m.keys.Admin):
		cmd := m.triggerAction(cards.ActionAdminMenu)
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		if !m.ctrl.Query().IsZero() {
			m.search.SetValue("")
			m.filterIdx = 0
			m.ctrl.SetSearch("")
			m.ctrl.SetKind("")
			m.clampSelection()
			m.rebuild()
			m.ensureVisible()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.ctrl.SetSearch("")
		m.clampSelection()
		m.rebuild()
		m.ensureVisible()
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearch(m.search.Value())
	m.clampSelection()
	m.rebuild()
	m.ensureVisible()
	return m, cmd
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	f, ok := m.ctrl.BeginRefresh()
	if !ok {
		return m, nil
	}
	m.selected = 0
	m.yoffset = 0
	m.rebuild()
	return m, tea.Batch(m.fetchCmd(f), m.spin.Tick)
}

func (m Model) moveSelection(delta int) (tea.Model, tea.Cmd) {
	n := m.ctrl.Store().ViewLen()
	if n == 0 {
		return m, nil
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	m.rebuild()
	m.ensureVisible()
	cmd := m.maybeLoadMore()
	return m, cmd
}

// maybeLoadMore starts an append fetch once the selection nears the end
// of the view. The controller drops the request when one is already in
// flight or the source is exhausted.
func (m *Model) maybeLoadMore() tea.Cmd {
	n := m.ctrl.Store().ViewLen()
	if n == 0 || m.selected < n-loadMoreMargin {
		return nil
	}
	f, ok := m.ctrl.BeginLoadMore()
	if !ok {
		return nil
	}
	return tea.Batch(m.fetchCmd(f), m.spin.Tick)
}

func (m *Model) clampSelection() {
	n := m.ctrl.Store().ViewLen()
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
}

// triggerAction dispatches a card action for the selected item. Actions
// a card kind does not carry are ignored.
func (m *Model) triggerAction(action string) tea.Cmd {
	view := m.ctrl.Store().View()
	if m.selected < 0 || m.selected >= len(view) {
		return nil
	}
	item := view[m.selected]

	var firedAction string
	var firedItem feed.Item
	w := cards.Build(item, m.now(), func(a string, it feed.Item) {
		firedAction = a
		firedItem = it
	})
	if !w.Trigger(action) {
		return nil
	}
	return m.handleAction(firedAction, firedItem)
}

func (m *Model) handleAction(action string, item feed.Item) tea.Cmd {
	uilog.Log.Debug("card action", "action", action, "item", item.ID)

	switch action {
	case cards.ActionDetails:
		m.overlay = newDetailModel(item, m.styles, m.width, m.height)
		return m.overlay.Init()

	case cards.ActionPlay:
		openURL(item.AudioURL)
		return m.pushToast(toast{
			text:  i18n.Tf("toast.playing", "Playing %s", item.Title),
			level: feed.LevelInfo,
		})

	case cards.ActionPromote:
		m.addPromo(item)
		return m.pushToast(toast{
			text:  i18n.Tf("toast.promoted", "%s promoted to your profile", item.Title),
			level: feed.LevelSuccess,
		})

	case cards.ActionApplyTemplate:
		modal := newTemplateModal(m.client, item.TemplateID, m.styles, m.width, m.height)
		m.overlay = modal
		return modal.Init()

	case cards.ActionAdminMenu:
		m.overlay = newAdminMenu(item, m.styles)
		return nil

	case cards.ActionRetry:
		f, ok := m.ctrl.BeginRefresh()
		if !ok {
			return nil
		}
		m.selected = 0
		m.yoffset = 0
		return tea.Batch(m.fetchCmd(f), m.spin.Tick)
	}
	return nil
}
