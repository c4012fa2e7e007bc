package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wavefeed/wavefeed/internal/feed"
	"github.com/wavefeed/wavefeed/internal/i18n"
)

// chrome line counts around the card viewport.
const (
	headerLines = 1
	statusLines = 1
	helpLines   = 1
)

func (m Model) bodyHeight() int {
	h := m.height - headerLines - statusLines - helpLines - m.promoHeight()
	if h < 3 {
		h = 3
	}
	return h
}

// rebuild regenerates the card list content and the per-card line
// offsets used to keep the selection visible.
func (m *Model) rebuild() {
	if !m.ready {
		return
	}
	m.vp.SetWidth(m.width)
	m.vp.SetHeight(m.bodyHeight())

	view := m.ctrl.Store().View()
	m.offsets = m.offsets[:0]
	m.heights = m.heights[:0]

	var b strings.Builder
	line := 0
	for i, it := range view {
		block := m.renderCard(it, i == m.selected)
		h := lipgloss.Height(block)
		m.offsets = append(m.offsets, line)
		m.heights = append(m.heights, h)
		b.WriteString(block)
		b.WriteString("\n")
		line += h + 1
	}
	m.totalLines = line
	m.vp.SetContent(b.String())
}

func (m *Model) renderCard(it feed.Item, selected bool) string {
	w := buildWidget(it, m.now())

	var b strings.Builder
	b.WriteString(w.Title)
	if w.Badge != "" {
		b.WriteString("  ")
		b.WriteString(w.Badge)
	}
	for _, line := range w.Lines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	b.WriteString("\n")
	b.WriteString(m.styles.CardFooter.Render(w.Footer))
	if actions := w.Actions(); len(actions) > 0 {
		b.WriteString("  ")
		b.WriteString(m.styles.HelpText.Render(strings.Join(actions, " · ")))
	}

	style := m.styles.Card
	if selected {
		style = m.styles.CardSelected
	}
	cardWidth := m.width - 4
	if cardWidth < 20 {
		cardWidth = 20
	}
	return style.Width(cardWidth).Render(b.String())
}

// ensureVisible scrolls the viewport so the selected card is fully on
// screen.
func (m *Model) ensureVisible() {
	if !m.ready || m.selected >= len(m.offsets) {
		return
	}
	top := m.offsets[m.selected]
	bottom := top + m.heights[m.selected]
	h := m.bodyHeight()

	if top < m.yoffset {
		m.yoffset = top
	}
	if bottom > m.yoffset+h {
		m.yoffset = bottom - h
	}
	if m.yoffset < 0 {
		m.yoffset = 0
	}
	m.vp.SetYOffset(m.yoffset)
}

func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	if !m.ready {
		v := tea.NewView(m.spin.View() + " " + i18n.T("feed.loading", "Loading activity..."))
		v.AltScreen = true
		return v
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if promos := m.renderPromos(); promos != "" {
		sections = append(sections, promos)
	}

	if m.overlay != nil {
		body := m.overlay.viewContent()
		sections = append(sections, lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, body))
	} else {
		sections = append(sections, m.renderBody())
	}

	sections = append(sections, m.renderStatusBar())
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	} else {
		sections = append(sections, m.styles.HelpText.Render(i18n.T("help.line",
			"↑/↓ select · enter details · / search · f filter · r refresh · q quit")))
	}

	v := tea.NewView(strings.Join(sections, "\n"))
	v.AltScreen = true
	return v
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(i18n.T("feed.title", "Waveform Activity"))

	var right string
	switch {
	case m.searching:
		right = m.search.View()
	case m.ctrl.Query().Search != "":
		right = m.styles.HelpText.Render("/" + m.ctrl.Query().Search)
	}
	if k := filterCycle[m.filterIdx]; k != "" {
		right += m.styles.HelpText.Render("  [" + string(k) + "]")
	} else if right == "" {
		right = m.styles.HelpText.Render(i18n.T("filter.all", "all activity"))
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

// renderBody renders the display-state precedence: error beats empty
// beats content, loading only replaces content on a full reload.
func (m Model) renderBody() string {
	h := m.bodyHeight()

	switch m.ctrl.State() {
	case feed.StateIdle, feed.StateLoading:
		msg := m.spin.View() + " " + i18n.T("feed.loading", "Loading activity...")
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, msg)

	case feed.StateError:
		panel := m.styles.ErrorPanel.Render(
			i18n.T("feed.errorTitle", "Could not load your feed") + "\n\n" +
				m.ctrl.Err().Error() + "\n\n" +
				i18n.T("feed.retryHint", "Press r to retry"))
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, panel)

	case feed.StateEmpty:
		notice := m.styles.EmptyNotice.Render(i18n.T("feed.empty", "No activity yet. Generate a track to get started."))
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, notice)
	}

	if m.ctrl.NoMatches() {
		notice := m.styles.EmptyNotice.Render(i18n.T("feed.noMatches", "No activities match your filters"))
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, notice)
	}
	return m.vp.View()
}

func (m Model) renderStatusBar() string {
	store := m.ctrl.Store()
	left := fmt.Sprintf("%d/%d", store.ViewLen(), store.Len())

	var right string
	switch {
	case m.ctrl.LoadingMore():
		right = m.spin.View() + " " + i18n.T("feed.loadingMore", "loading more...")
	case m.ctrl.State() == feed.StateContent && !store.HasMore():
		right = i18n.T("feed.endOfFeed", "end of feed")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
