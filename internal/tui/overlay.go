package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wavefeed/wavefeed/internal/cards"
	"github.com/wavefeed/wavefeed/internal/feed"
)

// overlayModel is a modal surface shown over the feed body: the
// template-apply modal, the admin menu, and the detail pane. It closes
// itself by emitting closeOverlayMsg (or a result message the feed
// model handles).
type overlayModel interface {
	Init() tea.Cmd
	update(msg tea.Msg) (overlayModel, tea.Cmd)
	viewContent() string
}

func closeOverlay() tea.Msg { return closeOverlayMsg{} }

// buildWidget builds a card widget for display only, with no actions
// bound.
func buildWidget(it feed.Item, now time.Time) cards.Widget {
	return cards.Build(it, now, func(string, feed.Item) {})
}
