package tui

import (
	"github.com/wavefeed/wavefeed/internal/api"
	"github.com/wavefeed/wavefeed/internal/feed"
)

// activitiesMsg is sent when a page fetch finishes.
type activitiesMsg struct {
	fetch feed.Fetch
	items []feed.Item
	err   error
}

// templateMsg is sent when a template lookup finishes.
type templateMsg struct {
	template api.Template
	err      error
}

// templateAppliedMsg is sent by the template modal when the user
// confirms applying the shown template.
type templateAppliedMsg struct {
	template api.Template
}

// resetPasswordMsg is sent by the admin menu when the user picks the
// reset-password entry.
type resetPasswordMsg struct {
	userID string
}

// passwordResetDoneMsg is sent when the reset request finishes.
type passwordResetDoneMsg struct {
	err error
}

// closeOverlayMsg dismisses whatever overlay is showing.
type closeOverlayMsg struct{}

// toastExpiredMsg removes a toast after its display window.
type toastExpiredMsg struct {
	id int
}
