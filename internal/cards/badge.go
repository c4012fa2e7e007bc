package cards

import (
	"charm.land/lipgloss/v2"

	"github.com/wavefeed/wavefeed/internal/feed"
)

var (
	badgeSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	badgeError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	badgePending = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	badgeUnknown = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// StatusBadge maps a status onto its styled badge. Anything outside the
// known set renders as the unknown badge instead of failing.
func StatusBadge(s feed.Status) string {
	switch s {
	case feed.StatusSuccess:
		return badgeSuccess.Render("● done")
	case feed.StatusError:
		return badgeError.Render("✗ failed")
	case feed.StatusPending:
		return badgePending.Render("◌ running")
	default:
		return badgeUnknown.Render("? unknown")
	}
}
