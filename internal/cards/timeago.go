package cards

import (
	"fmt"
	"time"
)

// TimeAgo renders a coarse relative timestamp for card footers.
// Boundaries are closed on the left: exactly 60 seconds is "1m ago",
// exactly 7 days is "1w ago". Week counts are whole weeks, never
// rounded up. A future timestamp (clock skew) reads as "just now".
func TimeAgo(t time.Time, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	}
}
