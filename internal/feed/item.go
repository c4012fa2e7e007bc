// Package feed holds the client-side view model for the Waveform activity
// feed: the canonical item list, its filtered projection, pagination
// bookkeeping, and the display state machine that decides what the UI shows.
package feed

import "time"

// Kind identifies the kind of activity record.
type Kind string

const (
	KindGenerationCompleted Kind = "generation-completed"
	KindTemplateUsed        Kind = "template-used"
	KindHistoryEntry        Kind = "history-entry"
	KindErrorOccurred       Kind = "error-occurred"
)

// Status describes the outcome recorded on an activity.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusPending Status = "pending"
	StatusUnknown Status = "unknown"
)

// ParseStatus maps a raw status string onto a known Status.
// Unrecognized values degrade to StatusUnknown rather than failing.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusSuccess, StatusError, StatusPending:
		return Status(raw)
	default:
		return StatusUnknown
	}
}

// ParseKind maps a raw kind string onto a known Kind.
// Unrecognized values fall back to KindHistoryEntry so the record still
// renders with the generic card.
func ParseKind(raw string) Kind {
	switch Kind(raw) {
	case KindGenerationCompleted, KindTemplateUsed, KindHistoryEntry, KindErrorOccurred:
		return Kind(raw)
	default:
		return KindHistoryEntry
	}
}

// Item is one activity record. Items are read-only from the feed's
// perspective; the only local mutation is an optimistic prepend of a
// freshly completed activity.
type Item struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Timestamp   time.Time
	Status      Status

	// Optional cross references. Zero value means absent.
	TemplateID string
	TaskID     string

	// AudioURL and ImageURL are resolved once at the fetch boundary from
	// the payload's aliases, so nothing downstream branches on source
	// field naming.
	AudioURL string
	ImageURL string

	// Meta carries open key/value details (track count, duration,
	// template name) that individual cards pick out of.
	Meta map[string]string
}

// MetaValue returns the metadata value for key, or "" when absent.
func (it Item) MetaValue(key string) string {
	if it.Meta == nil {
		return ""
	}
	return it.Meta[key]
}

// TemplateName returns the normalized template name from metadata.
func (it Item) TemplateName() string {
	return it.MetaValue("template_name")
}
