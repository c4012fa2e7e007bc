package api

import (
	"fmt"
	"time"

	"github.com/wavefeed/wavefeed/internal/feed"
)

// activityPayload mirrors the loosely-shaped records the server emits.
// Older records use different field names for the same thing (several
// audio and image URL spellings, metadata keys as arbitrary scalars);
// every alias is resolved exactly once here.
type activityPayload struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	Status      string         `json:"status"`
	TemplateID  string         `json:"template_id"`
	TaskID      string         `json:"task_id"`
	Metadata    map[string]any `json:"metadata"`

	AudioURL  string    `json:"audio_url"`
	AudioURLs audioURLs `json:"audio_urls"`
	StreamURL string    `json:"stream_url"`

	ImageURL   string `json:"image_url"`
	CoverURL   string `json:"cover_url"`
	ArtworkURL string `json:"artwork_url"`
}

type audioURLs struct {
	Generated string `json:"generated"`
	Source    string `json:"source"`
}

// normalizeActivity converts one payload into the canonical Item.
func normalizeActivity(p activityPayload) feed.Item {
	return feed.Item{
		ID:          p.ID,
		Kind:        feed.ParseKind(p.Type),
		Title:       p.Title,
		Description: p.Description,
		Timestamp:   parseTimestamp(p.CreatedAt),
		Status:      feed.ParseStatus(p.Status),
		TemplateID:  p.TemplateID,
		TaskID:      p.TaskID,
		AudioURL:    firstNonEmpty(p.AudioURL, p.AudioURLs.Generated, p.AudioURLs.Source, p.StreamURL),
		ImageURL:    firstNonEmpty(p.ImageURL, p.CoverURL, p.ArtworkURL),
		Meta:        normalizeMetadata(p.Metadata),
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// normalizeMetadata flattens the open metadata mapping to strings.
// Numeric scalars keep their natural rendering (a track count of 4
// becomes "4", not "4.000000").
func normalizeMetadata(meta map[string]any) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			if val == float64(int64(val)) {
				out[k] = fmt.Sprintf("%d", int64(val))
			} else {
				out[k] = fmt.Sprintf("%g", val)
			}
		case bool:
			out[k] = fmt.Sprintf("%t", val)
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

// parseTimestamp accepts the RFC 3339 stamps current servers emit and
// the bare "2006-01-02 15:04:05" form found in older records. Anything
// unparseable becomes the zero time rather than an error; the card just
// omits its footer.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
