package feed

import "strings"

// Predicate decides whether an item belongs in the filtered view.
type Predicate func(Item) bool

// MatchAll admits every item. It is the predicate of a fresh store.
func MatchAll(Item) bool { return true }

// Query is the user-facing filter state: an optional kind filter plus a
// free-text search term. Its Predicate is the conjunction of both.
type Query struct {
	Kind   Kind   // "" means all kinds
	Search string // case-insensitive substring
}

// IsZero reports whether the query filters nothing out.
func (q Query) IsZero() bool {
	return q.Kind == "" && strings.TrimSpace(q.Search) == ""
}

// Predicate builds the combined filter+search test. The search term
// matches case-insensitively against title, description, task ID, and the
// template name in metadata; any one match qualifies.
func (q Query) Predicate() Predicate {
	if q.IsZero() {
		return MatchAll
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	kind := q.Kind
	return func(it Item) bool {
		if kind != "" && it.Kind != kind {
			return false
		}
		if term == "" {
			return true
		}
		for _, field := range []string{it.Title, it.Description, it.TaskID, it.TemplateName()} {
			if field != "" && strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}
}
