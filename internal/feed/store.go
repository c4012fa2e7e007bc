package feed

import "fmt"

// DefaultPageSize is the page size requested from the activity API.
const DefaultPageSize = 20

// Store is the single source of truth for the accumulated activity
// history and its filtered projection. It performs no I/O and cannot
// fail; contract violations panic, since they indicate a caller bug
// rather than a recoverable condition.
//
// Invariants:
//   - view is always all filtered by the current predicate, rebuilt
//     whole on every mutation, never patched in place.
//   - cursor only increases, and resets to 1 only on Reset.
//   - hasMore is true iff the most recent page was full.
//
// The store is not safe for concurrent use; in the TUI every mutation
// happens on the bubbletea update loop.
type Store struct {
	pageSize int
	all      []Item
	view     []Item
	cursor   int
	hasMore  bool
	pred     Predicate
}

// NewStore creates an empty store. pageSize must be positive.
func NewStore(pageSize int) *Store {
	if pageSize <= 0 {
		panic(fmt.Sprintf("feed: invalid page size %d", pageSize))
	}
	return &Store{
		pageSize: pageSize,
		cursor:   1,
		hasMore:  true,
		pred:     MatchAll,
	}
}

// Reset clears both lists and rewinds pagination. The active predicate
// is kept: filter and search survive a reload.
func (s *Store) Reset() {
	s.all = nil
	s.view = nil
	s.cursor = 1
	s.hasMore = true
}

// LoadPage merges one fetched page. With replace the page becomes the
// whole history; otherwise it is appended in arrival order, without
// dedup (a source that repeats IDs passes through untouched). hasMore
// flips false on the first partial page and stays false until Reset.
// The caller advances the cursor, and only on success.
func (s *Store) LoadPage(items []Item, replace bool) {
	if replace {
		s.all = append([]Item(nil), items...)
	} else {
		s.all = append(s.all, items...)
	}
	s.hasMore = len(items) == s.pageSize
	s.rebuildView()
}

// ApplyPredicate swaps the active predicate and rebuilds the view.
// all and cursor are untouched: filtering is client-side and never
// consults the source again.
func (s *Store) ApplyPredicate(p Predicate) {
	if p == nil {
		p = MatchAll
	}
	s.pred = p
	s.rebuildView()
}

// Prepend inserts an optimistic local item at position 0 of the history
// and, when the active predicate admits it, of the view.
func (s *Store) Prepend(it Item) {
	s.all = append([]Item{it}, s.all...)
	if s.pred(it) {
		s.view = append([]Item{it}, s.view...)
	}
}

// Page returns the window of the view for one render page. Pure; a
// window past the end is clamped to empty, a negative index panics.
func (s *Store) Page(index, size int) []Item {
	if index < 0 || size <= 0 {
		panic(fmt.Sprintf("feed: invalid page window index=%d size=%d", index, size))
	}
	start := index * size
	if start >= len(s.view) {
		return nil
	}
	end := start + size
	if end > len(s.view) {
		end = len(s.view)
	}
	return s.view[start:end]
}

func (s *Store) rebuildView() {
	view := make([]Item, 0, len(s.all))
	for _, it := range s.all {
		if s.pred(it) {
			view = append(view, it)
		}
	}
	s.view = view
}

// AdvanceCursor moves to the next page. Called by the controller after a
// successful fetch, never on failure.
func (s *Store) AdvanceCursor() { s.cursor++ }

// Cursor returns the next page number to request.
func (s *Store) Cursor() int { return s.cursor }

// HasMore reports whether the source is expected to have another page.
func (s *Store) HasMore() bool { return s.hasMore }

// PageSize returns the configured fetch page size.
func (s *Store) PageSize() int { return s.pageSize }

// All returns the accumulated history.
func (s *Store) All() []Item { return s.all }

// View returns the filtered projection.
func (s *Store) View() []Item { return s.view }

// Len returns the size of the accumulated history.
func (s *Store) Len() int { return len(s.all) }

// ViewLen returns the size of the filtered projection.
func (s *Store) ViewLen() int { return len(s.view) }
