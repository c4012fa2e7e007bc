package feed

import (
	"time"

	"github.com/google/uuid"
)

// State is the authoritative display state of the feed.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateContent
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateContent:
		return "content"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notifier is the toast sink the controller raises non-blocking notices
// through, such as a failed load-more that must not replace content.
type Notifier interface {
	Notify(msg string, level Level)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string, level Level)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string, level Level) { f(msg, level) }

type discardNotifier struct{}

func (discardNotifier) Notify(string, Level) {}

// Fetch is the token for one outstanding page request. It records the
// page to ask for and the store generation it was issued against, so a
// completion that arrives after a reset is recognized as stale and
// dropped instead of corrupting the fresh history.
type Fetch struct {
	Page    int
	Limit   int
	Replace bool

	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the toast sink.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

// WithClock overrides the time source used for optimistic prepends.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller mediates between UI triggers and the Store. It owns the
// single in-flight-fetch discipline: Begin* hands out at most one Fetch
// token at a time, and Complete only applies results that match the
// current generation. All methods must be called from one goroutine
// (the bubbletea update loop).
type Controller struct {
	store  *Store
	notify Notifier
	now    func() time.Time

	state       State
	loadingMore bool
	lastErr     error
	inflight    bool
	generation  uint64
	query       Query
}

// NewController creates a controller over store.
func NewController(store *Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		notify: discardNotifier{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying store, for read-only rendering access.
func (c *Controller) Store() *Store { return c.store }

// State returns the current display state.
func (c *Controller) State() State { return c.state }

// Err returns the error behind StateError, or nil.
func (c *Controller) Err() error { return c.lastErr }

// LoadingMore reports the transient append-fetch sub-state that keeps
// existing content on screen.
func (c *Controller) LoadingMore() bool { return c.loadingMore }

// Fetching reports whether any fetch is outstanding.
func (c *Controller) Fetching() bool { return c.inflight }

// Query returns the active filter+search state.
func (c *Controller) Query() Query { return c.query }

// NoMatches reports the "no matches" condition: content exists but the
// active predicate excludes all of it. Distinct from StateEmpty, which
// means the feed itself has no activity.
func (c *Controller) NoMatches() bool {
	return c.state == StateContent && c.store.Len() > 0 && c.store.ViewLen() == 0
}

// BeginRefresh starts a full reload: history cleared, cursor rewound,
// state Loading. Returns false when a fetch is already in flight; the
// trigger is dropped, not queued.
func (c *Controller) BeginRefresh() (Fetch, bool) {
	if c.inflight {
		return Fetch{}, false
	}
	c.store.Reset()
	c.generation++
	c.inflight = true
	c.loadingMore = false
	c.lastErr = nil
	c.state = StateLoading
	return Fetch{
		Page:       c.store.Cursor(),
		Limit:      c.store.PageSize(),
		Replace:    true,
		generation: c.generation,
	}, true
}

// BeginLoadMore starts an append fetch for the next page. No-ops when a
// fetch is in flight, when the source has no more pages, or when there
// is no content to append to. Existing content stays visible.
func (c *Controller) BeginLoadMore() (Fetch, bool) {
	if c.inflight || !c.store.HasMore() || c.state != StateContent {
		return Fetch{}, false
	}
	c.inflight = true
	c.loadingMore = true
	return Fetch{
		Page:       c.store.Cursor(),
		Limit:      c.store.PageSize(),
		Replace:    false,
		generation: c.generation,
	}, true
}

// Complete applies the outcome of a fetch. Results issued against an
// older generation (a reset raced them) are discarded wholesale.
func (c *Controller) Complete(f Fetch, items []Item, err error) {
	if f.generation != c.generation {
		return
	}
	c.inflight = false

	if f.Replace {
		if err != nil {
			c.lastErr = err
			c.state = StateError
			return
		}
		c.store.LoadPage(items, true)
		c.store.AdvanceCursor()
		c.lastErr = nil
		c.state = c.stateForContent()
		return
	}

	c.loadingMore = false
	if err != nil {
		// Non-fatal: content retained, hasMore untouched so a later
		// scroll can retry.
		c.notifyErr(err)
		return
	}
	c.store.LoadPage(items, false)
	c.store.AdvanceCursor()
	c.state = c.stateForContent()
}

func (c *Controller) notifyErr(err error) {
	c.notify.Notify(err.Error(), LevelError)
}

// AddActivity prepends a locally completed activity without a round
// trip. A missing timestamp is filled with the current time and a
// missing ID is generated. An Empty feed flips straight to Content.
func (c *Controller) AddActivity(it Item) Item {
	if it.Timestamp.IsZero() {
		it.Timestamp = c.now().UTC()
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	c.store.Prepend(it)
	if c.state == StateEmpty || c.state == StateIdle {
		c.state = StateContent
	}
	return it
}

// SetSearch updates the search term and rebuilds the view. The cursor
// is untouched: search is client-side.
func (c *Controller) SetSearch(term string) {
	c.query.Search = term
	c.store.ApplyPredicate(c.query.Predicate())
}

// SetKind updates the kind filter and rebuilds the view.
func (c *Controller) SetKind(k Kind) {
	c.query.Kind = k
	c.store.ApplyPredicate(c.query.Predicate())
}

// Clear discards all state, as on navigating away. Any in-flight fetch
// becomes stale and will be dropped by Complete.
func (c *Controller) Clear() {
	c.store.Reset()
	c.generation++
	c.inflight = false
	c.loadingMore = false
	c.lastErr = nil
	c.state = StateIdle
}

func (c *Controller) stateForContent() State {
	if c.store.Len() == 0 {
		return StateEmpty
	}
	return StateContent
}
