// Package cards turns activity records into renderable card widgets.
// Each record kind has one renderer variant behind a shared capability
// contract, selected from a lookup table, so a new kind is a new entry
// rather than a change to existing ones.
package cards

import (
	"sort"
	"time"

	"github.com/wavefeed/wavefeed/internal/feed"
)

// Action names dispatched by card widgets. Every variant funnels user
// interaction through one ActionFunc with one of these names, so the
// controller layer has a single subscription point per card kind.
const (
	ActionDetails       = "details"
	ActionPlay          = "play"
	ActionPromote       = "promote"
	ActionApplyTemplate = "apply-template"
	ActionRetry         = "retry"
	ActionAdminMenu     = "admin-menu"
)

// ActionFunc receives every user action dispatched from a card.
type ActionFunc func(action string, item feed.Item)

// Renderer is the capability contract every card variant satisfies.
// Build is pure construction from data and must not perform I/O;
// BindActions attaches the interaction handlers afterwards.
type Renderer interface {
	Build(item feed.Item) Widget
	BindActions(w *Widget, item feed.Item, fn ActionFunc)
}

// Widget is one built card: styled text fragments plus the bound
// action handlers the UI layer triggers by name.
type Widget struct {
	Title  string
	Badge  string
	Lines  []string
	Footer string

	handlers map[string]func()
}

// Actions returns the bound action names in stable order.
func (w *Widget) Actions() []string {
	names := make([]string, 0, len(w.handlers))
	for name := range w.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Trigger invokes the handler bound for action. It reports whether the
// widget had that action at all.
func (w *Widget) Trigger(action string) bool {
	h, ok := w.handlers[action]
	if !ok {
		return false
	}
	h()
	return true
}

func (w *Widget) bind(action string, item feed.Item, fn ActionFunc) {
	if w.handlers == nil {
		w.handlers = make(map[string]func())
	}
	w.handlers[action] = func() { fn(action, item) }
}

var registry = map[feed.Kind]Renderer{
	feed.KindGenerationCompleted: generationCard{},
	feed.KindTemplateUsed:        templateCard{},
	feed.KindHistoryEntry:        historyCard{},
	feed.KindErrorOccurred:       errorCard{},
}

// For returns the renderer variant for a kind. Unregistered kinds get
// the generic history card rather than an error.
func For(k feed.Kind) Renderer {
	if r, ok := registry[k]; ok {
		return r
	}
	return historyCard{}
}

// Build is the common entry point: pick the variant for the item's
// kind, build the widget, and bind its actions.
func Build(item feed.Item, now time.Time, fn ActionFunc) Widget {
	r := For(item.Kind)
	w := r.Build(item)
	w.Footer = TimeAgo(item.Timestamp, now)
	r.BindActions(&w, item, fn)
	return w
}
