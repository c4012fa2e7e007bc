package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wavefeed/wavefeed/internal/api"
	"github.com/wavefeed/wavefeed/internal/feed"
	"github.com/wavefeed/wavefeed/internal/stub"
)

func runAllCmdMessages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, runAllCmdMessages(sub)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findActivitiesMsg(t *testing.T, msgs []tea.Msg) activitiesMsg {
	t.Helper()
	for _, msg := range msgs {
		if am, ok := msg.(activitiesMsg); ok {
			return am
		}
	}
	t.Fatal("no activitiesMsg among command results")
	return activitiesMsg{}
}

func newStubModel(t *testing.T) Model {
	t.Helper()
	s, err := stub.NewServer(stub.DefaultConfig())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	m := NewModel(api.NewClient(srv.URL), 20)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(Model)
}

// loadFirstPage runs the model's initial refresh to completion.
func loadFirstPage(t *testing.T, m Model) Model {
	t.Helper()
	am := findActivitiesMsg(t, runAllCmdMessages(m.Init()))
	model, _ := m.Update(am)
	return model.(Model)
}

func TestModelInitLoadsFirstPage(t *testing.T) {
	m := loadFirstPage(t, newStubModel(t))

	if got := m.ctrl.State(); got != feed.StateContent {
		t.Fatalf("state = %v, want content", got)
	}
	if got := m.ctrl.Store().Len(); got != 20 {
		t.Fatalf("loaded %d items, want 20", got)
	}
	if len(m.offsets) != 20 {
		t.Fatalf("rendered %d cards, want 20", len(m.offsets))
	}
	if m.selected != 0 {
		t.Fatalf("selection = %d after reload, want 0", m.selected)
	}
}

func TestSelectionNearEndTriggersLoadMore(t *testing.T) {
	m := loadFirstPage(t, newStubModel(t))

	// Walking the selection toward the end must kick off exactly one
	// append fetch once the margin is reached.
	var loadCmd tea.Cmd
	for i := 0; i < 19; i++ {
		model, cmd := m.moveSelection(1)
		m = model.(Model)
		if cmd != nil && loadCmd == nil {
			loadCmd = cmd
		}
	}
	if loadCmd == nil {
		t.Fatal("no load-more fetch was started")
	}

	am := findActivitiesMsg(t, runAllCmdMessages(loadCmd))
	if am.fetch.Replace {
		t.Fatal("load-more fetch must append, not replace")
	}
	model, _ := m.Update(am)
	m = model.(Model)

	if got := m.ctrl.Store().Len(); got != 40 {
		t.Fatalf("after load-more: %d items, want 40", got)
	}
	if m.selected != 19 {
		t.Fatalf("selection moved to %d during append, want 19", m.selected)
	}
}

func TestLoadMoreFailureKeepsContentAndToasts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "boom"})
			return
		}
		items := make([]map[string]any, 20)
		for i := range items {
			items[i] = map[string]any{
				"id":     fmt.Sprintf("a-%d", i),
				"type":   "history-entry",
				"title":  fmt.Sprintf("entry %d", i),
				"status": "success",
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "activities": items})
	}))
	t.Cleanup(srv.Close)

	m := NewModel(api.NewClient(srv.URL), 20)
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = loadFirstPage(t, model.(Model))

	f, ok := m.ctrl.BeginLoadMore()
	if !ok {
		t.Fatal("BeginLoadMore refused")
	}
	am := findActivitiesMsg(t, runAllCmdMessages(m.fetchCmd(f)))
	if am.err == nil {
		t.Fatal("expected a fetch error")
	}
	model, _ = m.Update(am)
	m = model.(Model)

	if got := m.ctrl.State(); got != feed.StateContent {
		t.Fatalf("state = %v after failed append, want content", got)
	}
	if got := m.ctrl.Store().Len(); got != 20 {
		t.Fatalf("content shrank to %d items", got)
	}
	if len(m.toasts) != 1 {
		t.Fatalf("have %d toasts, want 1", len(m.toasts))
	}
	if m.toasts[0].level != feed.LevelError {
		t.Fatalf("toast level = %v, want error", m.toasts[0].level)
	}
}

func TestTemplateAppliedPrependsActivity(t *testing.T) {
	m := loadFirstPage(t, newStubModel(t))

	model, cmd := m.Update(templateAppliedMsg{template: api.Template{
		ID:   "tpl-1",
		Name: "Arena Anthem",
	}})
	m = model.(Model)

	first := m.ctrl.Store().All()[0]
	if first.Kind != feed.KindTemplateUsed {
		t.Fatalf("prepended kind = %q", first.Kind)
	}
	if first.TemplateID != "tpl-1" {
		t.Fatalf("prepended template = %q", first.TemplateID)
	}
	if first.ID == "" || first.Timestamp.IsZero() {
		t.Fatal("prepend must fill id and timestamp")
	}
	if m.ctrl.Store().Len() != 21 {
		t.Fatalf("len = %d, want 21", m.ctrl.Store().Len())
	}
	if cmd == nil {
		t.Fatal("expected a toast expiry command")
	}
	if len(m.toasts) != 1 || m.toasts[0].level != feed.LevelSuccess {
		t.Fatalf("toasts = %+v", m.toasts)
	}
	if m.overlay != nil {
		t.Fatal("overlay must close on apply")
	}
}

func TestToastExpiry(t *testing.T) {
	m := newStubModel(t)
	cmd := m.pushToast(toast{text: "hello", level: feed.LevelInfo})
	if cmd == nil {
		t.Fatal("no expiry command")
	}
	if len(m.toasts) != 1 {
		t.Fatalf("toasts = %d", len(m.toasts))
	}
	id := m.toasts[0].id
	model, _ := m.Update(toastExpiredMsg{id: id})
	m = model.(Model)
	if len(m.toasts) != 0 {
		t.Fatalf("toast survived expiry: %+v", m.toasts)
	}
}

func TestAddPromoCapsAndDeduplicates(t *testing.T) {
	m := newStubModel(t)

	for i := 0; i < 4; i++ {
		m.addPromo(feed.Item{
			Title:  fmt.Sprintf("track %d", i),
			TaskID: fmt.Sprintf("task-%d", i),
		})
	}
	if len(m.promos) != maxPromos {
		t.Fatalf("promos = %d, want %d", len(m.promos), maxPromos)
	}
	if m.promos[0].TaskID != "task-3" {
		t.Fatalf("newest promo = %q, want task-3", m.promos[0].TaskID)
	}

	// Re-promoting moves an existing tile to the front.
	m.addPromo(feed.Item{Title: "track 2", TaskID: "task-2"})
	if len(m.promos) != maxPromos {
		t.Fatalf("dedupe grew promos to %d", len(m.promos))
	}
	if m.promos[0].TaskID != "task-2" {
		t.Fatalf("front promo = %q, want task-2", m.promos[0].TaskID)
	}
}

func TestPromoRowFollowsStore(t *testing.T) {
	m := newStubModel(t)
	if got := m.promoTiles(); len(got) != 0 {
		t.Fatalf("empty feed grew %d promo tiles", len(got))
	}

	m = loadFirstPage(t, m)
	tiles := m.promoTiles()
	if len(tiles) != maxPromos {
		t.Fatalf("promo tiles = %d, want %d", len(tiles), maxPromos)
	}
	// Newest successful generation leads when nothing is pinned.
	if tiles[0].TaskID != "T-001" {
		t.Fatalf("lead tile = %q, want T-001", tiles[0].TaskID)
	}

	// An explicit promote pins its track ahead of the store-derived fill.
	m.addPromo(feed.Item{Title: "Glass Parade", TaskID: "T-031"})
	tiles = m.promoTiles()
	if tiles[0].TaskID != "T-031" {
		t.Fatalf("pinned tile = %q, want T-031", tiles[0].TaskID)
	}
	if len(tiles) != maxPromos {
		t.Fatalf("pinning changed tile count to %d", len(tiles))
	}
}

func TestStaleCompletionDiscardedByModel(t *testing.T) {
	m := newStubModel(t)
	am := findActivitiesMsg(t, runAllCmdMessages(m.Init()))

	// A reset between issue and completion makes the fetch stale.
	m.ctrl.Clear()
	model, _ := m.Update(am)
	m = model.(Model)

	if got := m.ctrl.Store().Len(); got != 0 {
		t.Fatalf("stale fetch applied %d items", got)
	}
	if got := m.ctrl.State(); got != feed.StateIdle {
		t.Fatalf("state = %v, want idle", got)
	}
}

func TestFilterAndSearchRerenderWithoutStateChange(t *testing.T) {
	m := loadFirstPage(t, newStubModel(t))

	m.ctrl.SetKind(feed.KindErrorOccurred)
	m.clampSelection()
	m.rebuild()

	if got := m.ctrl.State(); got != feed.StateContent {
		t.Fatalf("state = %v after filter, want content", got)
	}
	if got := m.ctrl.Store().ViewLen(); got == 0 || got == 20 {
		t.Fatalf("filtered view = %d items", got)
	}
	if len(m.offsets) != m.ctrl.Store().ViewLen() {
		t.Fatalf("rendered %d cards for %d view items", len(m.offsets), m.ctrl.Store().ViewLen())
	}

	m.ctrl.SetSearch("definitely-not-in-demo-data")
	m.clampSelection()
	m.rebuild()
	if !m.ctrl.NoMatches() {
		t.Fatal("expected no-matches condition")
	}
	if m.ctrl.State() != feed.StateContent {
		t.Fatal("no-matches must not leave content state")
	}
}

func TestItemMarkdownCarriesRecordFields(t *testing.T) {
	md := itemMarkdown(feed.Item{
		ID:          "a-1",
		Kind:        feed.KindGenerationCompleted,
		Title:       "Neon Skyline",
		Description: "Synthwave instrumental",
		Status:      feed.StatusSuccess,
		TaskID:      "task-9",
		AudioURL:    "https://cdn.example/a.mp3",
		Timestamp:   time.Now(),
		Meta:        map[string]string{"duration": "183"},
	})

	for _, want := range []string{"Neon Skyline", "Synthwave instrumental", "task-9", "a.mp3", "duration: 183"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestAdminMenuTargetsActivityOwner(t *testing.T) {
	menu := newAdminMenu(feed.Item{
		Meta: map[string]string{"user_id": "u-42"},
	}, DefaultStyles())

	if len(menu.entries) != 2 {
		t.Fatalf("entries = %d", len(menu.entries))
	}
	if menu.viewContent() == "" {
		t.Fatal("empty menu view")
	}
}

func TestTemplateModalLoadsTemplate(t *testing.T) {
	modal := newTemplateModal(nil, "tpl-1", DefaultStyles(), 100, 40)

	ov, _ := modal.update(templateMsg{template: api.Template{ID: "tpl-1", Name: "Arena Anthem"}})
	modal = ov.(*templateModal)
	if !modal.loaded {
		t.Fatal("modal did not record the template")
	}
	if !strings.Contains(modal.viewContent(), "Arena Anthem") {
		t.Fatal("modal view missing template name")
	}

	ov, _ = modal.update(templateMsg{err: fmt.Errorf("gone")})
	modal = ov.(*templateModal)
	if modal.err == nil {
		t.Fatal("modal did not record the error")
	}
}
