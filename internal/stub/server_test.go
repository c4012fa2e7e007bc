package stub

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/wavefeed/wavefeed/internal/api"
	"github.com/wavefeed/wavefeed/internal/feed"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := NewServer(DefaultConfig())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestStubServesClientEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	client := api.NewClient(srv.URL)

	page1, err := client.ListActivities(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1) != 20 {
		t.Fatalf("page 1 has %d items, want 20", len(page1))
	}

	// Demo data cycles through every kind the client knows.
	seen := map[feed.Kind]bool{}
	for _, it := range page1 {
		seen[it.Kind] = true
	}
	for _, k := range []feed.Kind{feed.KindGenerationCompleted, feed.KindTemplateUsed, feed.KindErrorOccurred} {
		if !seen[k] {
			t.Fatalf("demo page missing kind %q", k)
		}
	}

	// Walk to the end: a partial page terminates pagination the same
	// way the real server does.
	store := feed.NewStore(20)
	store.LoadPage(page1, true)
	page := 2
	for store.HasMore() {
		items, err := client.ListActivities(context.Background(), page, 20)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		store.LoadPage(items, false)
		page++
		if page > 10 {
			t.Fatal("pagination never terminated")
		}
	}
	if store.Len() != 54 {
		t.Fatalf("walked %d items, want 54", store.Len())
	}
}

func TestStubTemplateLookup(t *testing.T) {
	srv := newTestServer(t)
	client := api.NewClient(srv.URL)

	tpl, err := client.Template(context.Background(), "tpl-1")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if tpl.Name != "Arena Anthem" {
		t.Fatalf("name = %q", tpl.Name)
	}

	if _, err := client.Template(context.Background(), "tpl-none"); err == nil {
		t.Fatal("missing template must be an error")
	}
}

func TestStubRejectsBadPaging(t *testing.T) {
	srv := newTestServer(t)
	client := api.NewClient(srv.URL)

	if _, err := client.ListActivities(context.Background(), 0, 20); err == nil {
		t.Fatal("page 0 must be rejected")
	}
	if _, err := client.ListActivities(context.Background(), 1, 0); err == nil {
		t.Fatal("limit 0 must be rejected")
	}
}

func TestFixturesLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	set := FixtureSet{
		Activities: []Activity{{ID: "x-1", Type: "history-entry", Title: "imported", Status: "success"}},
		Templates:  []Template{{ID: "t-1", Name: "Loaded"}},
	}
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFixtures()
	if err := f.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got := f.ActivityPage(1, 10)
	if len(got) != 1 || got[0].ID != "x-1" {
		t.Fatalf("page = %+v", got)
	}
	if _, ok := f.TemplateByID("t-1"); !ok {
		t.Fatal("loaded template missing")
	}
}

func TestActivityPageWindows(t *testing.T) {
	f := NewFixtures()
	if got := f.ActivityPage(1, 50); len(got) != 50 {
		t.Fatalf("first window = %d items", len(got))
	}
	if got := f.ActivityPage(2, 50); len(got) != 4 {
		t.Fatalf("second window = %d items, want 4", len(got))
	}
	if got := f.ActivityPage(3, 50); got != nil {
		t.Fatalf("past the end = %v, want nil", got)
	}
}
