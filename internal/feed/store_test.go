package feed

import (
	"fmt"
	"testing"
)

func makeItems(prefix string, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID:    fmt.Sprintf("%s-%d", prefix, i),
			Kind:  KindHistoryEntry,
			Title: fmt.Sprintf("%s item %d", prefix, i),
		}
	}
	return items
}

func TestStoreAppendPreservesCallOrder(t *testing.T) {
	s := NewStore(3)
	pages := [][]Item{makeItems("a", 3), makeItems("b", 3), makeItems("c", 2)}

	for i, p := range pages {
		s.LoadPage(p, i == 0)
	}

	var want []Item
	for _, p := range pages {
		want = append(want, p...)
	}
	got := s.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("item %d: expected %q, got %q", i, want[i].ID, got[i].ID)
		}
	}
}

func TestStoreNoDedup(t *testing.T) {
	s := NewStore(2)
	dup := []Item{{ID: "x"}, {ID: "x"}}
	s.LoadPage(dup, true)
	s.LoadPage([]Item{{ID: "x"}}, false)

	if s.Len() != 3 {
		t.Fatalf("duplicates must pass through untouched, got %d items", s.Len())
	}
}

func TestStoreHasMoreTracksPageFullness(t *testing.T) {
	const pageSize = 10
	s := NewStore(pageSize)

	steps := []struct {
		pageLen int
		want    bool
	}{
		{pageSize, true},
		{pageSize, true},
		{0, false},
	}
	for i, step := range steps {
		s.LoadPage(makeItems(fmt.Sprintf("p%d", i), step.pageLen), i == 0)
		if s.HasMore() != step.want {
			t.Fatalf("after page of %d items, hasMore = %v, want %v", step.pageLen, s.HasMore(), step.want)
		}
	}
}

func TestStorePartialPageFlipsHasMore(t *testing.T) {
	s := NewStore(10)
	s.LoadPage(makeItems("a", 5), true)
	if s.HasMore() {
		t.Fatal("partial page must flip hasMore false")
	}
	s.Reset()
	if !s.HasMore() {
		t.Fatal("Reset must restore hasMore")
	}
}

func TestStoreCursorLifecycle(t *testing.T) {
	s := NewStore(10)
	if s.Cursor() != 1 {
		t.Fatalf("fresh cursor = %d, want 1", s.Cursor())
	}
	s.AdvanceCursor()
	s.AdvanceCursor()
	if s.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", s.Cursor())
	}
	s.ApplyPredicate(Query{Search: "x"}.Predicate())
	if s.Cursor() != 3 {
		t.Fatal("predicate change must not touch the cursor")
	}
	s.Reset()
	if s.Cursor() != 1 {
		t.Fatalf("cursor after reset = %d, want 1", s.Cursor())
	}
}

func TestStoreApplyPredicateIdempotent(t *testing.T) {
	s := NewStore(4)
	s.LoadPage([]Item{
		{ID: "1", Title: "Epic Rock"},
		{ID: "2", Title: "Quiet Jazz"},
		{ID: "3", Title: "Rock Ballad"},
	}, true)

	p := Query{Search: "rock"}.Predicate()
	s.ApplyPredicate(p)
	first := append([]Item(nil), s.View()...)
	s.ApplyPredicate(p)
	second := s.View()

	if len(first) != len(second) {
		t.Fatalf("idempotence violated: %d vs %d items", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("idempotence violated at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 rock items, got %d", len(first))
	}
}

func TestStorePrepend(t *testing.T) {
	t.Run("lands at index 0 of both lists", func(t *testing.T) {
		s := NewStore(4)
		s.LoadPage(makeItems("a", 2), true)
		s.Prepend(Item{ID: "new", Title: "fresh"})

		if s.All()[0].ID != "new" {
			t.Fatalf("all[0] = %q, want new", s.All()[0].ID)
		}
		if s.View()[0].ID != "new" {
			t.Fatalf("view[0] = %q, want new", s.View()[0].ID)
		}
	})

	t.Run("excluded from view when predicate rejects", func(t *testing.T) {
		s := NewStore(4)
		s.ApplyPredicate(Query{Kind: KindGenerationCompleted}.Predicate())
		s.Prepend(Item{ID: "h", Kind: KindHistoryEntry})

		if s.Len() != 1 {
			t.Fatalf("all must gain the item, got %d", s.Len())
		}
		if s.ViewLen() != 0 {
			t.Fatalf("view must stay empty, got %d", s.ViewLen())
		}
	})
}

func TestStorePageWindow(t *testing.T) {
	s := NewStore(10)
	s.LoadPage(makeItems("a", 7), true)

	if got := s.Page(0, 3); len(got) != 3 || got[0].ID != "a-0" {
		t.Fatalf("page 0 = %v", got)
	}
	if got := s.Page(2, 3); len(got) != 1 || got[0].ID != "a-6" {
		t.Fatalf("page 2 = %v", got)
	}
	if got := s.Page(5, 3); got != nil {
		t.Fatalf("past-the-end window must be empty, got %v", got)
	}
}

func TestStorePanicsOnContractViolation(t *testing.T) {
	t.Run("bad page size", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		NewStore(0)
	})

	t.Run("negative window", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		NewStore(10).Page(-1, 5)
	})
}
