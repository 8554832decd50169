package pagination

import "testing"

func TestWindowFor(t *testing.T) {
	t.Run("first page of a full collection", func(t *testing.T) {
		w := WindowFor(11, 10, 1)
		if w.Number != 1 || w.TotalPages != 2 || w.Limit != 10 || w.Offset != 0 {
			t.Fatalf("unexpected window: %+v", w)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		w := WindowFor(11, 10, 2)
		if w.Number != 2 || w.Offset != 10 {
			t.Fatalf("unexpected window: %+v", w)
		}
	})

	t.Run("page beyond the end clamps to the last page", func(t *testing.T) {
		w := WindowFor(11, 10, 99)
		if w.Number != 2 || w.Offset != 10 {
			t.Fatalf("expected clamp to page 2, got %+v", w)
		}
	})

	t.Run("page below one clamps to the first page", func(t *testing.T) {
		for _, requested := range []int{0, -1, -99} {
			w := WindowFor(11, 10, requested)
			if w.Number != 1 || w.Offset != 0 {
				t.Fatalf("requested %d: expected clamp to page 1, got %+v", requested, w)
			}
		}
	})

	t.Run("empty collection has exactly one empty page", func(t *testing.T) {
		w := WindowFor(0, 10, 5)
		if w.Number != 1 || w.TotalPages != 1 {
			t.Fatalf("unexpected window: %+v", w)
		}
	})

	t.Run("exact multiple has no extra page", func(t *testing.T) {
		w := WindowFor(20, 10, 3)
		if w.TotalPages != 2 || w.Number != 2 {
			t.Fatalf("unexpected window: %+v", w)
		}
	})
}

func TestPaginate(t *testing.T) {
	items := make([]int, 11)
	for i := range items {
		items[i] = i
	}

	t.Run("page one holds a full page", func(t *testing.T) {
		page := Paginate(items, 10, 1)
		if len(page.Items) != 10 {
			t.Fatalf("expected 10 items, got %d", len(page.Items))
		}
		if page.HasPrevious || !page.HasNext {
			t.Fatalf("unexpected flags: %+v", page)
		}
	})

	t.Run("page two holds the remainder", func(t *testing.T) {
		page := Paginate(items, 10, 2)
		if len(page.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(page.Items))
		}
		if page.Items[0] != 10 {
			t.Fatalf("expected item 10, got %d", page.Items[0])
		}
		if !page.HasPrevious || page.HasNext {
			t.Fatalf("unexpected flags: %+v", page)
		}
	})

	t.Run("page ninety-nine clamps to the last page", func(t *testing.T) {
		page := Paginate(items, 10, 99)
		if page.Number != 2 || len(page.Items) != 1 {
			t.Fatalf("expected last page with 1 item, got %+v", page)
		}
	})

	t.Run("empty input yields an empty first page", func(t *testing.T) {
		page := Paginate([]int{}, 10, 1)
		if page.Number != 1 || page.TotalPages != 1 || len(page.Items) != 0 {
			t.Fatalf("unexpected page: %+v", page)
		}
		if page.HasNext || page.HasPrevious {
			t.Fatalf("unexpected flags: %+v", page)
		}
	})
}
