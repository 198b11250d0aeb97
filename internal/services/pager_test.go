package services

import (
	"context"
	"errors"
	"testing"
)

// pagedSource simulates a catalog endpoint over a fixed item set.
func pagedSource(items []int, withCursor bool) PageFunc[int] {
	return func(ctx context.Context, limit, offset int) ([]int, bool, error) {
		if offset >= len(items) {
			return nil, false, nil
		}
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		page := items[offset:end]
		more := end < len(items)
		if !withCursor {
			// Short-page-only sources always claim more; the pager must
			// terminate on page length alone.
			more = true
		}
		return page, more, nil
	}
}

func TestPager(t *testing.T) {
	ctx := context.Background()

	t.Run("Short Page Termination", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5}
		pager := NewPager(pagedSource(items, false), 2)

		var got []int
		pages := 0
		for {
			page, err := pager.Next(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if page == nil {
				break
			}
			pages++
			got = append(got, page...)
		}

		if pages != 3 {
			t.Errorf("expected 3 pages, got %d", pages)
		}
		if len(got) != len(items) {
			t.Errorf("expected %d items, got %d", len(items), len(got))
		}
	})

	t.Run("Cursor Termination On Full Last Page", func(t *testing.T) {
		// 4 items with page size 2: the last page is full, so only the
		// cursor signals the end.
		items := []int{1, 2, 3, 4}
		pager := NewPager(pagedSource(items, true), 2)

		got, err := pager.All(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 4 {
			t.Errorf("expected 4 items, got %d", len(got))
		}
	})

	t.Run("Empty Source", func(t *testing.T) {
		pager := NewPager(pagedSource(nil, false), 2)

		page, err := pager.Next(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if page != nil {
			t.Errorf("expected nil page, got %v", page)
		}
	})

	t.Run("Exhausted Pager Stays Exhausted", func(t *testing.T) {
		pager := NewPager(pagedSource([]int{1}, false), 2)

		if _, err := pager.Next(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for i := 0; i < 3; i++ {
			page, err := pager.Next(ctx)
			if err != nil || page != nil {
				t.Errorf("expected (nil, nil) after exhaustion, got (%v, %v)", page, err)
			}
		}
	})

	t.Run("Fetch Error Propagates", func(t *testing.T) {
		wantErr := errors.New("boom")
		pager := NewPager(func(ctx context.Context, limit, offset int) ([]int, bool, error) {
			return nil, false, wantErr
		}, 2)

		_, err := pager.All(ctx)
		if !errors.Is(err, wantErr) {
			t.Errorf("expected fetch error to propagate, got %v", err)
		}
	})

	t.Run("All Preserves Order", func(t *testing.T) {
		items := []int{5, 3, 9, 1, 7}
		pager := NewPager(pagedSource(items, false), 2)

		got, err := pager.All(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for i, v := range items {
			if got[i] != v {
				t.Fatalf("order not preserved at %d: got %v", i, got)
			}
		}
	})
}
