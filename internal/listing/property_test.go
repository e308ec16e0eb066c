package listing

import (
	"context"
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestFetch_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 120).Draw(t, "rows")
		limit := rapid.IntRange(1, 30).Draw(t, "limit")
		page := rapid.OneOf(
			rapid.IntRange(-3, 40),
			rapid.IntRange(math.MaxInt-1000, math.MaxInt),
			rapid.Int(),
		).Draw(t, "page")

		src := &sliceSource{rows: map[string][]row{"owner": rows(n)}}
		opts := Options{PerPage: 10, MaxPerPage: 30, Default: Order{By: "title", Ascending: true}, Allow: []string{"title"}}
		q := NewQuery("", page, "", true, limit, opts)

		p, err := Fetch[row](context.Background(), src, "owner", q)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}

		if p.TotalCount != n {
			t.Fatalf("total %d, want %d", p.TotalCount, n)
		}
		if len(p.Results) > limit {
			t.Fatalf("page holds %d rows, limit %d", len(p.Results), limit)
		}
		if n > 0 && len(p.Results) == 0 {
			t.Fatalf("non-empty set returned an empty page %d", p.Page)
		}
		if p.Page < 1 || (n > 0 && p.Page > p.TotalPages()) {
			t.Fatalf("page %d outside [1,%d]", p.Page, p.TotalPages())
		}

		// Asking again for the page that came back must return the same rows.
		again, err := Fetch[row](context.Background(), src, "owner", NewQuery("", p.Page, "", true, limit, opts))
		if err != nil {
			t.Fatalf("refetch: %v", err)
		}
		if again.Page != p.Page || len(again.Results) != len(p.Results) {
			t.Fatalf("refetch returned page %d with %d rows, want page %d with %d rows",
				again.Page, len(again.Results), p.Page, len(p.Results))
		}
		for i := range p.Results {
			if again.Results[i] != p.Results[i] {
				t.Fatalf("row %d differs on refetch", i)
			}
		}
	})
}

func TestFetch_TotalIgnoresPaging(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 80).Draw(t, "rows")
		src := &sliceSource{rows: map[string][]row{"owner": rows(n)}}

		var totals []int
		for range 3 {
			q := Query{
				Page:  rapid.OneOf(rapid.IntRange(1, 20), rapid.IntMin(1)).Draw(t, "page"),
				Limit: rapid.IntRange(1, 20).Draw(t, "limit"),
			}
			p, err := Fetch[row](context.Background(), src, "owner", q)
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			totals = append(totals, p.TotalCount)
		}
		for _, total := range totals {
			if total != n {
				t.Fatalf("totals %v, want %d", totals, n)
			}
		}
	})
}
