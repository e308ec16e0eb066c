// Package listing implements the paginated, searchable and sortable query
// shared by the library, the wishlist and the public view of another
// user's library.
//
// A request is first normalized into a Query against the Options of the
// collection being listed, then Fetch counts the matching rows, clamps the
// requested page and asks the Source for one page of results.
package listing

import (
	"context"
	"math"
	"slices"

	"libraryapi/internal/platform/textnorm"
)

// Order is a sort column together with its direction.
type Order struct {
	By        string
	Ascending bool
}

// Options configures a listable collection.
type Options struct {
	PerPage    int
	MaxPerPage int
	Default    Order
	// Allow is the whitelist of sort columns; anything else falls back to Default.
	Allow []string
}

// Allows reports whether by is a whitelisted sort column.
func (o Options) Allows(by string) bool {
	return slices.Contains(o.Allow, by)
}

// Query is a normalized listing request.
type Query struct {
	Search    string
	Page      int
	OrderBy   string
	Ascending bool
	Limit     int
}

// NewQuery normalizes the raw request parameters against opts.
func NewQuery(search string, page int, orderBy string, ascending bool, limit int, opts Options) Query {
	q := Query{
		Search:    textnorm.Normalize(search),
		Page:      page,
		OrderBy:   orderBy,
		Ascending: ascending,
		Limit:     limit,
	}
	if !opts.Allows(q.OrderBy) {
		q.OrderBy = opts.Default.By
		q.Ascending = opts.Default.Ascending
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = opts.PerPage
	}
	if opts.MaxPerPage > 0 && q.Limit > opts.MaxPerPage {
		q.Limit = opts.MaxPerPage
	}
	if q.Limit <= 0 {
		q.Limit = 1
	}
	q.Page = min(q.Page, maxPage(q.Limit))
	return q
}

// maxPage is the largest page whose offset fits in an int.
func maxPage(limit int) int {
	if limit <= 0 {
		return math.MaxInt
	}
	return math.MaxInt/limit + 1
}

// Offset is the number of rows skipped before the current page. It
// saturates at math.MaxInt instead of overflowing.
func (q Query) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// pastEnd reports whether page q starts after the last of total rows.
func (q Query) pastEnd(total int) bool {
	if q.Limit <= 0 {
		return total == 0
	}
	lastPage := total / q.Limit
	if total%q.Limit != 0 {
		lastPage++
	}
	return q.Page-1 >= lastPage
}

// Page is one page of a listing.
type Page[T any] struct {
	Results    []T `json:"results"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// TotalPages is the number of pages needed to show TotalCount rows.
func (p Page[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.TotalCount + p.Limit - 1) / p.Limit
}

// Meta is the pagination block of the JSON response envelope.
func (p Page[T]) Meta() map[string]any {
	return map[string]any{
		"page":        p.Page,
		"page_size":   p.Limit,
		"total":       p.TotalCount,
		"total_pages": p.TotalPages(),
	}
}

// Empty returns a page with no results for q.
func Empty[T any](q Query) Page[T] {
	return Page[T]{Results: []T{}, Page: 1, Limit: q.Limit}
}

// Source is a collection owned by a single user that can be listed.
type Source[T any] interface {
	// Count returns the number of rows owned by ownerID whose normalized
	// title contains search. An unknown owner has zero rows.
	Count(ctx context.Context, ownerID, search string) (int, error)
	// Find returns the rows of page q, ordered by q.OrderBy with ties broken
	// by book id.
	Find(ctx context.Context, ownerID string, q Query) ([]T, error)
}

// Fetch runs q against src.
//
// A page past the last one is reset to page 1, so asking for page 6 of a
// one-row result returns that row on page 1.
func Fetch[T any](ctx context.Context, src Source[T], ownerID string, q Query) (Page[T], error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	total, err := src.Count(ctx, ownerID, q.Search)
	if err != nil {
		return Page[T]{}, err
	}
	if q.pastEnd(total) {
		q.Page = 1
	}

	page := Page[T]{Results: []T{}, TotalCount: total, Page: q.Page, Limit: q.Limit}
	if total == 0 {
		return page, nil
	}

	rows, err := src.Find(ctx, ownerID, q)
	if err != nil {
		return Page[T]{}, err
	}
	if rows != nil {
		page.Results = rows
	}
	return page, nil
}

// Window returns the slice of rows belonging to page q. It is used by
// in-memory sources that have already filtered and sorted the full set.
func Window[T any](rows []T, q Query) []T {
	start := q.Offset()
	if start < 0 || start >= len(rows) {
		return []T{}
	}
	end := min(start+q.Limit, len(rows))
	return rows[start:end]
}
