package listing

import (
	"net/http"
	"strconv"
)

// FromRequest reads search, page, order_by, ascending and limit from the
// URL query. Malformed numbers are treated as absent.
func FromRequest(r *http.Request, opts Options) Query {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	ascending := opts.Default.Ascending
	if v := query.Get("ascending"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			ascending = b
		}
	}

	return NewQuery(query.Get("search"), page, query.Get("order_by"), ascending, limit, opts)
}
