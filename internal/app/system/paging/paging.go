// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
)

// PageSize is the default number of rows shown in paged lists.
const PageSize = 50

// Page is a resolved page request for SQL LIMIT/OFFSET queries.
type Page struct {
	Number int // 1-based
	Limit  int
	Offset int
}

// FromRequest reads the 1-based "page" query parameter. Absent or
// invalid values resolve to page 1.
func FromRequest(r *http.Request) Page {
	n := 1
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			n = v
		}
	}
	return Page{Number: n, Limit: PageSize, Offset: (n - 1) * PageSize}
}
