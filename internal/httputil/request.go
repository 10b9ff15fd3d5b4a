package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped at 1MB, which is far above any legitimate API payload
// here (file uploads go through multipart, not JSON).
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// Pagination holds normalized page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit query parameters, defaulting to
// page 1 with 20 items and capping limit at 100.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{Page: 1, Limit: 20}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = min(n, 100)
		}
	}

	return p
}
