package pagination

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
)

// Sort directions accepted from clients.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// PageRequest represents a client request for a page of data with
// optional sorting. Page is 1-based; Limit must be one of the
// configured allowed limits.
type PageRequest struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// Normalize adjusts the request to valid pagination values. Pages below
// 1 become 1; limits outside the whitelist fall back to the default.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if !slices.Contains(cfg.AllowedLimits, r.Limit) {
		r.Limit = cfg.DefaultLimit
	}
	if r.SortOrder != SortDesc {
		r.SortOrder = SortAsc
	}
}

// Offset calculates the number of records to skip based on page and limit.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Descending reports whether the requested sort order is descending.
func (r *PageRequest) Descending() bool {
	return r.SortOrder == SortDesc
}

// ValidateSort checks the requested sort field against the resource's
// sortable field whitelist. An empty SortBy is valid (default sort).
func (r *PageRequest) ValidateSort(allowed []string) error {
	if r.SortBy == "" {
		return nil
	}
	if !slices.Contains(allowed, r.SortBy) {
		return fmt.Errorf("invalid sortBy %q: must be one of %v", r.SortBy, allowed)
	}
	return nil
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: page, limit, sortBy, sortOrder. Invalid numeric
// values fall back to defaults through normalization.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	req := PageRequest{
		Page:      page,
		Limit:     limit,
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}

	req.Normalize(cfg)
	return req
}

// Page holds one page of data along with the total match count across
// all pages.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewPage creates a Page, normalizing nil item slices to empty.
func NewPage[T any](items []T, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total}
}
