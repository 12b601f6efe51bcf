package listquery

import (
	"slices"
	"strings"
)

const DefaultPerPage = 10

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Query describes one view of a list.
type Query struct {
	Search  string
	Page    int
	PerPage int
	SortKey string
	SortDir SortDir
}

// Normalize fills defaults: page 1, DefaultPerPage, ascending.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.SortDir != SortDesc {
		q.SortDir = SortAsc
	}
	return q
}

// Config tells Apply how to search and sort a T.
type Config[T any] struct {
	// SearchFields are matched case-insensitively by substring.
	SearchFields []func(T) string
	// SortKeys maps a Query.SortKey to a comparator.
	SortKeys map[string]func(a, b T) int
	// DefaultSort is used when SortKey is empty or unknown. Nil keeps input order.
	DefaultSort func(a, b T) int
}

// Result is one page of a list.
type Result[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func (r Result[T]) HasPrev() bool { return r.Page > 1 }
func (r Result[T]) HasNext() bool { return r.Page < r.TotalPages }

// TotalPages is max(1, ceil(count/perPage)).
func TotalPages(count, perPage int) int {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := (count + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage keeps page within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Filter returns the items whose search fields contain search, case-insensitively.
// A blank search returns items unchanged.
func Filter[T any](items []T, search string, fields []func(T) string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" || len(fields) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Sort returns a stably sorted copy of items.
func Sort[T any](items []T, cmp func(a, b T) int, dir SortDir) []T {
	out := slices.Clone(items)
	if cmp == nil {
		return out
	}
	if dir == SortDesc {
		slices.SortStableFunc(out, func(a, b T) int { return cmp(b, a) })
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// Apply filters, sorts and slices items. items is not modified.
func Apply[T any](items []T, q Query, cfg Config[T]) Result[T] {
	q = q.Normalize()

	filtered := Filter(items, q.Search, cfg.SearchFields)

	cmp := cfg.DefaultSort
	if c, ok := cfg.SortKeys[q.SortKey]; ok {
		cmp = c
	}
	sorted := Sort(filtered, cmp, q.SortDir)

	totalPages := TotalPages(len(sorted), q.PerPage)
	page := ClampPage(q.Page, totalPages)

	start := (page - 1) * q.PerPage
	end := min(start+q.PerPage, len(sorted))
	pageItems := []T{}
	if start < end {
		pageItems = sorted[start:end]
	}

	return Result[T]{
		Items:      pageItems,
		Page:       page,
		PerPage:    q.PerPage,
		TotalItems: len(sorted),
		TotalPages: totalPages,
	}
}

// CompareFold compares strings case-insensitively after trimming.
func CompareFold(a, b string) int {
	return strings.Compare(strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b)))
}

// By builds a comparator over a string key.
func By[T any](key func(T) string) func(a, b T) int {
	return func(a, b T) int { return CompareFold(key(a), key(b)) }
}

// DisplayName is first and last name joined and trimmed.
func DisplayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
