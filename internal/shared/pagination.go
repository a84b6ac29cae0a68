package shared

import "math"

// DefaultPerPage is used when a listing omits or sends a non-positive page size.
const DefaultPerPage = 10

// PageWindow selects one page of a filtered listing.
type PageWindow struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata. An empty listing still has one
// page and the requested page is clamped into [1, TotalPages].
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page <= 0 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first item on the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Paginate returns the slice of items visible through the window. The window
// is clamped first, so the result is never out of range.
func Paginate[T any](items []T, window PageWindow) ([]T, Pagination) {
	meta := NewPagination(window.Page, window.PerPage, len(items))
	start := meta.Offset()
	if start >= len(items) {
		return []T{}, meta
	}
	end := start + meta.PerPage
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, meta
}
