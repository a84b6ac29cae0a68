package record

import "github.com/cfohub/cfohub/internal/shared"

// Page is one window over a filtered listing.
type Page[T any] struct {
	Items      []T               `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
	Filter     Filter            `json:"filter"`
	Empty      bool              `json:"empty"`
}

// NewPage slices items through window. An empty listing yields one page with
// no items and Empty set.
func NewPage[T any](items []T, window shared.PageWindow, f Filter) Page[T] {
	visible, meta := shared.Paginate(items, window)
	return Page[T]{
		Items:      visible,
		Pagination: meta,
		Filter:     f,
		Empty:      len(items) == 0,
	}
}
