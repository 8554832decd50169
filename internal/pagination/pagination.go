// Package pagination slices ordered collections into fixed-size pages.
// An out-of-range page number never fails: it clamps to the nearest
// valid page.
package pagination

const DefaultPageSize = 10

type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int   `json:"number"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// Window is the store-level slice (LIMIT/OFFSET) corresponding to a
// clamped page number over a collection of Total items.
type Window struct {
	Number     int
	TotalPages int
	Total      int64
	Limit      int
	Offset     int
}

// WindowFor clamps requested into [1, totalPages] and computes the
// LIMIT/OFFSET pair for it. An empty collection still has one (empty)
// page.
func WindowFor(total int64, pageSize int, requested int) Window {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Window{
		Number: number,
		TotalPages: totalPages,
		Total: total,
		Limit: pageSize,
		Offset: (number - 1) * pageSize,
	}
}

func NewPage[T any](items []T, w Window) *Page[T] {
	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Items: items,
		Number: w.Number,
		TotalPages: w.TotalPages,
		TotalItems: w.Total,
		HasNext: w.Number < w.TotalPages,
		HasPrevious: w.Number > 1,
	}
}

// Paginate slices an in-memory ordered collection.
func Paginate[T any](items []T, pageSize int, requested int) *Page[T] {
	w := WindowFor(int64(len(items)), pageSize, requested)

	end := w.Offset + w.Limit
	if end > len(items) {
		end = len(items)
	}

	return NewPage(items[w.Offset:end], w)
}
