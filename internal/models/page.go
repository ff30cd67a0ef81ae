package models

// Page is the envelope for paginated listings.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
}

// NewPage computes the page envelope for the given slice and totals.
func NewPage[T any](items []T, total int64, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Items:      items,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       page,
		Size:       size,
	}
}
