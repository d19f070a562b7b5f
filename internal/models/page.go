package models

// Page is one slice of a larger result set together with the paging metadata
// the gateway computed for it. The page index is zero-based; the metadata is
// carried through verbatim, never recomputed downstream.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	IsLast        bool  `json:"is_last"`
}

// NewPage computes the derived metadata for a page sliced out of a result set
// of total rows. totalPages = ceil(total/size) for size > 0.
func NewPage[T any](content []T, pageNumber, pageSize int, total int64) Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Page[T]{
		Content:       content,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		IsLast:        pageNumber >= totalPages-1,
	}
}
