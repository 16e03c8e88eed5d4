package dto

// Paginated wraps list payloads in the shared envelope.
type Paginated[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

func NewPaginated[T any](items []T, total int64, page, pageSize int) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
}
