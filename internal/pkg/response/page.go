package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items    []T             `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int             `json:"total"`
	Links    map[string]Link `json:"_links"`
}

// NewPageResponse is a helper to quickly create a response.
// selfHref is the collection path the page was listed from.
func NewPageResponse[T any](items []T, page, pageSize, total int, selfHref string) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Links:    SelfLinks(selfHref),
	}
}
