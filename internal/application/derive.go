package application

import "strings"

// Page is one derived view of a loaded list: the filtered records sliced to a page.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Size       int `json:"size"`
}

// Derive filters list by a case-insensitive substring match of term against
// text(item) and returns the 1-based page of the result. Order is preserved.
// Pages outside the range come back empty; size <= 0 disables paging.
func Derive[T any](list []T, term string, page, size int, text func(T) string) Page[T] {
	needle := strings.ToLower(term)
	filtered := make([]T, 0, len(list))
	for _, item := range list {
		if needle == "" || strings.Contains(strings.ToLower(text(item)), needle) {
			filtered = append(filtered, item)
		}
	}

	p := Page[T]{Total: len(filtered), Page: page, Size: size}
	if size <= 0 {
		p.Items = filtered
		if p.Total > 0 {
			p.TotalPages = 1
		}
		return p
	}

	p.TotalPages = (p.Total + size - 1) / size
	start := (page - 1) * size
	if page < 1 || start >= p.Total {
		p.Items = []T{}
		return p
	}
	end := start + size
	if end > p.Total {
		end = p.Total
	}
	p.Items = filtered[start:end]
	return p
}
