// Package listview holds the pure projections behind every admin list:
// client-side search and fixed-size pagination.
package listview

import "strings"

// Filter keeps the items whose field contains term, ignoring case. An empty
// term keeps everything.
func Filter[T any](items []T, term string, field func(T) string) []T {
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle == "" || strings.Contains(strings.ToLower(field(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}

type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Pages      []int `json:"pages"`
}

// Paginate slices out the 1-based page. A page past the end yields an empty
// slice; the page index is left untouched so callers see what they asked for.
func Paginate[T any](items []T, page int, pageSize int) ([]T, PageInfo) {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	pages := make([]int, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		pages = append(pages, i)
	}
	info := PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(items),
		TotalPages: totalPages,
		Pages:      pages,
	}

	if page > totalPages {
		return []T{}, info
	}
	first := (page - 1) * pageSize
	last := min(first+pageSize, len(items))
	return items[first:last], info
}
