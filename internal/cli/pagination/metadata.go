package pagination

import "github.com/rshade/mealfinder/internal/engine"

// PaginationMeta contains metadata about a rendered page.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta creates pagination metadata for a slice rendered with pageSize.
func NewPaginationMeta(slice engine.DisplaySlice, pageSize int) PaginationMeta {
	currentPage := max(slice.CurrentPage, 1)
	return PaginationMeta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  slice.TotalPages,
		TotalItems:  slice.TotalItems,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < slice.TotalPages,
	}
}
