package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/mealfinder/internal/catalog"
)

// Browse defaults.
const (
	DefaultPageSize        = 16
	DefaultMaxPages        = 10
	DefaultSuggestionLimit = 5
)

// ErrInvalidSortMode is returned when a sort mode string is not recognized.
var ErrInvalidSortMode = errors.New("invalid sort mode")

// SortMode is the ordering applied to the filtered collection.
type SortMode string

const (
	// SortNone preserves collection order.
	SortNone SortMode = "none"
	// SortNameAsc orders by name, A to Z.
	SortNameAsc SortMode = "name-asc"
	// SortNameDesc orders by name, Z to A.
	SortNameDesc SortMode = "name-desc"
)

// IsValid reports whether s is a known sort mode. The empty string is SortNone.
func (s SortMode) IsValid() bool {
	switch s {
	case SortNone, SortNameAsc, SortNameDesc, "":
		return true
	default:
		return false
	}
}

// String returns the sort mode name.
func (s SortMode) String() string {
	if s == "" {
		return string(SortNone)
	}
	return string(s)
}

// Label returns a short human-readable description.
func (s SortMode) Label() string {
	switch s {
	case SortNameAsc:
		return "Name A-Z"
	case SortNameDesc:
		return "Name Z-A"
	default:
		return "Unsorted"
	}
}

// Next returns the mode after s in the cycle none, name-asc, name-desc.
func (s SortMode) Next() SortMode {
	switch s {
	case SortNameAsc:
		return SortNameDesc
	case SortNameDesc:
		return SortNone
	default:
		return SortNameAsc
	}
}

// ParseSortMode parses a sort mode name (case-insensitive).
func ParseSortMode(raw string) (SortMode, error) {
	mode := SortMode(strings.ToLower(strings.TrimSpace(raw)))
	if mode == "" {
		return SortNone, nil
	}
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortMode, raw)
	}
	return mode, nil
}

// ViewState is the user-selected view over the display collection.
// Category "" means all categories. Page is 1-based.
type ViewState struct {
	Category string   `json:"category"`
	Sort     SortMode `json:"sort"`
	Page     int      `json:"page"`
}

// DefaultViewState returns the initial view: all categories, unsorted, page 1.
func DefaultViewState() ViewState {
	return ViewState{Sort: SortNone, Page: 1}
}

// Limits bounds pagination.
type Limits struct {
	PageSize int
	MaxPages int
}

// DefaultLimits returns 16 items per page and at most 10 pages.
func DefaultLimits() Limits {
	return Limits{PageSize: DefaultPageSize, MaxPages: DefaultMaxPages}
}

// Cap returns the maximum number of reachable records.
func (l Limits) Cap() int {
	return l.PageSize * l.MaxPages
}

func (l Limits) normalized() Limits {
	if l.PageSize <= 0 {
		l.PageSize = DefaultPageSize
	}
	if l.MaxPages <= 0 {
		l.MaxPages = DefaultMaxPages
	}
	return l
}

// DisplaySlice is what the pipeline emits for one render.
// Empty is set when Items has no records.
type DisplaySlice struct {
	Items       []catalog.Meal `json:"items"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	TotalItems  int            `json:"total_items"`
	Empty       bool           `json:"empty"`
}

// OutputFormat selects how a slice is written by RenderSlice.
type OutputFormat string

const (
	// OutputTable renders an aligned text table.
	OutputTable OutputFormat = "table"
	// OutputJSON renders one JSON document.
	OutputJSON OutputFormat = "json"
	// OutputNDJSON renders one JSON object per record.
	OutputNDJSON OutputFormat = "ndjson"
)

// IsValid reports whether f is a supported output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return true
	default:
		return false
	}
}
