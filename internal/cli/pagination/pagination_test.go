package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/mealfinder/internal/engine"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PaginationParams
		wantErr error
	}{
		{
			name:   "valid default",
			params: *NewPaginationParams(),
		},
		{
			name:   "valid page and sort",
			params: PaginationParams{Page: 3, Sort: "name:desc"},
		},
		{
			name:    "zero page",
			params:  PaginationParams{Page: 0},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "negative page",
			params:  PaginationParams{Page: -2},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "bad sort field",
			params:  PaginationParams{Page: 1, Sort: "rating"},
			wantErr: ErrInvalidSortField,
		},
		{
			name:    "bad sort order",
			params:  PaginationParams{Page: 1, Sort: "name:up"},
			wantErr: ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		input     string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{"", DefaultSortField, DefaultSortOrder, nil},
		{"name", "name", "asc", nil},
		{"Name:DESC", "name", "desc", nil},
		{" name : asc ", "name", "asc", nil},
		{":desc", "", "", ErrEmptySortField},
		{"name:asc:extra", "", "", ErrInvalidSortFormat},
		{"name:sideways", "", "", ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, order, err := ParseSort(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestParseSortExpression(t *testing.T) {
	tests := []struct {
		expr    string
		want    engine.SortMode
		wantErr bool
	}{
		{"", engine.SortNone, false},
		{"none", engine.SortNone, false},
		{"name", engine.SortNameAsc, false},
		{"name:asc", engine.SortNameAsc, false},
		{"name:desc", engine.SortNameDesc, false},
		{"category", "", true},
		{"name:", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseSortExpression(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidSortField(t *testing.T) {
	assert.True(t, IsValidSortField("name"))
	assert.True(t, IsValidSortField("none"))
	assert.False(t, IsValidSortField("area"))
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name  string
		slice engine.DisplaySlice
		want  PaginationMeta
	}{
		{
			name:  "first of many",
			slice: engine.DisplaySlice{CurrentPage: 1, TotalPages: 10, TotalItems: 160},
			want:  PaginationMeta{CurrentPage: 1, PageSize: 16, TotalPages: 10, TotalItems: 160, HasNext: true},
		},
		{
			name:  "middle",
			slice: engine.DisplaySlice{CurrentPage: 5, TotalPages: 10, TotalItems: 160},
			want: PaginationMeta{
				CurrentPage: 5, PageSize: 16, TotalPages: 10, TotalItems: 160,
				HasPrevious: true, HasNext: true,
			},
		},
		{
			name:  "last",
			slice: engine.DisplaySlice{CurrentPage: 10, TotalPages: 10, TotalItems: 160},
			want:  PaginationMeta{CurrentPage: 10, PageSize: 16, TotalPages: 10, TotalItems: 160, HasPrevious: true},
		},
		{
			name:  "empty",
			slice: engine.DisplaySlice{CurrentPage: 1, TotalPages: 1, Empty: true},
			want:  PaginationMeta{CurrentPage: 1, PageSize: 16, TotalPages: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPaginationMeta(tt.slice, 16))
		})
	}
}
