package pagination

import (
	"fmt"
	"slices"

	"github.com/rshade/mealfinder/internal/engine"
)

// Sort fields accepted by ParseSortExpression.
const (
	SortFieldName = "name"
	SortFieldNone = "none"
)

// ValidSortFields returns the accepted sort fields in a stable order.
func ValidSortFields() []string {
	return []string{SortFieldName, SortFieldNone}
}

// IsValidSortField reports whether field may be used in a sort expression.
func IsValidSortField(field string) bool {
	return slices.Contains(ValidSortFields(), field)
}

// ParseSortExpression maps a "field[:order]" expression to a sort mode.
// Supports:
//   - "" or "none" - collection order
//   - "name" or "name:asc" - name A to Z
//   - "name:desc" - name Z to A
func ParseSortExpression(expr string) (engine.SortMode, error) {
	field, order, err := ParseSort(expr)
	if err != nil {
		return "", err
	}

	switch field {
	case DefaultSortField, SortFieldNone:
		return engine.SortNone, nil
	case SortFieldName:
		if order == SortOrderDesc {
			return engine.SortNameDesc, nil
		}
		return engine.SortNameAsc, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidSortField, field, ValidSortFields())
	}
}
