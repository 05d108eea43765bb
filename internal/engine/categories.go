package engine

import "github.com/rshade/mealfinder/internal/catalog"

// DeriveCategories returns the distinct non-empty categories of meals in
// order of first appearance.
func DeriveCategories(meals []catalog.Meal) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, m := range meals {
		if m.Category == "" {
			continue
		}
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		categories = append(categories, m.Category)
	}
	return categories
}

// NextCategory returns the category after current in the cycle
// all, categories[0], ..., categories[n-1], all.
func NextCategory(categories []string, current string) string {
	if current == "" {
		if len(categories) == 0 {
			return ""
		}
		return categories[0]
	}
	for i, c := range categories {
		if c == current {
			if i+1 < len(categories) {
				return categories[i+1]
			}
			return ""
		}
	}
	return ""
}
