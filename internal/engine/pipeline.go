package engine

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/mealfinder/internal/catalog"
)

// FilterByCategory returns the meals whose category equals category exactly.
// An empty category returns meals unchanged.
func FilterByCategory(meals []catalog.Meal, category string) []catalog.Meal {
	if category == "" {
		return meals
	}
	out := make([]catalog.Meal, 0, len(meals))
	for _, m := range meals {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// SortMeals returns a sorted copy of meals. Names are compared with English
// collation and the sort is stable. SortNone returns meals unchanged.
func SortMeals(meals []catalog.Meal, mode SortMode) []catalog.Meal {
	if mode != SortNameAsc && mode != SortNameDesc {
		return meals
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(language.English)
	out := slices.Clone(meals)
	slices.SortStableFunc(out, func(a, b catalog.Meal) int {
		c := col.CompareString(a.Name, b.Name)
		if mode == SortNameDesc {
			return -c
		}
		return c
	})
	return out
}

// TotalPages returns min(maxPages, ceil(count/pageSize)), never less than 1.
func TotalPages(count int, limits Limits) int {
	limits = limits.normalized()
	pages := (count + limits.PageSize - 1) / limits.PageSize
	pages = min(pages, limits.MaxPages)
	return max(pages, 1)
}

// ClampPage bounds page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	totalPages = max(totalPages, 1)
	return min(max(page, 1), totalPages)
}

// Paginate returns the records of a 1-based page. Out-of-range pages yield an
// empty slice.
func Paginate(meals []catalog.Meal, page, pageSize int) []catalog.Meal {
	if page < 1 || pageSize <= 0 {
		return []catalog.Meal{}
	}
	start := (page - 1) * pageSize
	if start >= len(meals) {
		return []catalog.Meal{}
	}
	end := min(start+pageSize, len(meals))
	return slices.Clone(meals[start:end])
}

// Render runs the pipeline over collection and returns the slice to display
// together with the view state after page clamping. The input is not mutated.
func Render(collection []catalog.Meal, state ViewState, limits Limits) (DisplaySlice, ViewState) {
	limits = limits.normalized()

	filtered := FilterByCategory(collection, state.Category)
	sorted := SortMeals(filtered, state.Sort)

	total := TotalPages(len(sorted), limits)
	state.Page = ClampPage(state.Page, total)

	items := Paginate(sorted, state.Page, limits.PageSize)
	return DisplaySlice{
		Items:       items,
		CurrentPage: state.Page,
		TotalPages:  total,
		TotalItems:  len(sorted),
		Empty:       len(items) == 0,
	}, state
}

// NormalizeQuery trims and lower-cases a search query.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// MatchName returns, in collection order, the meals whose lower-cased name
// contains the normalized query, keeping at most limit results. A limit of
// zero or less keeps every match.
func MatchName(meals []catalog.Meal, query string, limit int) []catalog.Meal {
	q := NormalizeQuery(query)
	out := make([]catalog.Meal, 0)
	for _, m := range meals {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(m.Name), q) {
			out = append(out, m)
		}
	}
	return out
}

// FindMeal returns the meal with the given ID.
func FindMeal(meals []catalog.Meal, id string) (catalog.Meal, bool) {
	for _, m := range meals {
		if m.ID == id {
			return m, true
		}
	}
	return catalog.Meal{}, false
}
