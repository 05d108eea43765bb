package engine

import (
	"slices"

	"github.com/rshade/mealfinder/internal/catalog"
)

// OnSearchInput schedules a search for raw after the debounce delay. Each call
// cancels the previously scheduled one, so only the last input of a burst runs.
// A later SelectSuggestion cancels it too.
func (b *Browser) OnSearchInput(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.searchGen++
	gen := b.searchGen
	b.suggestionsDismissed = false
	b.debouncer.Trigger(func() {
		b.search(raw, gen)
	})
}

// Search runs a search immediately. An empty query restores the original
// collection with the page clamped and hides suggestions. Otherwise the display
// collection becomes the name matches of the original collection, the page
// resets to 1, and up to the suggestion limit of matches are shown.
func (b *Browser) Search(raw string) {
	b.search(raw, 0)
}

// search runs a search. A non-zero gen comes from OnSearchInput and is dropped
// once a newer input or a selection has superseded it. Suggestions stay hidden
// after DismissSuggestions until the input changes.
func (b *Browser) search(raw string, gen uint64) {
	b.mu.Lock()
	if !b.loaded || (gen != 0 && gen != b.searchGen) {
		b.mu.Unlock()
		return
	}
	showSuggestions := gen == 0 || !b.suggestionsDismissed

	q := NormalizeQuery(raw)
	b.query = q
	if q == "" {
		b.current = b.original
		b.suggestions = nil
	} else {
		matches := MatchName(b.original, q, b.limits.Cap())
		b.current = matches
		b.state.Page = 1
		b.suggestions = slices.Clone(matches[:min(len(matches), b.suggestionLimit)])
	}
	b.renderLocked()
	slice := b.slice
	if !showSuggestions {
		b.suggestions = nil
	}
	suggestions := slices.Clone(b.suggestions)
	b.emitMu.Lock()
	b.mu.Unlock()

	b.display.ShowSlice(slice)
	if len(suggestions) > 0 {
		b.display.ShowSuggestions(suggestions)
	} else {
		b.display.HideSuggestions()
	}
	b.emitMu.Unlock()
}

// SelectSuggestion narrows the display collection to the record with id,
// returns to page 1 and hides suggestions. A pending debounced search is
// cancelled. It reports false when no such record exists.
func (b *Browser) SelectSuggestion(id string) bool {
	b.mu.Lock()
	meal, ok := FindMeal(b.suggestions, id)
	if !ok {
		meal, ok = FindMeal(b.original, id)
	}
	if !b.loaded || !ok {
		b.mu.Unlock()
		return false
	}

	b.searchGen++
	b.debouncer.Stop()
	b.current = []catalog.Meal{meal}
	b.state.Page = 1
	b.suggestions = nil
	b.renderLocked()
	slice := b.slice
	b.emitMu.Lock()
	b.mu.Unlock()

	b.display.ShowSlice(slice)
	b.display.HideSuggestions()
	b.emitMu.Unlock()
	return true
}

// DismissSuggestions hides the suggestion list without changing the results.
// A pending debounced search still runs but keeps the list hidden.
func (b *Browser) DismissSuggestions() {
	b.mu.Lock()
	b.suggestions = nil
	b.suggestionsDismissed = true
	b.emitMu.Lock()
	b.mu.Unlock()

	b.display.HideSuggestions()
	b.emitMu.Unlock()
}
