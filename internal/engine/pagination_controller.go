package engine

// RequestPageChange moves the page by delta. Calls inside the throttle window
// are dropped and report false; otherwise the page is clamped to the pages of
// the current display collection and the result is rendered.
func (b *Browser) RequestPageChange(delta int) bool {
	b.mu.Lock()
	if !b.loaded || !b.throttler.Allow() {
		b.mu.Unlock()
		return false
	}

	total := TotalPages(len(FilterByCategory(b.current, b.state.Category)), b.limits)
	b.state.Page = ClampPage(b.state.Page+delta, total)
	b.renderLocked()
	slice := b.slice
	b.emitMu.Lock()
	b.mu.Unlock()

	b.display.ShowSlice(slice)
	b.emitMu.Unlock()
	return true
}

// SetCategory filters by category ("" for all) and returns to page 1.
func (b *Browser) SetCategory(category string) {
	b.update(func() {
		b.state.Category = category
		b.state.Page = 1
	})
}

// CycleCategory advances to the next category in the index and returns it.
func (b *Browser) CycleCategory() string {
	var next string
	b.update(func() {
		next = NextCategory(b.categories, b.state.Category)
		b.state.Category = next
		b.state.Page = 1
	})
	return next
}

// SetSort changes the ordering. The page is kept and clamped.
func (b *Browser) SetSort(mode SortMode) {
	b.update(func() {
		b.state.Sort = mode
	})
}

// CycleSort advances to the next sort mode and returns it.
func (b *Browser) CycleSort() SortMode {
	var next SortMode
	b.update(func() {
		next = b.state.Sort.Next()
		b.state.Sort = next
	})
	return next
}

// update applies mutate to the view state, renders, and shows the result.
// It does nothing before the catalog is loaded.
func (b *Browser) update(mutate func()) {
	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return
	}
	mutate()
	b.renderLocked()
	slice := b.slice
	b.emitMu.Lock()
	b.mu.Unlock()

	b.display.ShowSlice(slice)
	b.emitMu.Unlock()
}
