package engine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rshade/mealfinder/internal/catalog"
	"github.com/rshade/mealfinder/internal/engine/timing"
	"github.com/rshade/mealfinder/internal/logging"
)

// Timing defaults.
const (
	DefaultSearchDebounce = 500 * time.Millisecond
	DefaultPageThrottle   = 200 * time.Millisecond
)

// ErrNotLoaded is returned by operations that need a loaded catalog.
var ErrNotLoaded = errors.New("catalog not loaded")

// Display receives everything the Browser wants shown. Implementations must
// not block and must not call back into the Browser synchronously.
type Display interface {
	ShowSlice(slice DisplaySlice)
	ShowSuggestions(meals []catalog.Meal)
	HideSuggestions()
	SetLoading(loading bool)
	ShowError(err error)
	SetProgress(done, total int)
}

// CatalogLoader produces the original collection.
type CatalogLoader interface {
	Load(ctx context.Context) ([]catalog.Meal, error)
}

// Options configures a Browser. Zero values select the defaults.
type Options struct {
	Limits          Limits
	SearchDebounce  time.Duration
	PageThrottle    time.Duration
	SuggestionLimit int

	// Now overrides the throttle clock.
	Now func() time.Time
}

// Snapshot is a copy of the Browser state.
type Snapshot struct {
	Loaded      bool
	Err         error
	State       ViewState
	Slice       DisplaySlice
	Categories  []string
	Query       string
	Suggestions []catalog.Meal
	// Original is the size of the loaded collection.
	Original int
	// Filtered is the size of the display collection before category filtering.
	Filtered int
}

// Browser is one browsing session. It owns the original collection, the
// display collection derived from it by search, the view state and the
// timers. Mutations happen under mu; display calls happen after mu is
// released, serialized by emitMu so frames arrive in mutation order.
type Browser struct {
	mu     sync.Mutex
	emitMu sync.Mutex

	loader  CatalogLoader
	display Display

	limits          Limits
	suggestionLimit int
	debouncer       *timing.Debouncer
	throttler       *timing.Throttler

	loaded      bool
	lastErr     error
	original    []catalog.Meal
	current     []catalog.Meal
	categories  []string
	state       ViewState
	slice       DisplaySlice
	query       string
	suggestions []catalog.Meal

	// searchGen identifies the latest debounced search; older ones are dropped.
	searchGen            uint64
	suggestionsDismissed bool
}

// NewBrowser creates a Browser that loads through loader and renders to display.
func NewBrowser(loader CatalogLoader, display Display, opts Options) *Browser {
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = DefaultSearchDebounce
	}
	if opts.PageThrottle <= 0 {
		opts.PageThrottle = DefaultPageThrottle
	}
	if opts.SuggestionLimit <= 0 {
		opts.SuggestionLimit = DefaultSuggestionLimit
	}

	throttler := timing.NewThrottler(opts.PageThrottle)
	if opts.Now != nil {
		throttler = throttler.WithClock(opts.Now)
	}

	return &Browser{
		loader:          loader,
		display:         display,
		limits:          opts.Limits.normalized(),
		suggestionLimit: opts.SuggestionLimit,
		debouncer:       timing.NewDebouncer(opts.SearchDebounce),
		throttler:       throttler,
		state:           DefaultViewState(),
	}
}

// Limits returns the pagination limits in effect.
func (b *Browser) Limits() Limits {
	return b.limits
}

// Start loads the catalog and renders page 1. On failure nothing is rendered,
// the display is shown the error, and the error is returned.
func (b *Browser) Start(ctx context.Context) error {
	log := logging.FromContext(ctx)

	meals, err := b.loader.Load(ctx)
	if err != nil {
		b.mu.Lock()
		b.lastErr = err
		b.emitMu.Lock()
		b.mu.Unlock()
		b.display.ShowError(err)
		b.emitMu.Unlock()
		return err
	}

	b.mu.Lock()
	b.loaded = true
	b.lastErr = nil
	b.original = meals
	b.current = meals
	b.categories = DeriveCategories(meals)
	b.query = ""
	b.suggestions = nil
	b.state = DefaultViewState()
	b.renderLocked()
	slice := b.slice
	b.emitMu.Lock()
	b.mu.Unlock()

	b.display.ShowSlice(slice)
	b.display.HideSuggestions()
	b.emitMu.Unlock()

	log.Debug().Str("component", "browser").
		Int("records", len(meals)).
		Int("categories", len(b.Categories())).
		Msg("browser started")
	return nil
}

// Retry re-runs the load after a failure.
func (b *Browser) Retry(ctx context.Context) error {
	return b.Start(ctx)
}

// Snapshot returns a copy of the current state.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	slice := b.slice
	slice.Items = slices.Clone(b.slice.Items)
	return Snapshot{
		Loaded:      b.loaded,
		Err:         b.lastErr,
		State:       b.state,
		Slice:       slice,
		Categories:  slices.Clone(b.categories),
		Query:       b.query,
		Suggestions: slices.Clone(b.suggestions),
		Original:    len(b.original),
		Filtered:    len(b.current),
	}
}

// Categories returns the category index of the loaded collection.
func (b *Browser) Categories() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.categories)
}

// Meal returns a record of the original collection by ID.
func (b *Browser) Meal(id string) (catalog.Meal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return FindMeal(b.original, id)
}

// Close cancels any pending search.
func (b *Browser) Close() {
	b.debouncer.Stop()
}

// renderLocked runs the pipeline over the display collection. Caller holds mu.
func (b *Browser) renderLocked() {
	b.slice, b.state = Render(b.current, b.state, b.limits)
}
