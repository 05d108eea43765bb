package cli

import (
	"context"
	"sync"

	"github.com/rshade/mealfinder/internal/catalog"
	"github.com/rshade/mealfinder/internal/config"
	"github.com/rshade/mealfinder/internal/engine"
	"github.com/rshade/mealfinder/internal/engine/cache"
	"github.com/rshade/mealfinder/internal/logging"
	"github.com/rshade/mealfinder/pkg/version"
)

// newSession wires the catalog client, loader and shard cache from cfg into a
// Browser that renders to display.
func newSession(cfg *config.Config, display engine.Display) *engine.Browser {
	store := cache.NewMemoryStore(cfg.Cache.Enabled, cfg.Cache.TTLSeconds)
	logger.Debug().
		Bool("cache_enabled", cfg.Cache.Enabled).
		Str("cache_ttl", cache.FormatTTL(cfg.Cache.TTLSeconds)).
		Int("concurrency", cfg.Catalog.Concurrency).
		Msg("session configured")
	client := catalog.NewClient(catalog.ClientOptions{
		BaseURL:    cfg.Catalog.BaseURL,
		SearchPath: cfg.Catalog.SearchPath,
		ShardParam: cfg.Catalog.ShardParam,
		Timeout:    cfg.Catalog.Timeout,
		UserAgent:  version.UserAgent(),
		Cache:      store,
	})
	loader := catalog.NewLoader(client, catalog.LoaderOptions{
		Cap:         cfg.ResultCap(),
		Concurrency: cfg.Catalog.Concurrency,
		OnLoading:   display.SetLoading,
		OnProgress:  display.SetProgress,
	})
	return engine.NewBrowser(loader, display, engine.Options{
		Limits: engine.Limits{
			PageSize: cfg.Browse.PageSize,
			MaxPages: cfg.Browse.MaxPages,
		},
		SearchDebounce:  cfg.Browse.SearchDebounce,
		PageThrottle:    cfg.Browse.PageThrottle,
		SuggestionLimit: cfg.Browse.SuggestionLimit,
	})
}

// plainDisplay is the non-interactive Display: it keeps the last frame for
// printing once the command is done and logs the rest.
type plainDisplay struct {
	ctx context.Context

	mu          sync.Mutex
	slice       engine.DisplaySlice
	suggestions []catalog.Meal
	err         error
}

var _ engine.Display = (*plainDisplay)(nil)

func newPlainDisplay(ctx context.Context) *plainDisplay {
	return &plainDisplay{ctx: ctx}
}

func (d *plainDisplay) ShowSlice(slice engine.DisplaySlice) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slice = slice
}

func (d *plainDisplay) ShowSuggestions(meals []catalog.Meal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.suggestions = meals
}

func (d *plainDisplay) HideSuggestions() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.suggestions = nil
}

func (d *plainDisplay) SetLoading(loading bool) {
	logging.FromContext(d.ctx).Debug().Str("component", "display").Bool("loading", loading).Msg("loading signal")
}

func (d *plainDisplay) ShowError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

func (d *plainDisplay) SetProgress(done, total int) {
	logging.FromContext(d.ctx).Debug().Str("component", "display").
		Int("done", done).Int("total", total).Msg("load progress")
}

// Slice returns the last rendered slice.
func (d *plainDisplay) Slice() engine.DisplaySlice {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slice
}

// Suggestions returns the visible suggestions.
func (d *plainDisplay) Suggestions() []catalog.Meal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.suggestions
}
