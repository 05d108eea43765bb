package catalog

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/mealfinder/internal/engine/batch"
	"github.com/rshade/mealfinder/internal/logging"
)

// DefaultCap is pageSize (16) × maxPages (10).
const DefaultCap = 160

// DefaultShards returns the shard key-space: the letters a through z, in order.
func DefaultShards() []string {
	return strings.Split("abcdefghijklmnopqrstuvwxyz", "")
}

// LoaderOptions configures a Loader. Zero values select the defaults.
type LoaderOptions struct {
	// Cap is the maximum number of records kept.
	Cap int
	// Concurrency is the number of shards fetched per wave; 1 is strictly sequential.
	Concurrency int
	// Shards overrides the shard key-space.
	Shards []string

	// OnLoading is called with true before the first request and false after
	// the loop ends, whatever the outcome.
	OnLoading func(loading bool)
	// OnProgress is called after each wave with shards done and total shards.
	OnProgress func(done, total int)
}

// Loader walks the shard key-space and accumulates a capped collection.
type Loader struct {
	fetcher ShardFetcher
	opts    LoaderOptions
}

// NewLoader creates a Loader around fetcher.
func NewLoader(fetcher ShardFetcher, opts LoaderOptions) *Loader {
	if opts.Cap <= 0 {
		opts.Cap = DefaultCap
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if len(opts.Shards) == 0 {
		opts.Shards = DefaultShards()
	}
	return &Loader{fetcher: fetcher, opts: opts}
}

// Cap returns the record cap.
func (l *Loader) Cap() int {
	return l.opts.Cap
}

// Load fetches shards in order until the cap is reached or the key-space is
// exhausted, then truncates to the cap. Records keep shard order, then record
// order within a shard. Any shard failure aborts the load and no collection is
// returned.
func (l *Loader) Load(ctx context.Context) ([]Meal, error) {
	log := logging.FromContext(ctx)

	if l.opts.OnLoading != nil {
		l.opts.OnLoading(true)
		defer l.opts.OnLoading(false)
	}

	proc, err := batch.NewProcessor[string](min(l.opts.Concurrency, len(l.opts.Shards)))
	if err != nil {
		return nil, err
	}
	if l.opts.OnProgress != nil {
		proc.WithProgressCallback(func(s batch.ProgressSnapshot) {
			l.opts.OnProgress(s.ProcessedItems, s.TotalItems)
		})
	}

	acc := make([]Meal, 0, l.opts.Cap)
	summary, err := proc.Process(ctx, l.opts.Shards, func(ctx context.Context, wave []string, _ int) error {
		results, waveErr := l.fetchWave(ctx, wave)
		if waveErr != nil {
			return waveErr
		}
		for _, meals := range results {
			acc = append(acc, meals...)
			if len(acc) >= l.opts.Cap {
				return batch.ErrStop
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Str("component", "catalog").Str("operation", "load").
			Int("shards_done", summary.ProcessedItems).Err(err).
			Msg("catalog load failed")
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	if len(acc) > l.opts.Cap {
		acc = acc[:l.opts.Cap]
	}

	log.Info().Str("component", "catalog").Str("operation", "load").
		Int("records", len(acc)).
		Int("shards_fetched", summary.ProcessedItems).
		Bool("cap_reached", summary.StoppedEarly).
		Dur("elapsed", summary.Elapsed).
		Msg("catalog loaded")
	return acc, nil
}

// fetchWave fetches every shard of a wave and returns results in wave order.
func (l *Loader) fetchWave(ctx context.Context, wave []string) ([][]Meal, error) {
	if len(wave) == 1 {
		meals, err := l.fetcher.FetchShard(ctx, wave[0])
		if err != nil {
			return nil, err
		}
		return [][]Meal{meals}, nil
	}

	results := make([][]Meal, len(wave))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(len(wave))
	for i, shard := range wave {
		g.Go(func() error {
			meals, err := l.fetcher.FetchShard(gCtx, shard)
			if err != nil {
				return err
			}
			results[i] = meals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
