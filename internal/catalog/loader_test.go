package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher returns perShard records for every shard and records calls.
type fakeFetcher struct {
	mu       sync.Mutex
	perShard int
	fail     map[string]error
	calls    []string
}

func (f *fakeFetcher) FetchShard(_ context.Context, shard string) ([]Meal, error) {
	f.mu.Lock()
	f.calls = append(f.calls, shard)
	f.mu.Unlock()

	if err, ok := f.fail[shard]; ok {
		return nil, err
	}
	meals := make([]Meal, f.perShard)
	for i := range meals {
		meals[i] = Meal{ID: fmt.Sprintf("%s%02d", shard, i), Name: fmt.Sprintf("%s %d", shard, i)}
	}
	return meals, nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestDefaultShards(t *testing.T) {
	shards := DefaultShards()
	require.Len(t, shards, 26)
	assert.Equal(t, "a", shards[0])
	assert.Equal(t, "z", shards[25])
}

func TestLoader_StopsAtCap(t *testing.T) {
	f := &fakeFetcher{perShard: 20}
	l := NewLoader(f, LoaderOptions{})

	meals, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, meals, DefaultCap)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, f.Calls())
	assert.Equal(t, "a00", meals[0].ID)
	assert.Equal(t, "h19", meals[159].ID)
}

func TestLoader_TruncatesToCap(t *testing.T) {
	f := &fakeFetcher{perShard: 50}
	l := NewLoader(f, LoaderOptions{})

	meals, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, meals, DefaultCap)
	assert.Equal(t, []string{"a", "b", "c", "d"}, f.Calls())
	assert.Equal(t, "d09", meals[159].ID)
}

func TestLoader_ExhaustsKeySpace(t *testing.T) {
	f := &fakeFetcher{perShard: 2}
	l := NewLoader(f, LoaderOptions{})

	meals, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, meals, 52)
	assert.Len(t, f.Calls(), 26)
}

func TestLoader_FetchErrorReturnsNothing(t *testing.T) {
	boom := &FetchError{Shard: "c", Op: "status", Err: ErrUnexpectedStatus}
	f := &fakeFetcher{perShard: 5, fail: map[string]error{"c": boom}}

	var signals []bool
	l := NewLoader(f, LoaderOptions{OnLoading: func(v bool) { signals = append(signals, v) }})

	meals, err := l.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, meals)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "c", fe.Shard)
	assert.Equal(t, []string{"a", "b", "c"}, f.Calls())
	assert.Equal(t, []bool{true, false}, signals)
}

func TestLoader_LoadingSignalAndProgress(t *testing.T) {
	f := &fakeFetcher{perShard: 40}

	var (
		signals  []bool
		progress [][2]int
	)
	l := NewLoader(f, LoaderOptions{
		OnLoading: func(v bool) {
			if v {
				assert.Empty(t, f.Calls(), "loading raised before first request")
			}
			signals = append(signals, v)
		},
		OnProgress: func(done, total int) { progress = append(progress, [2]int{done, total}) },
	})

	_, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, signals)
	assert.Equal(t, [][2]int{{1, 26}, {2, 26}, {3, 26}, {4, 26}}, progress)
}

func TestLoader_ConcurrentWaves(t *testing.T) {
	f := &fakeFetcher{perShard: 20}
	l := NewLoader(f, LoaderOptions{Concurrency: 3})

	meals, err := l.Load(context.Background())
	require.NoError(t, err)

	// Three waves of three shards: the third wave reaches the cap.
	assert.Len(t, f.Calls(), 9)
	assert.Len(t, meals, DefaultCap)
	for i, m := range meals {
		shard := string(rune('a' + i/20))
		assert.True(t, strings.HasPrefix(m.ID, shard), "record %d out of shard order: %s", i, m.ID)
	}
}

func TestLoader_ContextCanceled(t *testing.T) {
	f := &fakeFetcher{perShard: 1}
	l := NewLoader(f, LoaderOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	meals, err := l.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, meals)
	assert.Empty(t, f.Calls())
}

func TestLoader_WithClient(t *testing.T) {
	srv, hits := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(shardBody(r.URL.Query().Get("f"), 20)))
	})

	l := NewLoader(NewClient(ClientOptions{BaseURL: srv.URL}), LoaderOptions{})
	meals, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, meals, 160)
	assert.Equal(t, int32(8), hits.Load())
}
