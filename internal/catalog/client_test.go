package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/mealfinder/internal/engine/cache"
)

func shardBody(shard string, n int) string {
	var sb strings.Builder
	sb.WriteString(`{"meals":[`)
	for i := range n {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"idMeal":"%s%d","strMeal":"%s meal %d","strCategory":"Cat%d"}`, shard, i, shard, i, i%3)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func newCatalogServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestDecodeShard(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "null meals", body: `{"meals":null}`, want: 0},
		{name: "missing meals", body: `{}`, want: 0},
		{name: "two records", body: shardBody("a", 2), want: 2},
		{name: "bad record skipped", body: `{"meals":[{"idMeal":1},{"idMeal":"2","strMeal":"Ok"}]}`, want: 1},
		{name: "invalid json", body: `{"meals":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meals, err := decodeShard([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, meals, tt.want)
		})
	}
}

func TestDecodeShard_Fields(t *testing.T) {
	body := `{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole",` +
		`"strCategory":"Chicken","strArea":"Japanese","strMealThumb":"https://img/1.jpg",` +
		`"strTags":"Meat, Casserole,,","strInstructions":"Preheat oven.",` +
		`"strSource":"https://src","strYoutube":"https://yt"}]}`

	meals, err := decodeShard([]byte(body))
	require.NoError(t, err)
	require.Len(t, meals, 1)

	assert.Equal(t, Meal{
		ID:           "52772",
		Name:         "Teriyaki Chicken Casserole",
		Category:     "Chicken",
		Area:         "Japanese",
		ThumbnailURL: "https://img/1.jpg",
		Tags:         []string{"Meat", "Casserole"},
		Instructions: "Preheat oven.",
		SourceURL:    "https://src",
		VideoURL:     "https://yt",
	}, meals[0])
}

func TestClient_ShardURL(t *testing.T) {
	c := NewClient(ClientOptions{BaseURL: "https://example.test/api/"})
	got, err := c.ShardURL("b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api/search.php?f=b", got)
}

func TestClient_FetchShard(t *testing.T) {
	srv, _ := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		assert.Equal(t, "mealfinder-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(shardBody(r.URL.Query().Get("f"), 3)))
	})

	c := NewClient(ClientOptions{BaseURL: srv.URL, UserAgent: "mealfinder-test"})
	meals, err := c.FetchShard(context.Background(), "c")
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, "c0", meals[0].ID)
	assert.Equal(t, "c meal 2", meals[2].Name)
}

func TestClient_FetchShard_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantOp  string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantOp: "status",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantOp: "status",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantOp: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newCatalogServer(t, tt.handler)
			c := NewClient(ClientOptions{BaseURL: srv.URL})

			meals, err := c.FetchShard(context.Background(), "q")
			require.Error(t, err)
			assert.Nil(t, meals)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "q", fe.Shard)
			assert.Equal(t, tt.wantOp, fe.Op)
			if tt.wantOp == "status" {
				assert.ErrorIs(t, err, ErrUnexpectedStatus)
			}
		})
	}
}

func TestClient_FetchShard_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(ClientOptions{BaseURL: url})
	_, err := c.FetchShard(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, IsFetchError(err))
}

func TestClient_FetchShard_Cache(t *testing.T) {
	srv, hits := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(shardBody(r.URL.Query().Get("f"), 2)))
	})

	store := cache.NewMemoryStore(true, cache.DefaultTTLSeconds)
	c := NewClient(ClientOptions{BaseURL: srv.URL, Cache: store})
	ctx := context.Background()

	first, err := c.FetchShard(ctx, "a")
	require.NoError(t, err)
	second, err := c.FetchShard(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	_, err = c.FetchShard(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClient_FetchShard_FailureNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv, hits := newCatalogServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(shardBody("a", 1)))
	})

	c := NewClient(ClientOptions{BaseURL: srv.URL, Cache: cache.NewMemoryStore(true, cache.DefaultTTLSeconds)})
	_, err := c.FetchShard(context.Background(), "a")
	require.Error(t, err)

	fail.Store(false)
	meals, err := c.FetchShard(context.Background(), "a")
	require.NoError(t, err)
	assert.Len(t, meals, 1)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_FetchShard_DisabledCache(t *testing.T) {
	srv, hits := newCatalogServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	c := NewClient(ClientOptions{BaseURL: srv.URL, Cache: cache.NewMemoryStore(false, cache.DefaultTTLSeconds)})
	for range 2 {
		meals, err := c.FetchShard(context.Background(), "x")
		require.NoError(t, err)
		assert.Empty(t, meals)
	}
	assert.Equal(t, int32(2), hits.Load())
}
