package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rshade/mealfinder/internal/engine/cache"
	"github.com/rshade/mealfinder/internal/logging"
)

// Client defaults.
const (
	DefaultBaseURL    = "https://www.themealdb.com/api/json/v1/1"
	DefaultSearchPath = "/search.php"
	DefaultShardParam = "f"
	DefaultTimeout    = 10 * time.Second

	// maxBodyBytes bounds a single shard response.
	maxBodyBytes = 8 << 20
)

// ShardFetcher fetches the records of one shard.
type ShardFetcher interface {
	FetchShard(ctx context.Context, shard string) ([]Meal, error)
}

// ClientOptions configures a Client. Zero values select the defaults.
type ClientOptions struct {
	BaseURL    string
	SearchPath string
	ShardParam string
	Timeout    time.Duration
	UserAgent  string

	// HTTPClient overrides the HTTP client (Timeout is then ignored).
	HTTPClient *http.Client

	// Cache stores raw shard bodies. Nil disables caching.
	Cache cache.Store
}

// Client issues shard search requests against the remote catalog.
type Client struct {
	baseURL    string
	searchPath string
	shardParam string
	userAgent  string
	httpClient *http.Client
	cache      cache.Store
}

// NewClient creates a catalog client.
func NewClient(opts ClientOptions) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		searchPath: opts.SearchPath,
		shardParam: opts.ShardParam,
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		cache:      opts.Cache,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.searchPath == "" {
		c.searchPath = DefaultSearchPath
	}
	if c.shardParam == "" {
		c.shardParam = DefaultShardParam
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

// BaseURL returns the catalog base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ShardURL returns the request URL for a shard.
func (c *Client) ShardURL(shard string) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(c.searchPath, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid catalog URL: %w", err)
	}
	q := u.Query()
	q.Set(c.shardParam, shard)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchShard returns the records of one shard, serving from the cache when a
// fresh entry exists. Failures are returned as *FetchError.
func (c *Client) FetchShard(ctx context.Context, shard string) ([]Meal, error) {
	log := logging.FromContext(ctx)
	key := cache.ShardKey(c.baseURL, shard)

	if c.cache != nil {
		if entry, err := c.cache.Get(key); err == nil {
			if meals, decodeErr := decodeShard(entry.Data); decodeErr == nil {
				log.Debug().Str("component", "catalog").Str("shard", shard).
					Int("records", len(meals)).Msg("shard served from cache")
				return meals, nil
			}
		}
	}

	body, err := c.get(ctx, shard)
	if err != nil {
		return nil, err
	}

	meals, err := decodeShard(body)
	if err != nil {
		return nil, &FetchError{Shard: shard, Op: "decode", Err: err}
	}

	if c.cache != nil {
		if setErr := c.cache.Set(key, body); setErr != nil && !errors.Is(setErr, cache.ErrCacheDisabled) {
			log.Warn().Str("component", "catalog").Str("shard", shard).Err(setErr).
				Msg("failed to cache shard")
		}
	}

	log.Debug().Str("component", "catalog").Str("shard", shard).
		Int("records", len(meals)).Msg("shard fetched")
	return meals, nil
}

func (c *Client) get(ctx context.Context, shard string) ([]byte, error) {
	target, err := c.ShardURL(shard)
	if err != nil {
		return nil, &FetchError{Shard: shard, Op: "request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Shard: shard, Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Shard: shard, Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &FetchError{
			Shard: shard,
			Op:    "status",
			Err:   fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Shard: shard, Op: "read", Err: err}
	}
	return body, nil
}
