// Package config loads and validates mealfinder configuration.
//
// Values are resolved in order: built-in defaults, the YAML config file
// (~/.mealfinder/config.yaml or --config), MEALFINDER_* environment variables,
// then CLI flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rshade/mealfinder/internal/engine/cache"
)

// Defaults for the catalog, browsing and cache sections.
const (
	DefaultBaseURL         = "https://www.themealdb.com/api/json/v1/1"
	DefaultSearchPath      = "/search.php"
	DefaultShardParam      = "f"
	DefaultTimeout         = 10 * time.Second
	DefaultConcurrency     = 1
	MaxConcurrency         = 26
	DefaultPageSize        = 16
	DefaultMaxPages        = 10
	DefaultSearchDebounce  = 500 * time.Millisecond
	DefaultPageThrottle    = 200 * time.Millisecond
	DefaultSuggestionLimit = 5
	DefaultCacheTTLSeconds = cache.DefaultTTLSeconds
	MinCacheTTLSeconds     = cache.MinTTLSeconds
	MaxCacheTTLSeconds     = cache.MaxTTLSeconds

	configFileName = "config.yaml"
)

// Environment variable names.
const (
	EnvHome            = "MEALFINDER_HOME"
	EnvBaseURL         = "MEALFINDER_BASE_URL"
	EnvConcurrency     = "MEALFINDER_CONCURRENCY"
	EnvLogLevel        = "MEALFINDER_LOG_LEVEL"
	EnvLogFormat       = "MEALFINDER_LOG_FORMAT"
	EnvLogFile         = "MEALFINDER_LOG_FILE"
	EnvCacheEnabled    = "MEALFINDER_CACHE_ENABLED"
	EnvCacheTTLSeconds = "MEALFINDER_CACHE_TTL_SECONDS"
)

// Validation errors.
var (
	ErrEmptyBaseURL       = errors.New("catalog.base_url cannot be empty")
	ErrInvalidConcurrency = fmt.Errorf("catalog.concurrency must be between 1 and %d", MaxConcurrency)
	ErrInvalidPageSize    = errors.New("browse.page_size must be >= 1")
	ErrInvalidMaxPages    = errors.New("browse.max_pages must be >= 1")
	ErrInvalidSuggestions = errors.New("browse.suggestion_limit must be >= 1")
	ErrNegativeDuration   = errors.New("durations cannot be negative")
	ErrInvalidCacheTTL    = cache.ErrInvalidTTL
)

// Config is the complete mealfinder configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Cache   CacheConfig   `yaml:"cache"`
	Browse  BrowseConfig  `yaml:"browse"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig controls how the remote catalog is queried.
type CatalogConfig struct {
	BaseURL    string        `yaml:"base_url"`
	SearchPath string        `yaml:"search_path"`
	ShardParam string        `yaml:"shard_param"`
	Timeout    time.Duration `yaml:"timeout"`
	// Concurrency is the number of shards fetched per wave. 1 is strictly sequential.
	Concurrency int `yaml:"concurrency"`
}

// CacheConfig controls the in-memory shard cache.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// BrowseConfig controls pagination, search and suggestion behaviour.
type BrowseConfig struct {
	PageSize        int           `yaml:"page_size"`
	MaxPages        int           `yaml:"max_pages"`
	SearchDebounce  time.Duration `yaml:"search_debounce"`
	PageThrottle    time.Duration `yaml:"page_throttle"`
	SuggestionLimit int           `yaml:"suggestion_limit"`
}

// LoggingConfig is the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Defaults returns a Config populated with built-in defaults only.
func Defaults() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:     DefaultBaseURL,
			SearchPath:  DefaultSearchPath,
			ShardParam:  DefaultShardParam,
			Timeout:     DefaultTimeout,
			Concurrency: DefaultConcurrency,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Browse: BrowseConfig{
			PageSize:        DefaultPageSize,
			MaxPages:        DefaultMaxPages,
			SearchDebounce:  DefaultSearchDebounce,
			PageThrottle:    DefaultPageThrottle,
			SuggestionLimit: DefaultSuggestionLimit,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// New returns defaults merged with the default config file (if present) and
// environment overrides. A default file that cannot be read or parsed is
// skipped with a warning; use Load to get the error instead.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		log.Warn().Err(err).Str("component", "config").Msg("ignoring default config file")
		cfg = Defaults()
		cfg.ApplyEnv()
	}
	return cfg
}

// Load returns defaults merged with the file at path and environment overrides.
// An empty path uses the default config file when it exists. File errors are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		if defaultPath, err := DefaultConfigPath(); err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				path = defaultPath
			}
		}
	}
	if path != "" {
		if err := MergeYAML(cfg, path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from MEALFINDER_* environment variables.
// Unparseable numeric or boolean values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Catalog.Concurrency = n
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = b
		}
	}
	if v := os.Getenv(EnvCacheTTLSeconds); v != "" {
		// Accepts "3600" or "1h"; out-of-range values are left to Validate.
		if n, err := cache.ParseTTL(v); err == nil {
			c.Cache.TTLSeconds = n
		} else if n, atoiErr := strconv.Atoi(v); atoiErr == nil {
			c.Cache.TTLSeconds = n
		}
	}
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return ErrEmptyBaseURL
	}
	if c.Catalog.Concurrency < 1 || c.Catalog.Concurrency > MaxConcurrency {
		return fmt.Errorf("%w: got %d", ErrInvalidConcurrency, c.Catalog.Concurrency)
	}
	if c.Browse.PageSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Browse.PageSize)
	}
	if c.Browse.MaxPages < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxPages, c.Browse.MaxPages)
	}
	if c.Browse.SuggestionLimit < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSuggestions, c.Browse.SuggestionLimit)
	}
	if c.Catalog.Timeout < 0 || c.Browse.SearchDebounce < 0 || c.Browse.PageThrottle < 0 {
		return ErrNegativeDuration
	}
	if c.Cache.Enabled {
		if _, err := cache.ValidateTTL(c.Cache.TTLSeconds); err != nil {
			return fmt.Errorf("cache.ttl_seconds: %w", err)
		}
	}
	return nil
}

// ResultCap is the maximum number of meals kept after loading.
func (c *Config) ResultCap() int {
	return c.Browse.PageSize * c.Browse.MaxPages
}

// GetConfigDir returns the mealfinder configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mealfinder"), nil
}

// DefaultConfigPath returns the path of the default config file.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
