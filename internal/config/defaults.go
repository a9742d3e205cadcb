package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	DefaultOutputPath = "merged.sgmodule"

	DefaultTimeout     = 30 * time.Second
	DefaultRetries     = 3
	DefaultBackoffBase = 2.0
	DefaultWorkers     = 5

	DefaultCacheEnabled = false
	DefaultCacheTTL     = 24 * time.Hour

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sgmerge"
	}
	return filepath.Join(home, ".sgmerge")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:     DefaultTimeout,
			Retries:     DefaultRetries,
			BackoffBase: DefaultBackoffBase,
			Workers:     DefaultWorkers,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
