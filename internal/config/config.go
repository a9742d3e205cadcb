package config

import (
	"time"

	"github.com/sgmodkit/sgmerge/internal/fetcher"
)

// Config represents the application configuration
type Config struct {
	Fetch   FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// FetchConfig contains source fetching settings
type FetchConfig struct {
	Timeout     time.Duration       `mapstructure:"timeout" yaml:"timeout"`
	Retries     int                 `mapstructure:"retries" yaml:"retries"`
	BackoffBase float64             `mapstructure:"backoff_base" yaml:"backoff_base"`
	PreferLocal bool                `mapstructure:"prefer_local" yaml:"prefer_local"`
	UserAgent   string              `mapstructure:"user_agent" yaml:"user_agent"`
	ProxyURL    string              `mapstructure:"proxy_url" yaml:"proxy_url"`
	Workers     int                 `mapstructure:"workers" yaml:"workers"`
	HostHeaders fetcher.HostHeaders `mapstructure:"host_headers" yaml:"host_headers"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	DryRun bool   `mapstructure:"dry_run" yaml:"dry_run"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and clamps invalid values back to
// their defaults.
func (c *Config) Validate() error {
	if c.Fetch.Timeout < time.Second {
		c.Fetch.Timeout = DefaultTimeout
	}
	if c.Fetch.Retries < 0 {
		c.Fetch.Retries = DefaultRetries
	}
	if c.Fetch.BackoffBase <= 0 {
		c.Fetch.BackoffBase = DefaultBackoffBase
	}
	if c.Fetch.Workers < 1 {
		c.Fetch.Workers = DefaultWorkers
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutputPath
	}
	return nil
}
