package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance so CLI flag bindings take effect.
func Load() (*Config, error) {
	v := viper.GetViper()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("SGMERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("fetch.timeout", DefaultTimeout)
	v.SetDefault("fetch.retries", DefaultRetries)
	v.SetDefault("fetch.backoff_base", DefaultBackoffBase)
	v.SetDefault("fetch.prefer_local", false)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.proxy_url", "")
	v.SetDefault("fetch.workers", DefaultWorkers)

	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.directory", CacheDir())

	v.SetDefault("output.path", DefaultOutputPath)
	v.SetDefault("output.dry_run", false)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
