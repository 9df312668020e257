package config

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// LoadConfig loads the configuration from file and environment variables.
// File settings live in config.yaml; every key can be overridden through
// AIMUHASEBI_-prefixed environment variables (dots replaced by underscores).
func LoadConfig(log logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/aimuhasebi/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		log.Info(context.Background(), "No config file found, using defaults and environment")
	}

	v.SetEnvPrefix("AIMUHASEBI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ErrValidation(err.Error()).WithCause(err)
	}

	// Hot-reload: re-unmarshal on file change and hand the fresh config to
	// the callback registered via OnReload. Only safe-to-change settings
	// (log level, trend window) should be consumed from reloads.
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Config
		if err := v.Unmarshal(&updated); err != nil {
			log.Error(context.Background(), "Ignoring invalid config reload", err,
				logger.String("file", e.Name))
			return
		}
		if err := updated.Validate(); err != nil {
			log.Error(context.Background(), "Ignoring invalid config reload", err,
				logger.String("file", e.Name))
			return
		}
		notifyReload(&updated)
		log.Info(context.Background(), "Configuration reloaded",
			logger.String("file", e.Name))
	})
	v.WatchConfig()

	return &cfg, nil
}

var reloadHandlers []func(*Config)

// OnReload registers a callback invoked with the fresh config after a
// successful hot reload.
func OnReload(fn func(*Config)) {
	reloadHandlers = append(reloadHandlers, fn)
}

func notifyReload(cfg *Config) {
	for _, fn := range reloadHandlers {
		fn(cfg)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.pprof_enabled", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "aimuhasebi")
	v.SetDefault("database.database", "aimuhasebi")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", 60)
	v.SetDefault("database.max_conn_idle_time", 10)

	v.SetDefault("redis.addresses", []string{"localhost:6379"})
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.observations_topic", "risk.observations")
	v.SetDefault("kafka.write_timeout", 10)
	v.SetDefault("kafka.batch_size", 100)
	v.SetDefault("kafka.batch_timeout", 100)
	v.SetDefault("kafka.required_acks", 1)

	v.SetDefault("risk.document_trend_window_days", constants.DefaultDocumentTrendWindowDays)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "aimuhasebi-core")
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.sampling_rate", 0.1)
}
