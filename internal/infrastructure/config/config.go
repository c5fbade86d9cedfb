package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/folio-inc/folio/internal/shared/config"
)

type Config struct {
	Server        sharedConfig.ServerConfig        `mapstructure:"server"`
	Database      sharedConfig.DatabaseConfig      `mapstructure:"database"`
	Logger        sharedConfig.LoggerConfig        `mapstructure:"logger"`
	Redis         sharedConfig.RedisConfig         `mapstructure:"redis"`
	Auth          sharedConfig.AuthConfig          `mapstructure:"auth"`
	Authorization sharedConfig.AuthorizationConfig `mapstructure:"authorization"`
	Access        sharedConfig.AccessConfig        `mapstructure:"access"`
	Release       sharedConfig.ReleaseConfig       `mapstructure:"release"`
	Metrics       sharedConfig.MetricsConfig       `mapstructure:"metrics"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configPath), overlays FOLIO_* environment
// variables and a local .env file, and applies defaults. A missing config
// file is tolerated so the service can run from the environment alone.
func Load(env, configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the last loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case sharedConfig.DriverMySQL, sharedConfig.DriverPostgres, sharedConfig.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Access.Cache.Backend {
	case sharedConfig.CacheBackendRedis, sharedConfig.CacheBackendLocal:
	default:
		return fmt.Errorf("unsupported entitlement cache backend %q", c.Access.Cache.Backend)
	}
	if c.Access.BulkLimit < 1 {
		return fmt.Errorf("access.bulk_limit must be positive")
	}
	if c.Release.BatchScheduleLimit < 1 {
		return fmt.Errorf("release.batch_schedule_limit must be positive")
	}
	if c.Release.Concurrency < 1 {
		return fmt.Errorf("release.concurrency must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.driver", sharedConfig.DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "folio_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.connect_retries", 5)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "folio")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	v.SetDefault("access.default_preview_length", 300)
	v.SetDefault("access.upgrade_url", "/pricing")
	v.SetDefault("access.bulk_limit", 50)
	v.SetDefault("access.resolver_timeout", 500*time.Millisecond)
	v.SetDefault("access.cache.backend", sharedConfig.CacheBackendRedis)
	v.SetDefault("access.cache.ttl", 5*time.Minute)
	v.SetDefault("access.cache.negative_ttl", 30*time.Second)
	v.SetDefault("access.cache.size", 10000)

	v.SetDefault("release.sweep_enabled", true)
	v.SetDefault("release.sweep_interval", time.Minute)
	v.SetDefault("release.batch_size", 200)
	v.SetDefault("release.concurrency", 4)
	v.SetDefault("release.batch_schedule_limit", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
