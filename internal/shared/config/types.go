package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Database drivers understood by the connection factory.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnectRetries  uint64 `mapstructure:"connect_retries"`
}

// GetDSN renders the driver specific connection string. For sqlite the
// database field is the file path (or ":memory:").
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case DriverSQLite:
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Entitlement cache backends.
const (
	CacheBackendRedis = "redis"
	CacheBackendLocal = "local"
)

type EntitlementCacheConfig struct {
	Backend     string        `mapstructure:"backend"`
	TTL         time.Duration `mapstructure:"ttl"`
	NegativeTTL time.Duration `mapstructure:"negative_ttl"`
	Size        int           `mapstructure:"size"`
}

type AccessConfig struct {
	DefaultPreviewLength int                    `mapstructure:"default_preview_length"`
	UpgradeURL           string                 `mapstructure:"upgrade_url"`
	BulkLimit            int                    `mapstructure:"bulk_limit"`
	ResolverTimeout      time.Duration          `mapstructure:"resolver_timeout"`
	Cache                EntitlementCacheConfig `mapstructure:"cache"`
}

type ReleaseConfig struct {
	SweepEnabled       bool          `mapstructure:"sweep_enabled"`
	SweepInterval      time.Duration `mapstructure:"sweep_interval"`
	BatchSize          int           `mapstructure:"batch_size"`
	Concurrency        int           `mapstructure:"concurrency"`
	BatchScheduleLimit int           `mapstructure:"batch_schedule_limit"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// PolicyRule is one casbin "p" line: role, path pattern, method.
type PolicyRule struct {
	Role   string `mapstructure:"role"`
	Path   string `mapstructure:"path"`
	Method string `mapstructure:"method"`
}

type AuthorizationConfig struct {
	Policies []PolicyRule `mapstructure:"policies"`
}
