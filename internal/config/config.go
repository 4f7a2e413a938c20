package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Environment string `toml:"-" json:"-"`
	Host        string `toml:"host" json:"host"`
	Port        int    `toml:"port" json:"port"`
	MetricsPort int    `toml:"metrics_port" json:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogsPath      string `toml:"logs_path" json:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout" json:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json" json:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled" json:"sentry_enabled"`
	// storage
	Storage        string `toml:"storage" json:"storage"`
	PostgresHost   string `toml:"postgres_host" json:"postgres_host"`
	PostgresPort   string `toml:"postgres_port" json:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name" json:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user" json:"postgres_user"`
	// redis, optional
	RedisHost          string `toml:"redis_host" json:"redis_host"`
	RedisPort          string `toml:"redis_port" json:"redis_port"`
	ProfileCacheTTLSec int    `toml:"profile_cache_ttl_sec" json:"profile_cache_ttl_sec"`
	LogWritesPerMin    int    `toml:"log_writes_per_min" json:"log_writes_per_min"`
	// http
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, env = t.Development, "development"
	case "prod", "production":
		cfg, env = t.Production, "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no [%s] section in config", env)
	}
	cfg.Environment = env
	return cfg, nil
}

// Load reads the TOML file at path and returns the validated section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for config content already in memory.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", cfg.Environment, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage == "" {
		c.Storage = StorageMemory
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.ProfileCacheTTLSec == 0 {
		c.ProfileCacheTTLSec = 60 * 60
	}
}

func (c *Config) Validate() error {
	usesPostgres := c.Storage == StoragePostgres
	usesRedis := c.RedisHost != ""
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.Min(0), validation.Max(65535),
			validation.When(c.MetricsPort != 0, validation.NotIn(c.Port).Error("must differ from port"))),
		validation.Field(&c.LogLevel, validation.In("panic", "fatal", "error", "warn", "warning", "info", "debug", "trace")),
		validation.Field(&c.Storage, validation.Required, validation.In(StoragePostgres, StorageMemory)),
		validation.Field(&c.PostgresHost, validation.When(usesPostgres, validation.Required)),
		validation.Field(&c.PostgresPort, validation.When(usesPostgres, validation.Required)),
		validation.Field(&c.PostgresDBName, validation.When(usesPostgres, validation.Required)),
		validation.Field(&c.RedisPort, validation.When(usesRedis, validation.Required)),
		validation.Field(&c.ProfileCacheTTLSec, validation.Min(0)),
		validation.Field(&c.LogWritesPerMin, validation.Min(0)),
	)
}

func (c *Config) ProfileCacheTTL() time.Duration {
	return time.Duration(c.ProfileCacheTTLSec) * time.Second
}

func (c *Config) UsesRedis() bool {
	return c.RedisHost != ""
}
