package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// AppConfig holds what the page header displays
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StoreConfig selects and configures the key-value backend
type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Key    string      `mapstructure:"key"`
	File   FileConfig  `mapstructure:"file"`
	Redis  RedisConfig `mapstructure:"redis"`
	SQL    SQLConfig   `mapstructure:"sql"`
}

type FileConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SQLConfig struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// CatalogConfig holds the catalog behaviour switches
type CatalogConfig struct {
	SyncPolicy string        `mapstructure:"sync_policy"`
	IDStrategy string        `mapstructure:"id_strategy"`
	ConfirmTTL time.Duration `mapstructure:"confirm_ttl"`
}

// RateLimitConfig bounds mutating requests per client
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// EnvPrefix prefixes every environment override, e.g. CHUZONE_STORE_DRIVER.
const EnvPrefix = "CHUZONE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ChuZone - Digital Product Platform")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.key", "chuzone-products")
	v.SetDefault("store.file.path", "chuzone-data.json")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.sql.dsn", "")
	v.SetDefault("store.sql.table", "kv_store")

	v.SetDefault("catalog.sync_policy", "legacy")
	v.SetDefault("catalog.id_strategy", "sequence")
	v.SetDefault("catalog.confirm_ttl", 5*time.Minute)

	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
}

// Load reads the configuration. A .env file is loaded first when present,
// then configFile (or config.yaml in . or /etc/chuzone), then CHUZONE_*
// environment variables, which win.
func Load(configFile string) (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/chuzone")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	case DriverFile:
		if c.Store.File.Path == "" {
			return errors.New("store.file.path is required for the file driver")
		}
	case DriverPostgres, DriverMySQL, DriverSQLite:
		if c.Store.SQL.DSN == "" {
			return fmt.Errorf("store.sql.dsn is required for the %s driver", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Key == "" {
		return errors.New("store.key must not be empty")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("ratelimit.rps and ratelimit.burst must be positive")
	}
	return nil
}
