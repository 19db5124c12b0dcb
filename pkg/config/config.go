package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreBackendMemory = "memory"
	StoreBackendFile   = "file"
	StoreBackendDB     = "db"
	StoreBackendRedis  = "redis"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
	Seed  SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STYLEHUB_APP_ENV" default:"dev"`
	Port         string `envconfig:"STYLEHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STYLEHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STYLEHUB_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"STYLEHUB_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the persisted store backend.
type StoreConfig struct {
	Backend string `envconfig:"STYLEHUB_STORE_BACKEND" default:"memory"`
	DataDir string `envconfig:"STYLEHUB_STORE_DATA_DIR" default:"./data"`
}

type DBConfig struct {
	Driver string `envconfig:"STYLEHUB_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"STYLEHUB_DB_DSN" default:"./stylehub.db"`

	MaxOpenConns    int           `envconfig:"STYLEHUB_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STYLEHUB_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STYLEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STYLEHUB_REDIS_URL"`
	Address      string        `envconfig:"STYLEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"STYLEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"STYLEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STYLEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STYLEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STYLEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STYLEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STYLEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SeedConfig points at the JSON catalog documents loaded on first run.
type SeedConfig struct {
	Auto           bool   `envconfig:"STYLEHUB_SEED_AUTO" default:"true"`
	ProductsPath   string `envconfig:"STYLEHUB_SEED_PRODUCTS" default:"./seed/products.json"`
	CategoriesPath string `envconfig:"STYLEHUB_SEED_CATEGORIES" default:"./seed/categories.json"`
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendFile:
		if strings.TrimSpace(c.Store.DataDir) == "" {
			return fmt.Errorf("STYLEHUB_STORE_DATA_DIR is required for the file backend")
		}
	case StoreBackendDB:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("STYLEHUB_DB_DSN is required for the db backend")
		}
		if c.DB.Driver != "sqlite" && c.DB.Driver != "postgres" {
			return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
		}
	case StoreBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("STYLEHUB_REDIS_URL or STYLEHUB_REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("unsupported store backend %q", c.Store.Backend)
	}
	return nil
}
