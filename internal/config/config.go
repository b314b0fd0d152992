package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Supported storage drivers
const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// HTTPCfg contains http server settings
type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Swagger         bool          `env:"HTTP_SWAGGER" envDefault:"true"`
}

// GrpcCfg contains gRPC server settings
type GrpcCfg struct {
	Port int `env:"GRPC_PORT" envDefault:"3010"`
}

// MongoCfg contains mongodb connection settings
type MongoCfg struct {
	User        string `env:"MONGO_USER" envDefault:""`
	Password    string `env:"MONGO_PASSWORD" envDefault:""`
	Host        string `env:"MONGO_HOST" envDefault:"mongo-customers"`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	Database    string `env:"MONGO_DB" envDefault:"customers"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

// URI builds mongodb connection string
func (c MongoCfg) URI() string {
	if c.User == "" {
		return fmt.Sprintf("mongodb://%s:%d/?maxPoolSize=%d", c.Host, c.Port, c.MaxPoolSize)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d/?maxPoolSize=%d", c.User, c.Password, c.Host, c.Port, c.MaxPoolSize)
}

// PostgresCfg contains postgres connection settings
type PostgresCfg struct {
	User        string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password    string `env:"POSTGRES_PASSWORD" envDefault:""`
	Host        string `env:"POSTGRES_HOST" envDefault:"pg-customers"`
	Database    string `env:"POSTGRES_DB" envDefault:"customers"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

// DSN builds postgres connection string
func (c PostgresCfg) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%d dbname=%s sslmode=%s pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SslMode, c.PoolMaxConn,
	)
}

// RedisCfg contains redis connection settings, empty address disables redis
type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled reports whether redis is configured
func (c RedisCfg) Enabled() bool {
	return c.Addr != ""
}

// SessionCfg contains session cookie and flash settings
type SessionCfg struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"customers-session"`
	TimeToLive time.Duration `env:"SESSION_TIME_TO_LIVE" envDefault:"24h"`
	Secure     bool          `env:"SESSION_SECURE" envDefault:"false"`
	FlashTTL   time.Duration `env:"SESSION_FLASH_TIME_TO_LIVE" envDefault:"5m"`
}

// CustomerCfg contains customer rules
type CustomerCfg struct {
	EmailSuffix  string        `env:"CUSTOMER_EMAIL_SUFFIX" envDefault:"@gmail.com"`
	StrictUpdate bool          `env:"CUSTOMER_STRICT_UPDATE" envDefault:"true"`
	PageSize     int           `env:"CUSTOMER_PAGE_SIZE" envDefault:"12"`
	CacheTTL     time.Duration `env:"CUSTOMER_CACHE_TIME_TO_LIVE" envDefault:"10m"`
}

// LogCfg contains logger settings
type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Config is application configuration
type Config struct {
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"mongo"`
	HTTPCfg       HTTPCfg
	GrpcCfg       GrpcCfg
	MongoCfg      MongoCfg
	PostgresCfg   PostgresCfg
	RedisCfg      RedisCfg
	SessionCfg    SessionCfg
	CustomerCfg   CustomerCfg
	LogCfg        LogCfg
}

// Build reads optional .env files and parses environment into Config
func Build(envFiles ...string) (Config, error) {
	var cfg Config

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return cfg, fmt.Errorf("failed to load env files - %w", err)
		}
	}

	opts := env.Options{RequiredIfNoDef: true}
	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	switch cfg.StorageDriver {
	case StorageMongo, StoragePostgres, StorageMemory:
	default:
		return cfg, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CustomerCfg.PageSize <= 0 {
		return cfg, fmt.Errorf("page size must be positive, got %d", cfg.CustomerCfg.PageSize)
	}

	return cfg, nil
}
