// Package config loads service configuration from an optional YAML file
// overlaid by APP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type FileRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  FileRotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Cache struct {
	Enable bool
	TTLSec int
}

// Storage selects the key-value backend holding the collections.
type Storage struct {
	Backend    string // memory | redis | sql
	Namespace  string
	MaxRetries int
	Cache      Cache
}

type DB struct {
	Driver             string // sqlite | mysql | postgres
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	ConnectTimeoutSec  int
	LogLevel           string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Session struct {
	TTLHours      int
	RevalidateSec int
}

type Payment struct {
	RegistrationFee string
	Currency        string
}

type RateLimit struct {
	LoginRPS   float64
	LoginBurst int
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	Storage   Storage
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	Session   Session
	Payment   Payment
	RateLimit RateLimit
}

// Load reads configuration. path falls back to $CONFIG_PATH and then to
// ./configs/config.local.yaml; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "jobboard")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 10)
	v.SetDefault("app.http.writeTimeoutSec", 15)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 5)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", false)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "jobboard")
	v.SetDefault("jwt.accessTokenTTLMin", 60)

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.namespace", "cft_jobs_")
	v.SetDefault("storage.maxRetries", 3)
	v.SetDefault("storage.cache.enable", false)
	v.SetDefault("storage.cache.ttlSec", 300)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:jobboard.db?_busy_timeout=5000")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.connectTimeoutSec", 60)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.ttlHours", 24*7)
	v.SetDefault("session.revalidateSec", 60)

	v.SetDefault("payment.registrationFee", "29.99")
	v.SetDefault("payment.currency", "USD")

	v.SetDefault("ratelimit.loginRPS", 5)
	v.SetDefault("ratelimit.loginBurst", 10)
}

// Validate checks values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory", "redis", "sql":
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if _, err := decimal.NewFromString(c.Payment.RegistrationFee); err != nil {
		return fmt.Errorf("config: invalid payment.registrationFee: %w", err)
	}
	if c.App.Env == "prod" && c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required in prod")
	}
	return nil
}

// RegistrationFee returns the configured fee as a decimal.
func (c *Config) RegistrationFee() decimal.Decimal {
	return decimal.RequireFromString(c.Payment.RegistrationFee)
}

// AccessTokenTTL returns the access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenTTLMin) * time.Minute
}

// SessionTTL returns how long a session lives after login.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

// RevalidateInterval returns how often a session re-reads its user.
func (c *Config) RevalidateInterval() time.Duration {
	return time.Duration(c.Session.RevalidateSec) * time.Second
}

// CacheTTL returns the lifetime of cached KV entries.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Storage.Cache.TTLSec) * time.Second
}
