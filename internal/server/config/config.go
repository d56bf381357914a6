// Package config загружает конфигурацию сервера из YAML файла, переменных
// окружения и флагов командной строки (в порядке возрастания приоритета).
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/iudanet/vidtube/internal/crypto"
	"github.com/iudanet/vidtube/internal/server/jwt"
)

// Драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config - конфигурация сервера
type Config struct {
	Env       string    `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel  string    `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTP      HTTP      `yaml:"http"`
	Storage   Storage   `yaml:"storage"`
	JWT       JWT       `yaml:"jwt"`
	Password  Password  `yaml:"password"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Cookie    Cookie    `yaml:"cookie"`
}

type HTTP struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	// DSN - путь к файлу для sqlite, DSN для postgres, URI для mongo
	DSN           string `yaml:"dsn" env:"STORAGE_DSN" env-default:"vidtube.db"`
	MongoDatabase string `yaml:"mongo_database" env:"STORAGE_MONGO_DATABASE" env-default:"vidtube"`
}

type JWT struct {
	AccessSecret  string        `yaml:"access_secret" env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET"`
	Issuer        string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"vidtube"`
	AccessTTL     time.Duration `yaml:"access_ttl" env:"JWT_ACCESS_TTL" env-default:"15m"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" env:"JWT_REFRESH_TTL" env-default:"240h"`
}

type Password struct {
	Algorithm  string `yaml:"algorithm" env:"PASSWORD_ALGORITHM" env-default:"argon2id"`
	BcryptCost int    `yaml:"bcrypt_cost" env:"PASSWORD_BCRYPT_COST" env-default:"12"`
}

// RateLimit - лимит запросов на register/login/refresh с одного IP.
// Пустой RedisAddr означает in-memory limiter.
// TrustProxy включает только за reverse proxy, который сам выставляет X-Forwarded-For.
type RateLimit struct {
	Requests   int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"10"`
	Window     time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	RedisAddr  string        `yaml:"redis_addr" env:"RATE_LIMIT_REDIS_ADDR"`
	TrustProxy bool          `yaml:"trust_proxy" env:"RATE_LIMIT_TRUST_PROXY" env-default:"false"`
}

type Cookie struct {
	Secure bool   `yaml:"secure" env:"COOKIE_SECURE" env-default:"false"`
	Domain string `yaml:"domain" env:"COOKIE_DOMAIN"`
}

// Load читает конфиг из файла path (если задан), поверх применяет окружение
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	return &cfg, nil
}

// Options - результат разбора командной строки
type Options struct {
	Config      *Config
	ShowVersion bool
}

// Parse разбирает флаги, загружает конфиг и применяет флаги поверх него.
// Путь к файлу берется из -config, иначе из CONFIG_PATH.
func Parse(args []string) (*Options, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	configPath := fs.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config file")
	addr := fs.String("addr", "", "HTTP listen address (overrides config)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	showVersion := fs.Bool("version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *showVersion {
		return &Options{ShowVersion: true}, nil
	}

	cfg, err := Load(*configPath)
	if err != nil {
		return nil, err
	}

	if *addr != "" {
		cfg.HTTP.Address = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Options{Config: cfg}, nil
}

// Validate проверяет согласованность конфига
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.AccessSecret == "" {
		errs = append(errs, errors.New("jwt.access_secret is required"))
	}
	if c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("jwt.refresh_secret is required"))
	}
	if c.JWT.AccessSecret != "" && c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("jwt access and refresh secrets must differ"))
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("jwt ttl must be positive"))
	} else if c.JWT.AccessTTL >= c.JWT.RefreshTTL {
		errs = append(errs, errors.New("jwt access_ttl must be shorter than refresh_ttl"))
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	case DriverMongo:
		if c.Storage.MongoDatabase == "" {
			errs = append(errs, errors.New("storage.mongo_database is required for mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Storage.DSN == "" {
		errs = append(errs, errors.New("storage.dsn is required"))
	}

	switch crypto.Algorithm(c.Password.Algorithm) {
	case crypto.AlgorithmArgon2id, crypto.AlgorithmBcrypt:
	default:
		errs = append(errs, fmt.Errorf("unknown password algorithm %q", c.Password.Algorithm))
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit requests and window must be positive"))
	}

	if c.HTTP.Address == "" {
		errs = append(errs, errors.New("http.address is required"))
	}

	return errors.Join(errs...)
}

// JWTConfig конвертирует секцию jwt в конфиг сервиса токенов
func (c *Config) JWTConfig() jwt.Config {
	return jwt.Config{
		AccessSecret:  c.JWT.AccessSecret,
		RefreshSecret: c.JWT.RefreshSecret,
		Issuer:        c.JWT.Issuer,
		AccessTTL:     c.JWT.AccessTTL,
		RefreshTTL:    c.JWT.RefreshTTL,
	}
}

// HasherConfig конвертирует секцию password в конфиг хешера
func (c *Config) HasherConfig() crypto.HasherConfig {
	return crypto.HasherConfig{
		Algorithm:  crypto.Algorithm(c.Password.Algorithm),
		BcryptCost: c.Password.BcryptCost,
	}
}
