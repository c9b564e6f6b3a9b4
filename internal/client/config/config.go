package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgive/internal/logging"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the gophgive CLI.
//
// SessionScope separates sessions sharing one Redis instance; it is ignored
// by the SQLite backend.
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SessionBackend string        `mapstructure:"session_backend"`
	SessionDSN     string        `mapstructure:"session_dsn"`
	SessionScope   string        `mapstructure:"session_scope"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.SessionBackend = BackendSQLite
	c.SessionDSN = "gophgive.db"
	c.SessionScope = "default"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatText
}

// LoadConfig builds a Config from the process environment and os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, .env, the config file, GOPHGIVE_* variables and
// finally the flags found in args. Later sources take precedence.
func Load(args []string) (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	cfg, err := loadViper(args)
	if err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the client cannot work with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.BaseURL) == "" {
		errs = append(errs, errors.New("base_url is empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout))
	}
	switch c.SessionBackend {
	case BackendSQLite:
		if c.SessionDSN == "" {
			errs = append(errs, errors.New("session_dsn is empty"))
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis_addr is empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session_backend %q", c.SessionBackend))
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON, logging.FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("unknown log_format %q", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
