// Package config handles configuration for the development backend,
// including defaults and command-line flags.
package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophgive/internal/flagx"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Address: bind address for the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenTTL: access token lifetime.
//   - PublicURL: base URL used in invoice links; derived from the request when empty.
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	Address   string
	SecretKey string
	TokenTTL  time.Duration
	PublicURL string
	LogLevel  string
	LogFormat string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.PublicURL = ""
	c.LogLevel = "info"
	c.LogFormat = "console"
}

// LoadConfig builds a Config from defaults and os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults and then the flags found in args.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-p string   public base URL for invoice links
//	-l string   log level
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	ttl := fs.Int("t", int(cfg.TokenTTL.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&cfg.PublicURL, "p", cfg.PublicURL, "public base url")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-p", "-l"})); err != nil {
		return nil, err
	}
	if *ttl <= 0 {
		return nil, errors.New("token validity must be positive")
	}
	cfg.TokenTTL = time.Duration(*ttl) * time.Minute

	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}
	return cfg, nil
}
