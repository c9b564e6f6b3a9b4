package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/dmitrijs2005/gophgive/internal/flagx"
)

const envPrefix = "GOPHGIVE"

// dotenvFile is a package var so tests can point it elsewhere.
var dotenvFile = ".env"

// loadDotenv exports variables from dotenvFile without overriding the
// environment. A missing file is not an error.
func loadDotenv() error {
	if err := godotenv.Load(dotenvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", dotenvFile, err)
	}
	return nil
}

// loadViper layers the config file (-c/-config) and GOPHGIVE_* variables
// over the defaults.
func loadViper(args []string) (*Config, error) {
	var defaults Config
	defaults.LoadDefaults()

	v := viper.New()
	setDefaults(v, &defaults)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path := flagx.ConfigFileFlag(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("session_backend", d.SessionBackend)
	v.SetDefault("session_dsn", d.SessionDSN)
	v.SetDefault("session_scope", d.SessionScope)
	v.SetDefault("redis_addr", d.RedisAddr)
	v.SetDefault("redis_password", d.RedisPassword)
	v.SetDefault("redis_db", d.RedisDB)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}
