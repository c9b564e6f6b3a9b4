// Package config loads runtime configuration for the gophgive CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional .env file in the working directory; variables already set in
//     the environment win.
//  3. Optional JSON or YAML file selected via flags: -c or -config.
//  4. Environment variables prefixed with GOPHGIVE_, e.g. GOPHGIVE_BASE_URL.
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the platform API
//	-t int      request timeout (seconds)
//	-s string   session DSN (SQLite file path)
//	-b string   session backend: sqlite or redis
//	-r string   redis address host:port
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations may be strings like "15s":
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "15s",
//	  "session_backend": "sqlite",
//	  "session_dsn": "gophgive.db",
//	  "log_format": "console"
//	}
package config
