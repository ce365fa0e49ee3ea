// Package config handles configuration loading for showcase.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from SHOWCASE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/showcase/config.yaml
//  3. ~/.config/showcase/config.yaml
//
// A missing file is not an error for the serve command: LoadOrDefault
// returns Default() with environment overrides applied.
//
// # Environment Variables
//
// Values can reference environment variables:
//
//	storage:
//	  path: "${STATE_DIRECTORY}/showcase.db"
//
// After parsing, SHOWCASE_* variables override individual fields:
//
//	SHOWCASE_HTTP_ADDR, SHOWCASE_STORAGE_BACKEND, SHOWCASE_STORAGE_PATH,
//	SHOWCASE_LOCALE, SHOWCASE_TIMEZONE, SHOWCASE_TICK_INTERVAL,
//	SHOWCASE_LOG_LEVEL, SHOWCASE_LOG_FORMAT
//
// # Configuration Sections
//
//	server:
//	  http_addr: "127.0.0.1:8080"
//
//	storage:
//	  backend: "sqlite"      # sqlite, sqlite3, toml, memory
//	  path: "showcase.db"
//
//	clock:
//	  locale: "en-US"        # used when Accept-Language doesn't match
//	  timezone: "Local"      # IANA zone name
//	  tick_interval: "1s"
//
//	logging:
//	  level: "info"          # debug, info, warn, error
//	  format: "text"         # text, json
package config
