// Package config loads runtime configuration for the DeployHQ console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config or $DEPLOYHQ_CONFIG,
//     overlaid by DEPLOYHQ_* environment variables (see parseFile).
//  3. Command-line flags (see parseFlags).
//
// Supported flags
//
//	-d string   path of the local SQLite storage file
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "database_path": "deployhq.db",
//	  "auth_delay": "1s",
//	  "submit_delay": "1500ms",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
package config
