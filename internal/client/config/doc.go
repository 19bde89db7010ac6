// Package config loads runtime configuration for the I Care CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally loaded from a .env file selected
//     with -env (see parseEnv). A .env in the working directory is used
//     when present.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-s string   path of the local session database
//	-l string   log level: debug, info, warn, error
//	-p string   logout policy: any (default) or auth (401/403 only)
//
// Environment
//
//	ICARE_API_URL, ICARE_SESSION_DB, ICARE_LOG_LEVEL, ICARE_LOGOUT_POLICY
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "session_db_path": "data/session.db",
//	  "log_level": "info",
//	  "logout_policy": "any"
//	}
//
// Invalid values make the loaders panic; configuration errors are fatal at
// startup.
package config
