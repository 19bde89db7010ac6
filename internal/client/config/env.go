package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/icare/internal/flagx"
)

const (
	EnvAPIURL       = "ICARE_API_URL"
	EnvSessionDB    = "ICARE_SESSION_DB"
	EnvLogLevel     = "ICARE_LOG_LEVEL"
	EnvLogoutPolicy = "ICARE_LOGOUT_POLICY"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with ICARE_* environment variables. Variables
// from a .env file never override ones already set in the process.
func parseEnv(cfg *Config) {
	loadEnvFile(flagx.EnvFileFlag())

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvSessionDB); ok && v != "" {
		cfg.SessionDBPath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogoutPolicy); ok && v != "" {
		if err := cfg.LogoutPolicy.UnmarshalText([]byte(v)); err != nil {
			panic(err)
		}
	}
}

// loadEnvFile loads path, which must exist. With an empty path the default
// .env is loaded if present.
func loadEnvFile(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}
