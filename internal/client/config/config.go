package config

import "github.com/dmitrijs2005/icare/internal/client/controllers"

// Config holds runtime settings for the I Care CLI.
type Config struct {
	APIBaseURL    string
	SessionDBPath string
	LogLevel      string
	LogoutPolicy  controllers.LogoutPolicy
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.SessionDBPath = "data/session.db"
	c.LogLevel = "info"
	c.LogoutPolicy = controllers.LogoutOnAnyError
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
