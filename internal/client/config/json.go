package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/icare/internal/client/controllers"
	"github.com/dmitrijs2005/icare/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from an empty one, so a partial file only
// overrides what it names.
type JsonConfig struct {
	APIBaseURL    *string                   `json:"api_base_url"`
	SessionDBPath *string                   `json:"session_db_path"`
	LogLevel      *string                   `json:"log_level"`
	LogoutPolicy  *controllers.LogoutPolicy `json:"logout_policy"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Read and unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.SessionDBPath != nil {
		cfg.SessionDBPath = *jc.SessionDBPath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogoutPolicy != nil {
		cfg.LogoutPolicy = *jc.LogoutPolicy
	}
}
