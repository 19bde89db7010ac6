package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/icare/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL
//	-s string   session database path
//	-l string   log level
//	-p string   logout policy (auth|any)
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c, -env) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-l", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.TextVar(&cfg.LogoutPolicy, "p", cfg.LogoutPolicy, "logout policy: any (default) or auth (401/403 only)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
