package config

import (
	"flag"
	"os"

	"github.com/revumeapp/revume-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend service (default from Config)
//	-p string   path to the local preferences database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the backend service")
	fs.StringVar(&cfg.PrefsPath, "p", cfg.PrefsPath, "path to the local preferences database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
