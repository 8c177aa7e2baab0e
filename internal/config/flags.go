package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/deployhq/internal/flagx"
)

// parseFlags applies -d and -l. Other arguments are filtered out first so
// the file stage's -c/-config does not trip the parser.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l"})

	fs := flag.NewFlagSet("deployhq", flag.ContinueOnError)
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local storage file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("config: flags: %w", err)
	}
	return nil
}
