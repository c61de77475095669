// Package config creates the application logger from the program options.
package config

import (
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/tpasm/internal/options"
)

// CreateLogger returns a logger for the options. Debug output takes
// precedence over quiet mode, which only keeps errors.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
