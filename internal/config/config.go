// Package config handles application configuration and setup.
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger for the given verbosity flags. Debug takes
// precedence over quiet.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
