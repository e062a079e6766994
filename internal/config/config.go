// Package config handles application configuration and setup
package config

import (
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates the command's logger. Records go to stderr, since
// stdout may be carrying the table itself.
func CreateLogger(debug, quiet bool) *log.Logger {
	return log.NewWithConfig(loggerConfig(debug, quiet, os.Stderr))
}

// loggerConfig picks the level from the flags; debug wins over quiet.
func loggerConfig(debug, quiet bool, output io.Writer) log.Config {
	cfg := log.DefaultConfig()
	cfg.Output = output
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	default:
		cfg.Level = log.InfoLevel
	}
	return cfg
}
