package logger

import "github.com/kilianp07/partminder/config"

// FromConfig builds the logger described by the logging section.
func FromConfig(c config.LoggingConfig, component string) (Logger, error) {
	return NewZerologLogger(component, Options{
		Level:      c.Level,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Console:    c.Console,
	})
}
