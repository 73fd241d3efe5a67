package logger

import (
	"github.com/google/uuid"

	corelogger "github.com/kilianp07/partminder/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards everything.
type NopLogger = corelogger.Nop

// session identifies every log line written by this process.
var session = uuid.NewString()

// Session returns the identifier attached to every log line of this process.
func Session() string { return session }

// New returns a Logger for the given component using Options from the
// environment (APP_ENV, LOG_LEVEL). Output goes to stderr.
func New(component string) Logger {
	l, err := NewZerologLogger(component, OptionsFromEnv())
	if err != nil {
		return NopLogger{}
	}
	return l
}
