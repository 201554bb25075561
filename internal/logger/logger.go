// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels.
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// The pricing and solver code only logs at Debug and Trace, so the
// default Info level keeps library calls silent. Raise the verbosity to
// follow solver iterations:
//
//	logger.SetVerbosity(3) // Trace
//	iv, _ := impliedvol.ImpliedVol(pricing.Call, 10.45, 100, 100, 1, 0.05, 0, 0.2)
package logger

import (
	"log"
	"os"
)

// Level represents a logging verbosity level.
// Higher values mean more verbose logging.
type Level int

const (
	Error Level = iota // Error logs only critical failures.
	Info               // Info logs high-level progress.
	Debug              // Debug logs detailed diagnostic information.
	Trace              // Trace logs per-iteration execution details.
)

// current holds the active verbosity level.
// Only messages with level <= current are logged.
var current Level = Info

func init() {
	// Logs go to stderr so they never mix with program output.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global logging verbosity.
func SetVerbosity(v int) {
	current = Level(v)
}

// logf checks verbosity and delegates formatting to the stdlib logger.
func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

// Errorf logs an error-level message.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs debugging information, such as solver fallback decisions.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs very detailed execution traces. High volume inside solver
// loops; use sparingly.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
