package logging

import (
	"fryc/report"

	"github.com/pkg/errors"
)

// logger is a global reference to a shared Logger
var logger = newLogger(LogLevelVerbose)

// LogLevels is the list of accepted log level names in order of verbosity.
var LogLevels = []string{"silent", "error", "warn", "verbose"}

// Initialize initializes the global logger with the provided log level
func Initialize(loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warn", "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(loglevel)
}

// IsValidLogLevel reports whether name is one of the accepted log levels.
func IsValidLogLevel(name string) bool {
	for _, lvl := range LogLevels {
		if lvl == name {
			return true
		}
	}

	return false
}

// ShouldProceed indicates whether or not the logger has encountered any errors.
func ShouldProceed() bool {
	return logger.errorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogCompileError logs a compilation error.  Compile errors raised by the
// compiler are displayed with their category banner; any other error is
// displayed as a configuration error.
func LogCompileError(err error) {
	var cerr *report.CompileError
	if errors.As(err, &cerr) {
		logger.handleMsg(&CompileMessage{Err: cerr})
	} else {
		LogConfigError("Build", err.Error())
	}
}

// LogConfigError logs an error related to project or compiler configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogBuildWarning logs a warning in the build process
func LogBuildWarning(kind, warning string) {
	logger.handleMsg(&BuildWarning{Kind: kind, Message: warning})
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" logging functions that will only run if the log
// level is set to verbose.

// LogCompileHeader logs the pre-compilation header.
func LogCompileHeader(target string) {
	if logger.LogLevel == LogLevelVerbose {
		displayCompileHeader(target)
	}
}

// LogBeginPhase begins a compilation phase and starts the phase spinner.
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase ends the current compilation phase.
func LogEndPhase() {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(ShouldProceed())
	}
}

// LogCompilationFinished logs the concluding message for compilation
// including all buffered warnings.
func LogCompilationFinished() {
	if logger.LogLevel >= LogLevelWarning {
		for _, warning := range logger.warnings {
			warning.display()
		}
	}

	if logger.LogLevel > LogLevelSilent {
		displayCompilationFinished(ShouldProceed(), logger.errorCount, len(logger.warnings))
	}
}
