package logging

import "sync"

// Log levels in increasing verbosity.  `fryc` defaults to verbose.
const (
	LogLevelSilent  = iota // nothing is printed
	LogLevelError          // compile and config errors and the closing footer
	LogLevelWarning        // as above plus build warnings
	LogLevelVerbose        // as above plus the compile header and phase spinners
)

// LogMessage is anything the compiler reports to the user: compile errors,
// project errors and build warnings.
type LogMessage interface {
	display()
	isError() bool
}

// Logger collects the messages of one `fryc` invocation.  Errors are shown as
// they arrive and stop the compilation from proceeding; warnings wait for the
// footer.
type Logger struct {
	LogLevel int

	errorCount int
	warnings   []LogMessage

	mu *sync.Mutex
}

func newLogger(loglevel int) Logger {
	return Logger{LogLevel: loglevel, mu: &sync.Mutex{}}
}

func (l *Logger) handleMsg(lm LogMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !lm.isError() {
		l.warnings = append(l.warnings, lm)
		return
	}

	l.errorCount++
	if l.LogLevel == LogLevelSilent {
		return
	}

	// the running phase failed: stop its spinner before printing
	displayEndPhase(false)
	lm.display()
}
