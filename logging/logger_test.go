package logging

import (
	"testing"

	"fryc/report"

	"github.com/pkg/errors"
)

func TestInitializeLogLevels(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"silent", LogLevelSilent},
		{"error", LogLevelError},
		{"warn", LogLevelWarning},
		{"verbose", LogLevelVerbose},
		{"bogus", LogLevelVerbose},
	}

	for _, c := range cases {
		Initialize(c.name)
		if logger.LogLevel != c.want {
			t.Errorf("Initialize(%q): got level %d, want %d", c.name, logger.LogLevel, c.want)
		}
	}
}

func TestErrorsAreCountedWarningsBuffered(t *testing.T) {
	Initialize("silent")

	LogBuildWarning("Project", "version mismatch")
	if !ShouldProceed() {
		t.Fatal("a warning must not stop compilation")
	}

	LogCompileError(errors.New("cannot read file"))
	if ShouldProceed() {
		t.Fatal("an error must stop compilation")
	}

	if len(logger.warnings) != 1 {
		t.Errorf("expected one buffered warning, got %d", len(logger.warnings))
	}
}

func TestIsValidLogLevel(t *testing.T) {
	if !IsValidLogLevel("warn") || IsValidLogLevel("loud") {
		t.Error("log level validation is wrong")
	}
}

func TestWrappedCompileErrorsAreRecognized(t *testing.T) {
	Initialize("silent")

	cerr := &report.CompileError{Kind: report.Name, Message: "undefined symbol `x`"}
	LogCompileError(errors.Wrap(cerr, "compiling main.fry"))

	if ShouldProceed() || logger.errorCount != 1 {
		t.Errorf("expected one counted error, got %d", logger.errorCount)
	}
}
