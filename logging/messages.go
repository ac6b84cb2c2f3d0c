package logging

import "fryc/report"

// CompileMessage is a compile error raised while compiling a source file.
type CompileMessage struct {
	Err *report.CompileError
}

func (cm *CompileMessage) isError() bool {
	return true
}

// ConfigError is an error loading a project or a source file.
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

// BuildWarning is a non-fatal problem encountered while building.
type BuildWarning struct {
	Kind    string
	Message string
}

func (bw *BuildWarning) isError() bool {
	return false
}
