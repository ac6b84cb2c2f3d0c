package report

import "fmt"

// ErrorKind is the category of a compile error.
type ErrorKind int

// Enumeration of error kinds.  Every kind aborts compilation of the enclosing
// file: there is no recovery.
const (
	Grammar     ErrorKind = iota // source text not fully consumed by the grammar
	Structural                   // unexpected tag in the tag stream
	Name                         // undefined symbol, unknown field or parameter
	Type                         // mismatched types, failed bounds or inference
	Codegen                      // frame split or throw outside an enabling context
	Unsupported                  // a recognized but unimplemented language feature
)

var kindNames = map[ErrorKind]string{
	Grammar:     "Grammar",
	Structural:  "Structural",
	Name:        "Name",
	Type:        "Type",
	Codegen:     "Codegen",
	Unsupported: "Unsupported",
}

func (k ErrorKind) String() string {
	return kindNames[k]
}

// CompileError is a fatal compilation error.  It is raised as a panic inside
// the compiler and turned back into an error value by `Catch`.
type CompileError struct {
	Kind    ErrorKind
	Message string

	// The path of the file being compiled when the error occurred.  It is
	// filled in by the first handler that knows it.
	Path string
}

func (ce *CompileError) Error() string {
	if ce.Path == "" {
		return fmt.Sprintf("%s error: %s", ce.Kind, ce.Message)
	}

	return fmt.Sprintf("%s: %s error: %s", ce.Path, ce.Kind, ce.Message)
}

// Raise aborts the current compilation with an error of the given kind.
func Raise(kind ErrorKind, msg string, args ...interface{}) {
	panic(&CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...)})
}

// Catch stores any compile error raised by a `panic` in `err`.  Panics which
// are not compile errors are propagated.
// NB: This function must ALWAYS be deferred.
func Catch(err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			*err = cerr
		} else {
			panic(x)
		}
	}
}

// InFile annotates any compile error raised by a `panic` with the path of the
// file being processed and re-raises it.
// NB: This function must ALWAYS be deferred.
func InFile(path string) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok && cerr.Path == "" {
			cerr.Path = path
		}

		panic(x)
	}
}
