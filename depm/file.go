package depm

import (
	"path/filepath"

	"fryc/syntax"
)

// File is a source file.  It is created on first reference and parsed
// exactly once.
type File struct {
	// AbsPath is the absolute path to the file.
	AbsPath string

	Src  string
	Tags []syntax.Tag

	// Decls holds the file's top-level symbols.
	Decls *SymbolScope

	// Includes forwards lookups to included files.  It is the parent of
	// `Decls`.
	Includes *IncludeScope

	// IncludedFiles lists the files this file includes in order.
	IncludedFiles []*File

	// Symbols lists the file's top-level symbols in declaration order.
	Symbols []*Symbol

	// Impls lists the tag indices of the file's `implement` declarations.
	Impls []int

	parsed bool
}

// NewFile creates an unparsed file whose lookups end in root.
func NewFile(absPath string, root Scope) *File {
	includes := NewIncludeScope(root)
	return &File{
		AbsPath:  absPath,
		Includes: includes,
		Decls:    NewSymbolScope(includes),
	}
}

// Dir returns the directory containing the file.
func (f *File) Dir() string {
	return filepath.Dir(f.AbsPath)
}

// Parse parses the file's source text.  Later calls do nothing.
func (f *File) Parse(src string) {
	if f.parsed {
		return
	}

	f.Src = src
	f.Tags = syntax.Parse(src)
	f.parsed = true
}

// Parsed reports whether the file has been parsed.
func (f *File) Parsed() bool {
	return f.parsed
}

// Include adds an included file.
func (f *File) Include(inc *File) {
	f.IncludedFiles = append(f.IncludedFiles, inc)
	f.Includes.Add(inc)
}

// Declare defines a top-level symbol of the file.
func (f *File) Declare(sym *Symbol) {
	f.Decls.Define(sym.Name, sym)
	f.Symbols = append(f.Symbols, sym)
}

// Walker returns a tag walker positioned at the tag with index idx.
func (f *File) Walker(idx int) *syntax.Walker {
	return syntax.NewWalker(f.Src, f.Tags, idx)
}
