package build

import (
	_ "embed"
	"path/filepath"

	"fryc/common"
	"fryc/depm"
	"fryc/generate"
	"fryc/report"
	"fryc/walk"
)

//go:embed core.fry
var coreSource string

// corePath is the pseudo-path of the embedded prelude.
const corePath = "<core>/" + common.CoreFileName

// EntryPoint describes a function exported by a compiled program.
type EntryPoint struct {
	Name     string
	Params   []string
	Suspends bool
	Throws   bool
}

// Compiler compiles a root file and everything it includes into a single
// target program.  A compiler is used for one compilation.
type Compiler struct {
	loader      SourceLoader
	includeDirs []string

	// files holds every file referenced so far by absolute path.  Each is
	// parsed exactly once.
	files map[string]*depm.File
	queue []*depm.File
	core  *depm.File

	program *generate.Program
	walker  *walk.Walker
	entries []EntryPoint
}

// NewCompiler creates a compiler reading sources through loader.  Includes
// not found next to the including file are searched for in includeDirs.
func NewCompiler(loader SourceLoader, includeDirs []string) *Compiler {
	program := generate.NewProgram()
	return &Compiler{
		loader:      loader,
		includeDirs: includeDirs,
		files:       make(map[string]*depm.File),
		program:     program,
		walker:      walk.NewWalker(program),
	}
}

// Compile compiles the file at rootPath and returns the program text.
func (c *Compiler) Compile(rootPath string) (out string, err error) {
	defer report.Catch(&err)

	c.core = depm.NewFile(corePath, c.walker.Root)
	c.files[corePath] = c.core
	c.core.Parse(coreSource)
	c.walker.ScanFile(c.core)

	root := c.requireFile(rootPath)
	for len(c.queue) > 0 {
		f := c.queue[0]
		c.queue = c.queue[1:]

		if err := c.loadFile(f); err != nil {
			return "", err
		}
	}

	c.walker.CompileFile(root, true)
	c.collectEntries(root)
	return c.program.String(), nil
}

// Program returns the program being generated.
func (c *Compiler) Program() *generate.Program {
	return c.program
}

// Entries returns the functions exported by the last compilation.
func (c *Compiler) Entries() []EntryPoint {
	return c.entries
}

// Entry returns the exported function with the given name.
func (c *Compiler) Entry(name string) (EntryPoint, bool) {
	for _, e := range c.entries {
		if e.Name == name {
			return e, true
		}
	}

	return EntryPoint{}, false
}

// requireFile returns the file at path, queueing it for loading when it is
// first referenced.
func (c *Compiler) requireFile(path string) *depm.File {
	if f, ok := c.files[path]; ok {
		return f
	}

	f := depm.NewFile(path, c.walker.Root)
	c.files[path] = f
	c.queue = append(c.queue, f)
	return f
}

// loadFile parses a file, declares its symbols and resolves its includes.
// The prelude is included after the file's own includes.
func (c *Compiler) loadFile(f *depm.File) error {
	defer report.InFile(f.AbsPath)

	src, err := c.loader.ReadFile(f.AbsPath)
	if err != nil {
		return err
	}

	f.Parse(src)
	for _, name := range c.walker.ScanFile(f) {
		f.Include(c.requireFile(c.resolveInclude(f.Dir(), name)))
	}

	f.Include(c.core)
	return nil
}

// resolveInclude finds an included file next to the including file or in one
// of the include directories.
func (c *Compiler) resolveInclude(dir, name string) string {
	candidates := []string{c.loader.JoinInclude(dir, name)}
	for _, incDir := range c.includeDirs {
		candidates = append(candidates, c.loader.JoinInclude(incDir, name))
	}

	for _, path := range candidates {
		if c.loader.Exists(path) {
			return path
		}
	}

	report.Raise(report.Name, "cannot find included file `%s`", name)
	return ""
}

func (c *Compiler) collectEntries(root *depm.File) {
	for _, sym := range root.Symbols {
		fn, ok := sym.Resolve(c.walker).(*walk.Function)
		if !ok || fn.Decl.Sym == "" {
			continue
		}

		c.entries = append(c.entries, EntryPoint{
			Name:     fn.Decl.Name,
			Params:   fn.Decl.Params(),
			Suspends: fn.Decl.Suspends,
			Throws:   fn.Decl.Throws,
		})
	}
}

// CompileFile compiles a source file on disk.
func CompileFile(path string, includeDirs []string) (string, []EntryPoint, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}

	c := NewCompiler(OSLoader{}, includeDirs)
	out, err := c.Compile(abs)
	return out, c.Entries(), err
}
