package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fryc/build"
	"fryc/common"
	"fryc/jsrun"
	"fryc/logging"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

const (
	replHistoryFile = ".fry_history"
	replPrompt      = "fry> "
	replContPrompt  = "...  "
	replFileName    = "<repl>" + common.FryFileExt
)

// declKeywords are the words that begin a top level declaration.
var declKeywords = []string{"function", "struct", "union", "trait", "implement", "include"}

// replLoader serves the session's source from memory and everything it
// includes from the file system.
type replLoader struct {
	build.OSLoader
	path, src string
}

func (rl *replLoader) ReadFile(absPath string) (string, error) {
	if absPath == rl.path {
		return rl.src, nil
	}

	return rl.OSLoader.ReadFile(absPath)
}

func (rl *replLoader) Exists(absPath string) bool {
	return absPath == rl.path || rl.OSLoader.Exists(absPath)
}

// session is the state of an interactive session: the declarations accepted
// so far.  Statements are run in a fresh function each time so variables do
// not outlive their input.
type session struct {
	dir   string
	decls []string
	count int
	out   io.Writer
}

func newSession(dir string, out io.Writer) *session {
	return &session{dir: dir, out: out}
}

func isDeclaration(code string) bool {
	fields := strings.Fields(code)
	if len(fields) == 0 {
		return false
	}

	for _, kw := range declKeywords {
		if fields[0] == kw {
			return true
		}
	}

	return false
}

// compile compiles the session's declarations followed by extra.
func (s *session) compile(extra string) (string, error) {
	src := strings.Join(append(s.decls, extra), "\n\n") + "\n"
	loader := &replLoader{path: filepath.Join(s.dir, replFileName), src: src}

	return build.NewCompiler(loader, nil).Compile(loader.path)
}

// Eval accepts a declaration into the session or runs a sequence of
// statements.
func (s *session) Eval(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}

	if isDeclaration(code) {
		if _, err := s.compile(code); err != nil {
			return err
		}

		s.decls = append(s.decls, code)
		return nil
	}

	s.count++
	name := fmt.Sprintf("repl-%d", s.count)
	wrapper := fmt.Sprintf("function %s\n  @suspends\n  @throws\n{\n%s\n}", name, code)

	out, err := s.compile(wrapper)
	if err != nil {
		return err
	}

	r := jsrun.New(s.out)
	if err := r.Load(out); err != nil {
		return err
	}

	c, err := r.CallSuspending(name, true)
	if err != nil {
		return err
	}

	if c.Throws > 0 {
		return errors.Errorf("uncaught throw of %s", c.Thrown.String())
	}

	return nil
}

// braceDepth returns the number of unclosed braces in src.  Braces inside
// string literals and comments are ignored.
func braceDepth(src string) int {
	depth := 0
	inString, inComment := false, false

	for _, c := range src {
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case inString:
			if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '#':
			inComment = true
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}

	return depth
}

// readInput reads lines until every opened brace is closed.
func readInput(ln *liner.State) (string, error) {
	var sb strings.Builder
	prompt := replPrompt

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}

		sb.WriteString(line)
		sb.WriteRune('\n')

		if braceDepth(sb.String()) <= 0 {
			return sb.String(), nil
		}

		prompt = replContPrompt
	}
}

// runRepl runs an interactive session on the terminal.
func runRepl() {
	dir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("REPL Error", err)
		return
	}

	logging.PrintInfoMessage("Fry REPL", common.FryVersion+" (type :quit to exit)")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := newSession(dir, os.Stdout)
	for {
		code, err := readInput(ln)
		if err != nil {
			// io.EOF and liner.ErrPromptAborted both end the session
			fmt.Println()
			return
		}

		switch strings.TrimSpace(code) {
		case "":
			continue
		case ":quit":
			return
		case ":decls":
			fmt.Println(strings.Join(s.decls, "\n\n"))
			continue
		case ":reset":
			s = newSession(dir, os.Stdout)
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(strings.TrimSpace(code), "\n", " "))

		if err := s.Eval(code); err != nil {
			logging.PrintErrorMessage("Error", err)
		}
	}
}
