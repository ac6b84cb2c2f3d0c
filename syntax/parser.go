package syntax

import (
	"strings"

	"fryc/report"
)

// Parse runs the Fry grammar over src and returns the emitted tags.  The
// grammar must consume the entire source text: a partial match is a grammar
// error for the whole file.
func Parse(src string) []Tag {
	out, ok := fry.Ref("file")(NewInput(src))
	if !ok || !out.AtEOF() {
		line, col := lineCol(src, *out.furthest)
		report.Raise(report.Grammar, "unexpected input at line %d, column %d", line, col)
	}

	return out.Tags()
}

// lineCol converts an offset into a one-based line and column.
func lineCol(src string, pos int) (int, int) {
	if pos > len(src) {
		pos = len(src)
	}

	line := strings.Count(src[:pos], "\n") + 1
	col := pos - strings.LastIndex(src[:pos], "\n")
	return line, col
}
