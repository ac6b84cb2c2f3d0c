package syntax

import (
	"strconv"
	"strings"

	"fryc/report"
)

// Walker is a forward-only cursor over the tags of a parsed file.
type Walker struct {
	src  string
	tags []Tag
	idx  int
}

// NewWalker creates a walker positioned at the tag with index idx.
func NewWalker(src string, tags []Tag, idx int) *Walker {
	return &Walker{src: src, tags: tags, idx: idx}
}

// Index returns the index of the current tag.
func (w *Walker) Index() int {
	return w.idx
}

// Done reports whether every tag has been consumed.
func (w *Walker) Done() bool {
	return w.idx >= len(w.tags)
}

// Tag returns the current tag.  At the end of the stream it returns a tag of
// kind `TagEOF` positioned at the end of the source.
func (w *Walker) Tag() Tag {
	if w.Done() {
		return Tag{Pos: len(w.src), Kind: TagEOF}
	}

	return w.tags[w.idx]
}

// Kind returns the kind of the current tag.
func (w *Walker) Kind() TagKind {
	return w.Tag().Kind
}

// Next moves to the next tag.
func (w *Walker) Next() {
	if w.Done() {
		report.Raise(report.Structural, "unexpected end of tag stream")
	}

	w.idx++
}

// Take consumes the current tag if it has the given kind.
func (w *Walker) Take(kind TagKind) bool {
	if w.Kind() == kind {
		w.idx++
		return true
	}

	return false
}

// Expect consumes the current tag which must have the given kind.
func (w *Walker) Expect(kind TagKind) {
	if !w.Take(kind) {
		report.Raise(report.Structural, "expected `%s` tag but got `%s`", kind, w.Kind())
	}
}

// Skip moves past the bracketed range opened by the current tag.
func (w *Walker) Skip() {
	start := w.Kind()
	if !start.IsStructural() && !start.IsLeafStart() {
		w.Next()
		return
	}

	end := start.End()
	depth := 0
	for {
		kind := w.Kind()
		w.Next()

		switch {
		case kind == start && start.IsStructural():
			depth++
		case kind == end:
			if start.IsLeafStart() {
				return
			}

			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// span consumes a leaf starting with the current tag and closed by `end` and
// returns the source text between them.
func (w *Walker) span(end TagKind) string {
	start := w.Tag()
	w.Next()

	stop := w.Tag()
	w.Expect(end)

	return w.src[start.Pos:stop.Pos]
}

// ReadIdent consumes an identifier leaf and returns its text.
func (w *Walker) ReadIdent() string {
	if !w.Kind().IsLeafStart() {
		report.Raise(report.Structural, "expected identifier but got `%s`", w.Kind())
	}

	return w.span(TagIdentEnd)
}

// ReadString consumes a string literal and returns its contents.  Escape
// sequences are not decoded: a string containing one is rejected.
func (w *Walker) ReadString() string {
	if w.Kind() != TagString {
		report.Raise(report.Structural, "expected string but got `%s`", w.Kind())
	}

	text := w.span(TagStringEnd)
	text = text[1 : len(text)-1]
	if strings.ContainsRune(text, '\\') {
		report.Raise(report.Unsupported, "escape sequences in string literals are not supported")
	}

	return text
}

// ReadNumber consumes an integer literal and returns its value.
func (w *Walker) ReadNumber() int {
	if w.Kind() != TagNumber {
		report.Raise(report.Structural, "expected number but got `%s`", w.Kind())
	}

	text := w.span(TagNumberEnd)
	n, err := strconv.Atoi(text)
	if err != nil {
		report.Raise(report.Type, "invalid integer literal `%s`", text)
	}

	return n
}
