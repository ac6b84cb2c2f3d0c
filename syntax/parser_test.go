package syntax

import (
	"testing"

	"fryc/report"

	"github.com/pkg/errors"
)

const sampleSource = `# sample file
include "lib/util"

function add_one
  n: Int32
  return: Int32
{
  return add(a = n, b = 1)
}

function add
  T: NumType
  a: T
  b: T
  return: T
  @builtin

function now
  return: Int32
  @js "return 0;"

struct Pair
  T: Type
{
  first: T
  second: T
}

union Shape
{
  circle: Int32
  square: Int32
}

trait Show
{
  function show
    return: Int32
}

implement Show
  for: Pair<Int32>
{
  function show
  {
    return self.first
  }
}

function main
  @suspends
  @throws
{
  var xs = [1, 2, -3]
  var s: Shape = Shape(circle = 4)
  var ok = s.circle?
  var c = spawn { suspend() }
  if ok { print(v = "yes") } else if not(x = ok) { return } else { xs = [] }
  while lt(a = 1, b = 2) { resume(c = c) }
  try {
    throw(v = 1)
  } else err {
    print(v = err)
  }
  try { suspend() }
  s.circle = 5
}
`

func parseOrFail(t *testing.T, src string) (tags []Tag) {
	t.Helper()

	var err error
	func() {
		defer report.Catch(&err)
		tags = Parse(src)
	}()

	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}

	return tags
}

func TestTagsAreWellNested(t *testing.T) {
	tags := parseOrFail(t, sampleSource)

	var stack []TagKind
	openLeaf := false
	for i, tag := range tags {
		switch {
		case tag.Kind.IsStructural():
			if openLeaf {
				t.Fatalf("tag %d: structural tag inside identifier", i)
			}
			stack = append(stack, tag.Kind)
		case tag.Kind.IsStructuralEnd():
			if len(stack) == 0 || stack[len(stack)-1].End() != tag.Kind {
				t.Fatalf("tag %d: unmatched `%s`", i, tag.Kind)
			}
			stack = stack[:len(stack)-1]
		case tag.Kind.IsLeafStart():
			if openLeaf {
				t.Fatalf("tag %d: leaf started before previous identifier closed", i)
			}
			openLeaf = true
		case tag.Kind == TagIdentEnd:
			if !openLeaf {
				t.Fatalf("tag %d: stray ident_end", i)
			}
			openLeaf = false
		}

		if i > 0 && tags[i-1].Pos > tag.Pos {
			t.Fatalf("tag %d: positions go backwards", i)
		}
	}

	if len(stack) != 0 || openLeaf {
		t.Fatalf("unclosed tags at end of file: %v", stack)
	}
}

func TestTopLevelPartition(t *testing.T) {
	tags := parseOrFail(t, sampleSource)

	w := NewWalker(sampleSource, tags, 0)
	var kinds []TagKind
	for !w.Done() {
		kinds = append(kinds, w.Kind())
		w.Skip()
	}

	want := []TagKind{
		TagInclude, TagFunc, TagFunc, TagFunc, TagStruct,
		TagUnion, TagTrait, TagImplement, TagFunc,
	}

	if len(kinds) != len(want) {
		t.Fatalf("got %d declarations, want %d: %v", len(kinds), len(want), kinds)
	}

	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("declaration %d: got `%s`, want `%s`", i, kinds[i], want[i])
		}
	}
}

func TestGrammarRejectsPartialInput(t *testing.T) {
	var err error
	func() {
		defer report.Catch(&err)
		Parse("function f\n{ return 1 }\n}")
	}()

	var cerr *report.CompileError
	if !errors.As(err, &cerr) || cerr.Kind != report.Grammar {
		t.Fatalf("expected grammar error, got %v", err)
	}
}

func TestReturnDoesNotSpanLines(t *testing.T) {
	src := "function f\n{\n  return\n  g()\n}\n"
	tags := parseOrFail(t, src)

	for i, tag := range tags {
		if tag.Kind == TagReturn {
			if tags[i+1].Kind != TagReturnEnd {
				t.Fatalf("bare return captured the following statement")
			}
			return
		}
	}

	t.Fatal("no return tag emitted")
}

func TestKeywordPrefixedIdentifiers(t *testing.T) {
	src := "function f\n{\n  iffy()\n  var returned = 1\n}\n"
	tags := parseOrFail(t, src)

	for _, tag := range tags {
		if tag.Kind == TagIf || tag.Kind == TagReturn {
			t.Fatalf("keyword matched a prefix of an identifier")
		}
	}
}
