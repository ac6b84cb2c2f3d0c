package syntax

// tagList is a persistent list of emitted tags stored newest first.  Parser
// states share tails so that backtracking never has to undo an emission.
type tagList struct {
	tag  Tag
	prev *tagList
}

// Input is the state threaded through every parser: the source text, the
// current offset, and the tags emitted so far.
type Input struct {
	src  string
	pos  int
	tags *tagList

	// furthest points to the furthest offset any parser has reached.  It is
	// shared by all states of a single parse and only used for diagnostics.
	furthest *int
}

// NewInput creates the initial state for parsing src.
func NewInput(src string) Input {
	return Input{src: src, furthest: new(int)}
}

// Pos returns the current offset into the source.
func (in Input) Pos() int {
	return in.pos
}

// AtEOF reports whether all of the source text has been consumed.
func (in Input) AtEOF() bool {
	return in.pos == len(in.src)
}

// Tags returns the emitted tags in emission order.
func (in Input) Tags() []Tag {
	n := 0
	for l := in.tags; l != nil; l = l.prev {
		n++
	}

	tags := make([]Tag, n)
	for l := in.tags; l != nil; l = l.prev {
		n--
		tags[n] = l.tag
	}

	return tags
}

func (in Input) advance(n int) Input {
	in.pos += n
	if in.pos > *in.furthest {
		*in.furthest = in.pos
	}

	return in
}

// Parser recognizes a prefix of its input.  It returns the successor state and
// true on a match and the original state and false otherwise.
type Parser func(in Input) (Input, bool)

// Lit matches the literal string s.
func Lit(s string) Parser {
	return func(in Input) (Input, bool) {
		if len(in.src)-in.pos >= len(s) && in.src[in.pos:in.pos+len(s)] == s {
			return in.advance(len(s)), true
		}

		return in, false
	}
}

// Class matches a single byte accepted by pred.
func Class(pred func(c byte) bool) Parser {
	return func(in Input) (Input, bool) {
		if in.pos < len(in.src) && pred(in.src[in.pos]) {
			return in.advance(1), true
		}

		return in, false
	}
}

// Choice tries each parser in order and returns the result of the first that
// matches.
func Choice(ps ...Parser) Parser {
	return func(in Input) (Input, bool) {
		for _, p := range ps {
			if out, ok := p(in); ok {
				return out, true
			}
		}

		return in, false
	}
}

// Seq matches each parser in turn.
func Seq(ps ...Parser) Parser {
	return func(in Input) (Input, bool) {
		out := in
		for _, p := range ps {
			var ok bool
			if out, ok = p(out); !ok {
				return in, false
			}
		}

		return out, true
	}
}

// Opt matches p zero or one times.
func Opt(p Parser) Parser {
	return func(in Input) (Input, bool) {
		if out, ok := p(in); ok {
			return out, true
		}

		return in, true
	}
}

// Many matches p zero or more times.  A match which consumes no input ends
// the repetition.
func Many(p Parser) Parser {
	return func(in Input) (Input, bool) {
		for {
			out, ok := p(in)
			if !ok || out.pos == in.pos {
				return in, true
			}

			in = out
		}
	}
}

// Many1 matches p one or more times.
func Many1(p Parser) Parser {
	return Seq(p, Many(p))
}

// Not succeeds, consuming nothing, iff p fails.
func Not(p Parser) Parser {
	return func(in Input) (Input, bool) {
		if _, ok := p(in); ok {
			return in, false
		}

		return in, true
	}
}

// Emit annotates the current position with a tag of the given kind.
func Emit(kind TagKind) Parser {
	return func(in Input) (Input, bool) {
		in.tags = &tagList{tag: Tag{Pos: in.pos, Kind: kind}, prev: in.tags}
		return in, true
	}
}

// -----------------------------------------------------------------------------

// Grammar is a registry of named rules.  Rules may refer to each other before
// they are defined: references are resolved when they are first used.
type Grammar struct {
	rules map[string]Parser
}

// NewGrammar creates an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{rules: make(map[string]Parser)}
}

// Define binds a rule name to a parser.
func (g *Grammar) Define(name string, p Parser) {
	g.rules[name] = p
}

// Ref returns a parser which defers to the named rule.
func (g *Grammar) Ref(name string) Parser {
	var rule Parser
	return func(in Input) (Input, bool) {
		if rule == nil {
			var ok bool
			if rule, ok = g.rules[name]; !ok {
				panic("syntax: undefined grammar rule " + name)
			}
		}

		return rule(in)
	}
}
