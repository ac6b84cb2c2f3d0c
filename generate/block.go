package generate

import (
	"strings"

	"fryc/report"
)

// ResultVal is the name of the parameter through which a frame receives the
// value produced by the call that ended the previous frame.
const ResultVal = "val"

// frame is one synchronously executed segment of a block.
type frame struct {
	name  string
	lines []string
}

// Block is a sequence of target statements.  A block starts flat with a
// single frame.  Splitting it seals the current frame with a tail call to a
// new frame which receives the rest of the block.
type Block struct {
	fn     *Function
	frames []*frame

	// Suspendable blocks may be split into frames.
	Suspendable bool

	// Throwable blocks may contain throws and calls to throwing functions.
	Throwable bool

	// Escape names the callback which receives thrown values.  It is empty
	// when throws propagate as native exceptions.
	Escape string
}

// Function returns the function the block belongs to.
func (b *Block) Function() *Function {
	return b.fn
}

// Child creates a nested block which inherits the block's markings.
func (b *Block) Child() *Block {
	return &Block{
		fn:          b.fn,
		frames:      []*frame{{}},
		Suspendable: b.Suspendable,
		Throwable:   b.Throwable,
		Escape:      b.Escape,
	}
}

// Insert appends a line to the current frame.
func (b *Block) Insert(line string) {
	cur := b.frames[len(b.frames)-1]
	cur.lines = append(cur.lines, line)
}

// Temp stores value in a fresh local and returns the local's name.
func (b *Block) Temp(value string) string {
	t := b.fn.Local("t")
	b.Insert(t + " = " + value + ";")
	return t
}

// NewFrameName allocates the name of a frame to be started later.
func (b *Block) NewFrameName(base string) string {
	if !b.Suspendable {
		report.Raise(report.Codegen, "not in a suspendable context")
	}

	return b.fn.locals.Generate(base)
}

// StartFrame begins a new frame.  The current frame must already end in a
// tail call.
func (b *Block) StartFrame(name string) {
	if !b.Suspendable {
		report.Raise(report.Codegen, "not in a suspendable context")
	}

	b.frames = append(b.frames, &frame{name: name})
}

// Split seals the current frame by returning the tail call built from the
// name of the next frame and begins that frame.  It returns the expression
// holding the value passed to the next frame.
func (b *Block) Split(tail func(next string) string) string {
	next := b.NewFrameName("frame")
	b.Insert("return " + tail(next) + ";")
	b.StartFrame(next)
	return ResultVal
}

// Chained reports whether the block has been split.
func (b *Block) Chained() bool {
	return len(b.frames) > 1
}

// NativeBody renders a flat block as plain statements.
func (b *Block) NativeBody() string {
	if b.Chained() {
		report.Raise(report.Codegen, "not in a suspendable context")
	}

	return joinLines(b.frames[0].lines)
}

// SuspendableBody renders the block as a frame chain.  Every frame but the
// first becomes a nested function declaration and the final frame invokes
// `cont`.
func (b *Block) SuspendableBody() string {
	sb := strings.Builder{}

	last := len(b.frames) - 1
	for i, f := range b.frames {
		if i == 0 {
			continue
		}

		sb.WriteString("function " + f.name + "(" + ResultVal + ") {\n")
		sb.WriteString(joinLines(f.lines))
		if i == last {
			sb.WriteString("return cont();\n")
		}
		sb.WriteString("}\n")
	}

	sb.WriteString(joinLines(b.frames[0].lines))
	if last == 0 {
		sb.WriteString("return cont();\n")
	}

	return sb.String()
}

// SuspendableFunction renders the block as a function of its continuation.
func (b *Block) SuspendableFunction() string {
	return "(function(cont) {\n" + b.SuspendableBody() + "})"
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}
