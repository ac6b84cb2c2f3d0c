// Package jsrun executes generated programs in an embedded JavaScript engine.
package jsrun

import (
	"fmt"
	"io"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
)

// Runtime is a loaded generated program.
type Runtime struct {
	vm  *goja.Runtime
	out io.Writer
}

// New creates a runtime whose `print` hook writes to out.
func New(out io.Writer) *Runtime {
	r := &Runtime{vm: goja.New(), out: out}

	r.vm.Set("print", func(call goja.FunctionCall) goja.Value {
		fmt.Fprintln(r.out, call.Argument(0).String())
		return goja.Undefined()
	})

	return r
}

// Load evaluates program text in the runtime.
func (r *Runtime) Load(program string) error {
	if _, err := r.vm.RunString(program); err != nil {
		return errors.Wrap(err, "loading program")
	}

	return nil
}

// Eval evaluates a snippet of target code and returns its value.
func (r *Runtime) Eval(src string) (goja.Value, error) {
	return r.vm.RunString(src)
}

// export looks up a function exported by the loaded program.
func (r *Runtime) export(name string) (goja.Callable, error) {
	exports := r.vm.Get("FryExports")
	if exports == nil || goja.IsUndefined(exports) {
		return nil, errors.New("no program loaded")
	}

	fv := exports.ToObject(r.vm).Get(name)
	if fv == nil || goja.IsUndefined(fv) {
		return nil, errors.Errorf("no exported function named `%s`", name)
	}

	fn, ok := goja.AssertFunction(fv)
	if !ok {
		return nil, errors.Errorf("export `%s` is not a function", name)
	}

	return fn, nil
}

func (r *Runtime) values(args []interface{}) []goja.Value {
	vals := make([]goja.Value, len(args))
	for i, arg := range args {
		vals[i] = r.vm.ToValue(arg)
	}

	return vals
}

// Call invokes a non-suspending exported function.
func (r *Runtime) Call(name string, args ...interface{}) (goja.Value, error) {
	fn, err := r.export(name)
	if err != nil {
		return nil, err
	}

	return fn(goja.Undefined(), r.values(args)...)
}

// Completion records how a suspending call handed control back to the host.
type Completion struct {
	// Value is the last value passed to the return continuation.
	Value goja.Value

	// Returns counts invocations of the return continuation.
	Returns int

	// Thrown is the last value passed to the escape callback.
	Thrown goja.Value

	// Throws counts invocations of the escape callback.
	Throws int
}

// CallSuspending invokes a suspending exported function with host
// continuations.  If throws is set an escape callback is passed as well.
func (r *Runtime) CallSuspending(name string, throws bool, args ...interface{}) (*Completion, error) {
	fn, err := r.export(name)
	if err != nil {
		return nil, err
	}

	c := &Completion{}
	vals := r.values(args)

	if throws {
		vals = append(vals, r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			c.Throws++
			c.Thrown = call.Argument(0)
			return goja.Undefined()
		}))
	}

	vals = append(vals, r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		c.Returns++
		c.Value = call.Argument(0)
		return goja.Undefined()
	}))

	if _, err := fn(goja.Undefined(), vals...); err != nil {
		return c, err
	}

	return c, nil
}
