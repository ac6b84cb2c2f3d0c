package generate

import (
	"bytes"
	"strings"
	"testing"

	"fryc/jsrun"
)

func loadPreamble(t *testing.T) *jsrun.Runtime {
	t.Helper()

	r := jsrun.New(&bytes.Buffer{})
	if err := r.Load(Preamble); err != nil {
		t.Fatal(err)
	}

	return r
}

func TestCoroutineLifecycle(t *testing.T) {
	r := loadPreamble(t)

	// a body which suspends once and then completes
	v, err := r.Eval(`
var steps = [];
function body(env, ret) {
  steps.push(1);
  return FrySuspend(function(val) {
    steps.push(2);
    return ret();
  });
}
var c = FryCoroNew(body, {});
FryCoroResume(c);
FryCoroResume(c);
steps.join(",") + ":" + (FryCoroCurrent === null);
`)
	if err != nil {
		t.Fatal(err)
	}

	if v.String() != "1,2:true" {
		t.Fatalf("got %s", v.String())
	}

	_, err = r.Eval("FryCoroResume(c);")
	if err == nil || !strings.Contains(err.Error(), "resuming dead coroutine") {
		t.Fatalf("expected dead coroutine fault, got %v", err)
	}

	if v, _ := r.Eval("FryCoroCurrent === null && !c.active"); !v.ToBoolean() {
		t.Fatal("a failed resume must restore the current coroutine")
	}
}

func TestSelfResumeFaults(t *testing.T) {
	r := loadPreamble(t)

	_, err := r.Eval(`
var self = FryCoroNew(function(env, ret) {
  FryCoroResume(self);
  return ret();
}, {});
FryCoroResume(self);
`)
	if err == nil || !strings.Contains(err.Error(), "resuming active coroutine") {
		t.Fatalf("expected active coroutine fault, got %v", err)
	}
}

func TestSuspendOutsideCoroutineFaults(t *testing.T) {
	r := loadPreamble(t)

	_, err := r.Eval("FrySuspend(function() {});")
	if err == nil || !strings.Contains(err.Error(), "outside of a coroutine") {
		t.Fatalf("expected fault, got %v", err)
	}
}

func TestFryCallSentinel(t *testing.T) {
	r := loadPreamble(t)

	v, err := r.Eval(`
var caught = null;
function boom(x) { FryThrow(x); }
var r = FryCall(function(e) { caught = e; }, boom, 9);
(r === FryDidThrow) + ":" + caught + ":" + FryCall(null, function(a, b) { return a + b; }, 2, 3);
`)
	if err != nil {
		t.Fatal(err)
	}

	if v.String() != "true:9:5" {
		t.Fatalf("got %s", v.String())
	}
}

func TestUnionGet(t *testing.T) {
	r := loadPreamble(t)

	v, err := r.Eval("FryUnionGet([1, 42], 1)")
	if err != nil || v.ToInteger() != 42 {
		t.Fatalf("got %v, %v", v, err)
	}

	_, err = r.Eval("FryUnionGet([1, 42], 0)")
	if err == nil || !strings.Contains(err.Error(), "wrong union tag") {
		t.Fatalf("expected wrong tag fault, got %v", err)
	}
}

func TestCoroWrapParksCoroutine(t *testing.T) {
	r := loadPreamble(t)

	v, err := r.Eval(`
var steps = [];
var pending = null;
function body(env, ret) {
  var cont = FryCoroWrap(function(val) {
    steps.push(val);
    return ret();
  });
  pending = cont;
}
var c = FryCoroNew(body, {});
FryCoroResume(c);
steps.push("parked");
pending(7);
steps.join(",");
`)
	if err != nil {
		t.Fatal(err)
	}

	if v.String() != "parked,7" {
		t.Errorf("got steps %s", v.String())
	}

	// a completed coroutine cannot be continued again
	_, err = r.Eval("pending(8);")
	if err == nil || !strings.Contains(err.Error(), "resuming dead coroutine") {
		t.Errorf("expected a dead coroutine fault, got %v", err)
	}

	// outside of a coroutine the continuation is returned unchanged
	v, err = r.Eval("var k = function(x) { return x; }; FryCoroWrap(k) === k;")
	if err != nil || !v.ToBoolean() {
		t.Errorf("expected the bare continuation, got %v %v", v, err)
	}
}

func TestLoopRunsIterationsWithoutNesting(t *testing.T) {
	r := loadPreamble(t)

	v, err := r.Eval(`
var depth = 0, maxDepth = 0, count = 0;
var next = FryLoop(function() {
  depth++;
  maxDepth = Math.max(maxDepth, depth);
  if (count < 1000) {
    count++;
    next();
  }
  depth--;
});
next();
count + ":" + maxDepth;
`)
	if err != nil {
		t.Fatal(err)
	}

	if v.String() != "1000:1" {
		t.Errorf("got %s", v.String())
	}
}

func TestLoopResumesAfterSuspending(t *testing.T) {
	r := loadPreamble(t)

	v, err := r.Eval(`
var steps = [];
var count = 0;
var body = function(env, ret) {
  var next = FryLoop(function() {
    if (count === 3) {
      return ret();
    }
    count++;
    steps.push(count);
    return FrySuspend(next);
  });
  return next();
};
var c = FryCoroNew(body, {});
FryCoroResume(c);
FryCoroResume(c);
FryCoroResume(c);
FryCoroResume(c);
steps.join(",") + ":" + (c.resume === FryCoroDead);
`)
	if err != nil {
		t.Fatal(err)
	}

	if v.String() != "1,2,3:true" {
		t.Errorf("got %s", v.String())
	}
}
