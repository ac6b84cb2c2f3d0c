package generate

// Preamble is the runtime support code emitted at the top of every program.
// FryCoroCurrent is the only mutable global: it holds the coroutine being
// resumed and is restored when the resume returns.
const Preamble = `var FryCoroCurrent = null;

function FryCoroDead() {
  throw new Error('resuming dead coroutine');
}

function FryCoroComplete() {
  FryCoroCurrent.resume = FryCoroDead;
}

function FryCoroResume(coro) {
  if (coro.active) {
    throw new Error('resuming active coroutine');
  }
  var prev = FryCoroCurrent;
  FryCoroCurrent = coro;
  coro.active = true;
  try {
    coro.resume();
  } finally {
    coro.active = false;
    FryCoroCurrent = prev;
  }
}

function FryCoroNew(fn, env) {
  return {
    active: false,
    resume: function() {
      return fn(env, FryCoroComplete);
    }
  };
}

function FrySuspend(next) {
  if (FryCoroCurrent === null) {
    throw new Error('suspending outside of a coroutine');
  }
  FryCoroCurrent.resume = next;
}

function FryError(value) {
  this.value = value;
}

function FryThrow(value) {
  throw new FryError(value);
}

var FryDidThrow = {};

function FryCall(exc, f) {
  var args = Array.prototype.slice.call(arguments, 2);
  try {
    return f.apply(null, args);
  } catch (e) {
    if (e instanceof FryError) {
      exc(e.value);
      return FryDidThrow;
    }
    throw e;
  }
}

function FryCoroWrap(ret) {
  var coro = FryCoroCurrent;
  if (coro === null) {
    return ret;
  }
  var parked = function() {
    return ret();
  };
  coro.resume = parked;
  return function(v) {
    if (coro.resume === parked) {
      coro.resume = function() {
        return ret(v);
      };
    } else if (coro.resume !== FryCoroDead) {
      throw new Error('continuation already resumed');
    }
    FryCoroResume(coro);
  };
}

function FryLoop(iter) {
  var running = false, again = false;
  function next() {
    if (running) {
      again = true;
      return;
    }
    running = true;
    try {
      do {
        again = false;
        iter();
      } while (again);
    } finally {
      running = false;
    }
  }
  return next;
}

function FryUnionGet(u, tag) {
  if (u[0] !== tag) {
    throw new Error('wrong union tag');
  }
  return u[1];
}

function FryPrint(v) {
  if (typeof print === 'function') {
    print(v);
  } else if (typeof console !== 'undefined') {
    console.log(v);
  }
}
`
