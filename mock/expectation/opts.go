package expectation

import (
	"github.com/uberbrodt/mockcore/mock/action"
	"github.com/uberbrodt/mockcore/mock/matcher"
)

type expectOpts struct {
	object   matcher.Matcher
	method   matcher.Matcher
	params   matcher.Matcher
	required int
	max      int
	action   action.Action
	name     string
}

type Opt func(o expectOpts) expectOpts

// Constrain the object the method is invoked on. See [matcher.Same].
func Object(m matcher.Matcher) Opt {
	return func(o expectOpts) expectOpts {
		o.object = m
		return o
	}
}

// Constrain the invoked method.
func Method(m matcher.Matcher) Opt {
	return func(o expectOpts) expectOpts {
		o.method = m
		return o
	}
}

// Constrain the parameter list. The matcher receives an [invocation.Params].
func Params(m matcher.Matcher) Opt {
	return func(o expectOpts) expectOpts {
		o.params = m
		return o
	}
}

// Action performed each time the expectation is invoked.
func Will(a action.Action) Opt {
	return func(o expectOpts) expectOpts {
		o.action = a
		return o
	}
}

// Set a name that will identify the Expectation in error reports and logs
func Name(name string) Opt {
	return func(o expectOpts) expectOpts {
		o.name = name
		return o
	}
}

// Expectation is satisfied after [n] invocations and stops matching after that.
func Times(n int) Opt {
	return func(o expectOpts) expectOpts {
		o.required, o.max = n, n
		return o
	}
}

// expectation is satisfied after [n] invocations and keeps matching forever.
func AtLeast(n int) Opt {
	return func(o expectOpts) expectOpts {
		o.required, o.max = n, Unbounded
		return o
	}
}

// Expectation is satisfied with zero invocations and matches up to [n] times.
func AtMost(n int) Opt {
	return func(o expectOpts) expectOpts {
		o.required, o.max = 0, n
		return o
	}
}

// Expectation needs [minCalls] invocations and matches up to [maxCalls].
func Between(minCalls, maxCalls int) Opt {
	return func(o expectOpts) expectOpts {
		o.required, o.max = minCalls, maxCalls
		return o
	}
}

// Expectation is always satisfied and always matches.
func AnyTimes() Opt {
	return func(o expectOpts) expectOpts {
		o.required, o.max = 0, Unbounded
		return o
	}
}

// expectation is satisfied only if never invoked, and never matches. Alias for `Times(0)`
func Never() Opt {
	return Times(0)
}
