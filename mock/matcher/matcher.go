// Package matcher defines the predicate contract used to constrain the target,
// method and parameters of an expected invocation, and a small set of matchers
// that cover the common cases.
package matcher

import (
	"fmt"
	"strings"
)

// A Matcher is a representation of a class of values.
// It is used to represent the valid or expected target, method or arguments of a mocked call.
//
// This interface is compatible with the one gomock uses, so methods like [gomock.Eq] are
// valid matchers that can be used when configuring an Expectation.
type Matcher interface {
	// Matches returns whether x is a match.
	Matches(x any) bool

	// String describes what the matcher matches.
	String() string
}

// GotFormatter is used to better print failure messages. If a matcher
// implements GotFormatter, it will use the result from Got when printing
// the failure message.
type GotFormatter interface {
	// Got is invoked with the received value. The result is used when
	// printing the failure message.
	Got(got any) string
}

// FormatGot renders [arg] the way [m] wants it shown in a failure message.
func FormatGot(m Matcher, arg any) string {
	got := fmt.Sprintf("%v (%T)", arg, arg)
	if gs, ok := m.(GotFormatter); ok {
		got = gs.Got(arg)
	}
	return got
}

type anything struct{}

func (anything) Matches(any) bool { return true }

func (anything) String() string { return "anything" }

// Anything matches every value. Unconfigured slots of an Expectation use it.
func Anything() Matcher {
	return anything{}
}

// OrAnything returns [m], or [Anything] if [m] is nil.
func OrAnything(m Matcher) Matcher {
	if m == nil {
		return anything{}
	}
	return m
}

type funcMatcher struct {
	desc string
	f    func(any) bool
}

func (m funcMatcher) Matches(x any) bool { return m.f(x) }

func (m funcMatcher) String() string { return m.desc }

// Func adapts a plain predicate. [desc] is what shows up in failure messages.
func Func(desc string, f func(x any) bool) Matcher {
	return funcMatcher{desc: desc, f: f}
}

type notMatcher struct {
	m Matcher
}

func (n notMatcher) Matches(x any) bool { return !n.m.Matches(x) }

func (n notMatcher) String() string { return "not(" + n.m.String() + ")" }

// Not inverts [m].
func Not(m Matcher) Matcher {
	return notMatcher{m: m}
}

type allOf struct {
	ms []Matcher
}

func (a allOf) Matches(x any) bool {
	for _, m := range a.ms {
		if !m.Matches(x) {
			return false
		}
	}
	return true
}

func (a allOf) String() string { return join(a.ms, " and ") }

// AllOf matches when every one of [ms] does. No matchers matches everything.
func AllOf(ms ...Matcher) Matcher {
	return allOf{ms: ms}
}

type anyOf struct {
	ms []Matcher
}

func (a anyOf) Matches(x any) bool {
	for _, m := range a.ms {
		if m.Matches(x) {
			return true
		}
	}
	return false
}

func (a anyOf) String() string { return join(a.ms, " or ") }

// AnyOf matches when at least one of [ms] does. No matchers matches nothing.
func AnyOf(ms ...Matcher) Matcher {
	return anyOf{ms: ms}
}

func join(ms []Matcher, sep string) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}
