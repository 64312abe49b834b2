// Package expectation decides whether an [invocation.Invocation] matches a declared
// expectation, counts how many times the expectation was invoked and performs the
// bound [action.Action].
//
// The normal sequence for a single call is:
//
//	if e.Matches(inv) {
//		result, err := e.Invoke(inv)
//		...
//	}
//
// and at the end of the test, [InvocationExpectation.IsSatisfied] tells whether it was
// called often enough.
//
// # Caller contract
//
// [InvocationExpectation.Invoke] does not check that the invocation matches; it always
// counts it. Callers must ask [InvocationExpectation.Matches] first, otherwise the
// counter can pass the maximum and the action runs for a call it was not declared for.
// [InvocationExpectation.InvokeChecked] is the variant that refuses non-matching calls.
//
// Matches followed by Invoke is not atomic. When several goroutines share an
// expectation use [InvocationExpectation.TryClaim] (or MatchAndInvoke) instead.
//
// A required count greater than the maximum is accepted, such an expectation can never
// be satisfied. Negative counts are accepted too and compare as plain ints.
package expectation

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/xid"

	"github.com/uberbrodt/mockcore/mock/action"
	"github.com/uberbrodt/mockcore/mock/invocation"
	"github.com/uberbrodt/mockcore/mock/matcher"
)

// Unbounded is the default maximum invocation count.
const Unbounded = math.MaxInt

var (
	// one of the target, method or parameters matchers rejected the invocation
	ErrNoMatch = errors.New("invocation does not match expectation")
	// the expectation was already invoked the maximum number of times
	ErrExhausted = errors.New("expectation exhausted")
	// returned by [InvocationExpectation.InvokeChecked] for an invocation that does not match
	ErrContractViolation = errors.New("invoked without matching")
)

// InvocationExpectation is one declared expectation about invocations on a mock.
type InvocationExpectation struct {
	id   string
	name string

	objectMatcher matcher.Matcher
	methodMatcher matcher.Matcher
	paramsMatcher matcher.Matcher

	requiredCount int
	maxCount      int
	invokedCount  int

	action action.Action
	mx     sync.Mutex
}

// New returns an expectation that matches any invocation, at most [Unbounded] times,
// must be invoked once to be satisfied and has no action. Use [opts] (or the setters)
// to change that.
func New(opts ...Opt) *InvocationExpectation {
	o := expectOpts{required: 1, max: Unbounded}

	for _, f := range opts {
		o = f(o)
	}

	return &InvocationExpectation{
		id:            xid.New().String(),
		name:          o.name,
		objectMatcher: matcher.OrAnything(o.object),
		methodMatcher: matcher.OrAnything(o.method),
		paramsMatcher: matcher.OrAnything(o.params),
		requiredCount: o.required,
		maxCount:      o.max,
		action:        o.action,
	}
}

// Matches reports whether [inv] is accepted by the target, method and parameters
// matchers and the expectation is not exhausted. It has no side effects.
func (e *InvocationExpectation) Matches(inv invocation.Invocation) bool {
	return e.Mismatch(inv) == nil
}

// Mismatch is [Matches] with an explanation: nil if [inv] matches, otherwise an error
// wrapping [ErrNoMatch] or [ErrExhausted] that says which part did not match.
func (e *InvocationExpectation) Mismatch(inv invocation.Invocation) error {
	e.mx.Lock()
	object, method, params := e.objectMatcher, e.methodMatcher, e.paramsMatcher
	invoked, maxCount := e.invokedCount, e.maxCount
	e.mx.Unlock()

	if !object.Matches(inv.Target()) {
		return mismatch("target", object, inv.Target())
	}
	if !method.Matches(inv.Method()) {
		return mismatch("method", method, inv.Method())
	}
	if !params.Matches(inv.Params()) {
		return mismatch("parameters", params, inv.Params())
	}
	if invoked >= maxCount {
		return fmt.Errorf("%w: invoked %d of %d times", ErrExhausted, invoked, maxCount)
	}
	return nil
}

func mismatch(slot string, m matcher.Matcher, got any) error {
	return fmt.Errorf("%w: %s\nGot: %v\nWant: %v", ErrNoMatch, slot, matcher.FormatGot(m, got), m)
}

// Invoke counts the invocation and performs the bound action, returning its result and
// error as they are. Without an action the result is nil.
//
// It does not check [Matches]; see the package docs.
func (e *InvocationExpectation) Invoke(inv invocation.Invocation) (any, error) {
	e.mx.Lock()
	e.invokedCount++
	e.mx.Unlock()

	return e.Perform(inv)
}

// InvokeChecked is [Invoke] for callers that did not check [Matches]. A non-matching
// [inv] is not counted and returns an error wrapping [ErrContractViolation] and the
// reason it did not match.
func (e *InvocationExpectation) InvokeChecked(inv invocation.Invocation) (any, error) {
	if !e.TryClaim(inv) {
		reason := e.Mismatch(inv)
		if reason == nil {
			// lost a race for the last allowed invocation
			reason = ErrExhausted
		}
		return nil, fmt.Errorf("%w: %w", ErrContractViolation, reason)
	}
	return e.Perform(inv)
}

// TryClaim counts [inv] if, and only if, it matches. Matching and counting happen under
// one lock so concurrent callers can never push the count past the maximum.
// The matchers run while the lock is held and must not call back into [e].
func (e *InvocationExpectation) TryClaim(inv invocation.Invocation) bool {
	e.mx.Lock()
	defer e.mx.Unlock()

	if e.invokedCount >= e.maxCount ||
		!e.objectMatcher.Matches(inv.Target()) ||
		!e.methodMatcher.Matches(inv.Method()) ||
		!e.paramsMatcher.Matches(inv.Params()) {
		return false
	}
	e.invokedCount++
	return true
}

// Perform runs the bound action without counting the invocation. Used after a
// successful [TryClaim].
func (e *InvocationExpectation) Perform(inv invocation.Invocation) (any, error) {
	e.mx.Lock()
	a := e.action
	e.mx.Unlock()

	if a == nil {
		return nil, nil
	}
	return a.Invoke(inv)
}

// MatchAndInvoke claims [inv] and performs the action if it matches. [matched] is
// false, and nothing is counted or performed, otherwise.
func (e *InvocationExpectation) MatchAndInvoke(inv invocation.Invocation) (result any, matched bool, err error) {
	if !e.TryClaim(inv) {
		return nil, false, nil
	}
	result, err = e.Perform(inv)
	return result, true, err
}

// IsSatisfied reports whether the required number of invocations have been made.
func (e *InvocationExpectation) IsSatisfied() bool {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.invokedCount >= e.requiredCount
}

// IsExhausted reports whether the maximum number of invocations have been made. An exhausted
// expectation never matches again.
func (e *InvocationExpectation) IsExhausted() bool {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.invokedCount >= e.maxCount
}

// SetObjectMatcher constrains the invocation target. nil matches any target.
func (e *InvocationExpectation) SetObjectMatcher(m matcher.Matcher) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.objectMatcher = matcher.OrAnything(m)
}

// SetMethodMatcher constrains the invoked [invocation.Method]. nil matches any method.
func (e *InvocationExpectation) SetMethodMatcher(m matcher.Matcher) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.methodMatcher = matcher.OrAnything(m)
}

// SetParametersMatcher constrains the [invocation.Params]. nil matches any parameters,
// absent ones included.
func (e *InvocationExpectation) SetParametersMatcher(m matcher.Matcher) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.paramsMatcher = matcher.OrAnything(m)
}

// SetRequiredInvocationCount sets how many invocations satisfy the expectation.
func (e *InvocationExpectation) SetRequiredInvocationCount(n int) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.requiredCount = n
}

// SetMaxInvocationCount sets how many invocations the expectation accepts before it
// stops matching.
func (e *InvocationExpectation) SetMaxInvocationCount(n int) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.maxCount = n
}

// SetAction binds the action performed on invoke. nil removes it.
func (e *InvocationExpectation) SetAction(a action.Action) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.action = a
}

// SetName names the expectation in [String].
func (e *InvocationExpectation) SetName(name string) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.name = name
}

// CallCount is the number of times the expectation was invoked.
func (e *InvocationExpectation) CallCount() int {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.invokedCount
}

// MinCalls is the required invocation count.
func (e *InvocationExpectation) MinCalls() int {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.requiredCount
}

// MaxCalls is the maximum invocation count, [Unbounded] unless set.
func (e *InvocationExpectation) MaxCalls() int {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.maxCount
}

// ID is unique per expectation.
func (e *InvocationExpectation) ID() string {
	return e.id
}

// Name returns the name given with [Name] or [SetName], empty by default.
func (e *InvocationExpectation) Name() string {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.name
}

func (e *InvocationExpectation) String() string {
	e.mx.Lock()
	defer e.mx.Unlock()

	maxCalls := fmt.Sprint(e.maxCount)
	if e.maxCount == Unbounded {
		maxCalls = "unbounded"
	}
	return fmt.Sprintf("expectation{id: %s, name: %s}{target %v, method %v, params %v} MinTimes: %d, MaxTimes: %s, CallCount: %d",
		e.id, e.name, e.objectMatcher, e.methodMatcher, e.paramsMatcher, e.requiredCount, maxCalls, e.invokedCount)
}
