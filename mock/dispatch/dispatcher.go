// Package dispatch routes invocations made on a mock to the first of its declared
// expectations that matches, and keeps track of the invocations nothing matched so
// they can be reported when the test ends.
package dispatch

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/xid"
	"github.com/uberbrodt/fungo/fun"
	"go.uber.org/zap"

	"github.com/uberbrodt/mockcore/mock/expectation"
	"github.com/uberbrodt/mockcore/mock/invocation"
)

// no expectation accepted the invocation
var ErrUnexpectedInvocation = errors.New("unexpected invocation")

// Making an interface for [testing.T] so that we can test the Dispatcher.
//
//go:generate mockgen -destination ./internal/mock/tlike.go -package mock . TLike
type TLike interface {
	TestReporter
	Cleanup(func())
}

// A TestReporter is something that can be used to report test failures.  It
// is satisfied by the standard library's *testing.T.
type TestReporter interface {
	// logs an error and fails the test
	Errorf(format string, args ...any)
	Helper()
}

// Miss is an invocation that no expectation accepted.
type Miss struct {
	Invocation invocation.Invocation
	// wraps [ErrUnexpectedInvocation], and [expectation.ErrExhausted] if an expectation
	// would have matched but was used up.
	Reason error
}

// Dispatcher is an ordered set of expectations. It is safe for concurrent use.
type Dispatcher struct {
	expected []*expectation.InvocationExpectation
	misses   []Miss
	log      *zap.Logger
	mx       sync.Mutex
}

// New returns an empty Dispatcher. With no expectations every invocation is a miss.
func New(opts ...Opt) *Dispatcher {
	o := dispatchOpts{name: fmt.Sprintf("%s-dispatcher", xid.New().String())}

	for _, f := range opts {
		o = f(o)
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		expected: make([]*expectation.InvocationExpectation, 0),
		misses:   make([]Miss, 0),
		log:      logger.With(zap.String("mock.dispatcher", o.name)),
	}
}

// ForTest returns a Dispatcher that is [Verify]'d when [t] cleans up.
func ForTest(t TLike, opts ...Opt) *Dispatcher {
	d := New(opts...)
	t.Cleanup(func() {
		d.Verify(t)
	})
	return d
}

// Add appends expectations. They are tried in the order they were added.
func (d *Dispatcher) Add(exs ...*expectation.InvocationExpectation) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.expected = append(d.expected, exs...)
}

// Dispatch hands [inv] to the first expectation that matches it, counts it there and
// returns the result of that expectation's action. The action's error is returned as
// is.
//
// If nothing matches, the returned error wraps [ErrUnexpectedInvocation] and the
// invocation is recorded as a [Miss].
//
// The matchers run while the dispatcher is locked and must not call back into [d].
// Actions run unlocked and may.
func (d *Dispatcher) Dispatch(inv invocation.Invocation) (any, error) {
	ex, err := d.claim(inv)
	if err != nil {
		return nil, err
	}

	d.log.Debug("dispatching invocation",
		zap.Stringer("invocation", inv),
		zap.String("expectation", ex.ID()),
		zap.Int("call_count", ex.CallCount()))

	// not holding the lock here, the action may well call into this mock again.
	return ex.Perform(inv)
}

func (d *Dispatcher) claim(inv invocation.Invocation) (*expectation.InvocationExpectation, error) {
	d.mx.Lock()
	defer d.mx.Unlock()

	for _, ex := range d.expected {
		if ex.TryClaim(inv) {
			return ex, nil
		}
	}

	errs := new(bytes.Buffer)
	exhausted := false

	for _, ex := range d.expected {
		reason := ex.Mismatch(inv)
		if reason == nil {
			// invoked elsewhere, or a matcher changed its mind, since TryClaim refused it
			reason = expectation.ErrExhausted
		}
		if errors.Is(reason, expectation.ErrExhausted) {
			exhausted = true
		}
		fmt.Fprintf(errs, "%v: %v\n", ex, reason)
	}

	if len(d.expected) == 0 {
		fmt.Fprintf(errs, "there are no expectations for %v", inv)
	}

	var err error
	if exhausted {
		err = fmt.Errorf("%w %v: %w\n%s", ErrUnexpectedInvocation, inv, expectation.ErrExhausted, errs)
	} else {
		err = fmt.Errorf("%w %v\n%s", ErrUnexpectedInvocation, inv, errs)
	}

	d.misses = append(d.misses, Miss{Invocation: inv, Reason: err})
	d.log.Warn("unexpected invocation",
		zap.Stringer("invocation", inv),
		zap.Bool("exhausted", exhausted),
		zap.Int("expectations", len(d.expected)))

	return nil, err
}

// IsSatisfied reports whether every expectation was invoked its required number of times. Misses
// are not taken into account, see [Verify].
func (d *Dispatcher) IsSatisfied() bool {
	return fun.Reduce(d.Expectations(), true, func(v *expectation.InvocationExpectation, acc bool) bool {
		return acc && v.IsSatisfied()
	})
}

// Unsatisfied returns all the unsatisfied expectations, in the order they were added.
func (d *Dispatcher) Unsatisfied() []*expectation.InvocationExpectation {
	return fun.Filter(d.Expectations(), func(v *expectation.InvocationExpectation) bool {
		return !v.IsSatisfied()
	})
}

// Expectations returns a copy of the expectations, in the order they were added.
func (d *Dispatcher) Expectations() []*expectation.InvocationExpectation {
	d.mx.Lock()
	defer d.mx.Unlock()
	exs := make([]*expectation.InvocationExpectation, len(d.expected))
	copy(exs, d.expected)
	return exs
}

// Misses returns a copy of the invocations that nothing matched.
func (d *Dispatcher) Misses() []Miss {
	d.mx.Lock()
	defer d.mx.Unlock()
	misses := make([]Miss, len(d.misses))
	copy(misses, d.misses)
	return misses
}

// Len is the number of expectations, exhausted or pending.
func (d *Dispatcher) Len() int {
	d.mx.Lock()
	defer d.mx.Unlock()
	return len(d.expected)
}

// Verify reports every unsatisfied expectation and every miss to [t]. Returns true if
// there was nothing to report.
func (d *Dispatcher) Verify(t TestReporter) bool {
	t.Helper()
	ok := true

	for _, ex := range d.Unsatisfied() {
		t.Errorf("unsatisfied expectation: %v", ex)
		ok = false
	}

	for _, miss := range d.Misses() {
		t.Errorf("%v", miss.Reason)
		ok = false
	}

	return ok
}
