// Package action has the side effects an expectation performs when it is invoked:
// returning a value, failing with an error, running a callback, or a mix of those.
//
// Errors and panics raised by an Action are never wrapped or recovered here, they reach
// whoever invoked the expectation as they are.
package action

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/uberbrodt/mockcore/mock/invocation"
)

// Returned by a [Sequence] that has run out of actions.
var ErrNoMoreActions = errors.New("no more actions available")

// Action is performed when an expectation is invoked. The result is what the mocked
// method returns.
type Action interface {
	Invoke(inv invocation.Invocation) (any, error)
}

// Func adapts an ordinary function to an [Action].
type Func func(inv invocation.Invocation) (any, error)

func (f Func) Invoke(inv invocation.Invocation) (any, error) {
	return f(inv)
}

func (f Func) String() string {
	return "func"
}

type returnValue struct {
	v any
}

func (r returnValue) Invoke(invocation.Invocation) (any, error) {
	return r.v, nil
}

func (r returnValue) String() string {
	return fmt.Sprintf("returns <%v>", r.v)
}

// Return always returns [v].
func Return(v any) Action {
	return returnValue{v: v}
}

type returnError struct {
	err error
}

func (r returnError) Invoke(invocation.Invocation) (any, error) {
	return nil, r.err
}

func (r returnError) String() string {
	return fmt.Sprintf("fails with <%v>", r.err)
}

// ReturnError always fails with [err], unwrapped.
func ReturnError(err error) Action {
	return returnError{err: err}
}

// Do runs [f] for its side effect and returns a nil result.
func Do(f func(inv invocation.Invocation)) Action {
	return Func(func(inv invocation.Invocation) (any, error) {
		f(inv)
		return nil, nil
	})
}

type doAll struct {
	actions []Action
}

func (d doAll) Invoke(inv invocation.Invocation) (result any, err error) {
	for _, a := range d.actions {
		if result, err = a.Invoke(inv); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (d doAll) String() string {
	return "do all of " + describe(d.actions)
}

// DoAll performs each of [actions] in order and returns the result of the last one.
// It stops at the first action that fails and returns that error.
func DoAll(actions ...Action) Action {
	return doAll{actions: actions}
}

type sequence struct {
	actions []Action
	next    int
	mx      sync.Mutex
}

func (s *sequence) Invoke(inv invocation.Invocation) (any, error) {
	s.mx.Lock()
	if s.next >= len(s.actions) {
		s.mx.Unlock()
		return nil, fmt.Errorf("%w for %v", ErrNoMoreActions, inv)
	}
	a := s.actions[s.next]
	s.next++
	s.mx.Unlock()

	return a.Invoke(inv)
}

func (s *sequence) String() string {
	return "each time, the next of " + describe(s.actions)
}

// Sequence performs the first of [actions] on the first invocation, the second on
// the second, and so on. Once every action was used it fails with [ErrNoMoreActions].
func Sequence(actions ...Action) Action {
	return &sequence{actions: actions}
}

func describe(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
