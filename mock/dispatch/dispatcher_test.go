package dispatch_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gotest.tools/v3/assert"

	"github.com/uberbrodt/mockcore/internal/test"
	"github.com/uberbrodt/mockcore/mock/action"
	"github.com/uberbrodt/mockcore/mock/check"
	"github.com/uberbrodt/mockcore/mock/dispatch"
	"github.com/uberbrodt/mockcore/mock/dispatch/internal/mock"
	"github.com/uberbrodt/mockcore/mock/expectation"
	"github.com/uberbrodt/mockcore/mock/invocation"
	"github.com/uberbrodt/mockcore/mock/matcher"
)

type greeter struct {
	name string
}

var (
	alice = &greeter{name: "alice"}
	hello = invocation.NewMethod("Hello")
	bye   = invocation.NewMethod("Bye")
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func helloExpectation(opts ...expectation.Opt) *expectation.InvocationExpectation {
	opts = append([]expectation.Opt{
		expectation.Object(matcher.Same(alice)),
		expectation.Method(matcher.Eq(hello)),
	}, opts...)
	return expectation.New(opts...)
}

func TestDispatch_FirstMatchingExpectationWins(t *testing.T) {
	d := dispatch.New(dispatch.WithLogger(zaptest.NewLogger(t)))
	first := helloExpectation(expectation.Times(1), expectation.Will(action.Return("first")))
	second := helloExpectation(expectation.AnyTimes(), expectation.Will(action.Return("second")))
	d.Add(first, second)

	inv := invocation.New(alice, hello, invocation.Of("bob"))

	result, err := d.Dispatch(inv)
	check.Result(t, result, err, "first")

	result, err = d.Dispatch(inv)
	check.Result(t, result, err, "second")

	result, err = d.Dispatch(inv)
	check.Result(t, result, err, "second")

	check.CallCount(t, first, 1)
	check.CallCount(t, second, 2)
	assert.Assert(t, d.IsSatisfied())
	assert.Equal(t, len(d.Misses()), 0)
}

func TestDispatch_SkipsNonMatching(t *testing.T) {
	d := dispatch.New()
	byeEx := expectation.New(expectation.Method(matcher.Eq(bye)), expectation.Will(action.Return("bye")))
	helloEx := helloExpectation(expectation.Will(action.Return("hello")))
	d.Add(byeEx, helloEx)

	result, err := d.Dispatch(invocation.New(alice, hello, invocation.None()))

	check.Result(t, result, err, "hello")
	check.CallCount(t, byeEx, 0)
	unsatisfied := d.Unsatisfied()
	assert.Equal(t, len(unsatisfied), 1)
	assert.Assert(t, unsatisfied[0] == byeEx)
}

func TestDispatch_UnexpectedInvocation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := dispatch.New(dispatch.WithLogger(zap.New(core)), dispatch.Name("greeter-mock"))
	d.Add(helloExpectation())

	inv := invocation.New(&greeter{name: "alice"}, hello, invocation.None())
	result, err := d.Dispatch(inv)

	assert.Assert(t, result == nil)
	assert.ErrorIs(t, err, dispatch.ErrUnexpectedInvocation)
	assert.Assert(t, !errors.Is(err, expectation.ErrExhausted))
	assert.ErrorContains(t, err, "target")

	misses := d.Misses()
	assert.Equal(t, len(misses), 1)
	assert.Equal(t, misses[0].Reason, err)

	warned := logs.FilterMessage("unexpected invocation")
	assert.Equal(t, warned.Len(), 1)
	assert.Equal(t, warned.All()[0].ContextMap()["mock.dispatcher"], "greeter-mock")
}

func TestDispatch_ReportsExhausted(t *testing.T) {
	d := dispatch.New()
	d.Add(helloExpectation(expectation.Times(1)))
	inv := invocation.New(alice, hello, invocation.None())

	_, err := d.Dispatch(inv)
	assert.NilError(t, err)

	_, err = d.Dispatch(inv)
	assert.ErrorIs(t, err, dispatch.ErrUnexpectedInvocation)
	assert.ErrorIs(t, err, expectation.ErrExhausted)
}

func TestDispatch_MissNeverReportsNilReason(t *testing.T) {
	d := dispatch.New()
	calls := 0
	// refuses the claim, accepts when asked why
	flaky := matcher.Func("accepts from the second call", func(any) bool {
		calls++
		return calls > 1
	})
	d.Add(expectation.New(expectation.Params(flaky)))

	_, err := d.Dispatch(invocation.New(alice, hello, invocation.None()))

	assert.ErrorIs(t, err, dispatch.ErrUnexpectedInvocation)
	assert.ErrorIs(t, err, expectation.ErrExhausted)
	assert.Assert(t, !strings.Contains(err.Error(), "<nil>"), err.Error())
}

func TestDispatch_NoExpectations(t *testing.T) {
	d := dispatch.New()

	_, err := d.Dispatch(invocation.New(alice, hello, invocation.None()))

	assert.ErrorIs(t, err, dispatch.ErrUnexpectedInvocation)
	assert.ErrorContains(t, err, "there are no expectations")
	assert.Assert(t, d.IsSatisfied())
	assert.Equal(t, d.Len(), 0)
}

func TestDispatch_ActionErrorIsNotAMiss(t *testing.T) {
	boom := errors.New("boom")
	d := dispatch.New()
	d.Add(helloExpectation(expectation.Will(action.ReturnError(boom))))

	_, err := d.Dispatch(invocation.New(alice, hello, invocation.None()))

	assert.Assert(t, err == boom)
	assert.Equal(t, len(d.Misses()), 0)
	assert.Assert(t, d.IsSatisfied())
}

func TestDispatch_ActionCanCallBackIntoTheMock(t *testing.T) {
	d := dispatch.New()
	inner := expectation.New(expectation.Method(matcher.Eq(bye)), expectation.Will(action.Return("bye")))
	outer := helloExpectation(expectation.Will(action.Func(func(inv invocation.Invocation) (any, error) {
		return d.Dispatch(invocation.New(inv.Target(), bye, invocation.None()))
	})))
	d.Add(outer, inner)

	result, err := d.Dispatch(invocation.New(alice, hello, invocation.None()))

	check.Result(t, result, err, "bye")
	check.Satisfied(t, outer, inner)
}

func TestDispatch_ConcurrentCallersRespectMax(t *testing.T) {
	test.SlowTest(t)

	d := dispatch.New()
	limited := helloExpectation(expectation.Times(5))
	d.Add(limited)
	inv := invocation.New(alice, hello, invocation.None())

	var wg sync.WaitGroup
	for range test.Goroutines() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Dispatch(inv)
		}()
	}
	wg.Wait()

	check.CallCount(t, limited, 5)
	assert.Equal(t, len(d.Misses()), test.Goroutines()-5)
}

func TestVerify_ReportsUnsatisfiedAndMisses(t *testing.T) {
	ctrl := gomock.NewController(t)
	fakeT := mock.NewMockTLike(ctrl)
	fakeT.EXPECT().Helper().AnyTimes()
	fakeT.EXPECT().Errorf("unsatisfied expectation: %v", gomock.Any()).Times(1)
	fakeT.EXPECT().Errorf("%v", gomock.Any()).Times(1)

	d := dispatch.New()
	d.Add(helloExpectation(expectation.Times(2)))

	_, err := d.Dispatch(invocation.New(alice, hello, invocation.None()))
	assert.NilError(t, err)
	_, err = d.Dispatch(invocation.New(alice, bye, invocation.None()))
	assert.ErrorIs(t, err, dispatch.ErrUnexpectedInvocation)

	assert.Assert(t, !d.Verify(fakeT))
}

func TestVerify_PassesWhenSatisfied(t *testing.T) {
	ctrl := gomock.NewController(t)
	fakeT := mock.NewMockTLike(ctrl)
	fakeT.EXPECT().Helper().AnyTimes()
	fakeT.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(0)

	d := dispatch.New()
	d.Add(helloExpectation(), expectation.New(expectation.AnyTimes()))

	_, err := d.Dispatch(invocation.New(alice, hello, invocation.None()))
	assert.NilError(t, err)

	assert.Assert(t, d.Verify(fakeT))
}

func TestForTest_VerifiesOnCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	fakeT := mock.NewMockTLike(ctrl)

	var cleanup func()
	fakeT.EXPECT().Cleanup(gomock.Any()).Do(func(f func()) { cleanup = f }).Times(1)
	fakeT.EXPECT().Helper().AnyTimes()
	fakeT.EXPECT().Errorf("unsatisfied expectation: %v", gomock.Any()).Times(1)

	d := dispatch.ForTest(fakeT)
	d.Add(helloExpectation())

	assert.Assert(t, cleanup != nil)
	cleanup()
}
