// Package double provides the stub-and-record method that the example test
// doubles in this repository are built from.
//
// A Method stands in for one method of a mocked interface. Tests configure
// what it returns and inspect how it was called afterwards:
//
//	profitAt := double.NewMethod[int32, float64]()
//	profitAt.ReturnValue(10)
//	profitAt.ReturnValueFor(1, 5)
//	// ... exercise code that calls profitAt.Call(t) ...
//	profitAt.ExpectCalls(t, 0, 1, 2)
package double

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/akedrou/textdiff"
)

// Method records calls made with arguments of type A and answers them with
// values of type R. Multi-argument methods use a struct for A.
//
// Each call is answered by the first configured behavior that applies:
//
//  1. a value set with ReturnValueFor for exactly these arguments
//  2. a closure set with UseClosureFor for exactly these arguments
//  3. the next unconsumed value from ReturnValues
//  4. the closure set with UseClosure
//  5. the value set with ReturnValue
//  6. the zero value of R
//
// A Method is safe for concurrent use.
type Method[A comparable, R any] struct {
	mu sync.Mutex

	calls []A

	hasReturnValue bool
	returnValue    R
	sequence       []R
	closure        func(A) R
	returnFor      map[A]R
	closureFor     map[A]func(A) R
}

// NewMethod creates a Method with no configured behavior. Until configured,
// every call returns the zero value of R.
func NewMethod[A comparable, R any]() *Method[A, R] {
	return &Method[A, R]{}
}

// Call records a call with args and returns the configured answer.
// Closures run after the call is recorded and without the lock held, so a
// closure may itself inspect the Method.
func (m *Method[A, R]) Call(args A) R {
	m.mu.Lock()
	m.calls = append(m.calls, args)
	answer := m.answerLocked(args)
	m.mu.Unlock()

	return answer(args)
}

// Called reports whether the method was called at least once.
func (m *Method[A, R]) Called() bool {
	return m.NumCalls() > 0
}

// CalledWith reports whether the method was called at least once with args.
func (m *Method[A, R]) CalledWith(args A) bool {
	return m.NumCallsWith(args) > 0
}

// Calls returns the recorded arguments of every call, in call order.
func (m *Method[A, R]) Calls() []A {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]A, len(m.calls))
	copy(calls, m.calls)

	return calls
}

// ExpectCalledTimes fails the test unless the method was called exactly n times.
func (m *Method[A, R]) ExpectCalledTimes(t TestReporter, n int) {
	t.Helper()

	got := m.NumCalls()
	if got != n {
		t.Fatalf("expected %d call(s), got %d", n, got)
	}
}

// ExpectCalls fails the test unless the recorded calls equal want, in order.
// The failure message carries a unified diff of expected and actual calls.
func (m *Method[A, R]) ExpectCalls(t TestReporter, want ...A) {
	t.Helper()

	got := m.Calls()
	if reflect.DeepEqual(normalize(got), normalize(want)) {
		return
	}

	diff := textdiff.Unified("expected calls", "actual calls", renderCalls(want), renderCalls(got))
	t.Fatalf("calls did not match:\n%s", diff)
}

// ExpectCallsMatching fails the test unless there is exactly one recorded call
// per matcher and each call's arguments satisfy the matcher at the same
// position. Matchers follow MatchValue semantics.
func (m *Method[A, R]) ExpectCallsMatching(t TestReporter, matchers ...any) {
	t.Helper()

	got := m.Calls()
	if len(got) != len(matchers) {
		t.Fatalf("expected %d call(s), got %d: %s", len(matchers), len(got), strings.TrimSpace(renderCalls(got)))

		return
	}

	for i, matcher := range matchers {
		ok, msg := MatchValue(got[i], matcher)
		if !ok {
			t.Fatalf("call %d: %s", i, msg)

			return
		}
	}
}

// HasCallMatching reports whether any recorded call's arguments satisfy
// matcher, using MatchValue semantics.
func (m *Method[A, R]) HasCallMatching(matcher any) bool {
	for _, args := range m.Calls() {
		if ok, _ := MatchValue(args, matcher); ok {
			return true
		}
	}

	return false
}

// NumCalls returns how many times the method was called.
func (m *Method[A, R]) NumCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.calls)
}

// NumCallsWith returns how many times the method was called with args.
func (m *Method[A, R]) NumCallsWith(args A) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0

	for _, call := range m.calls {
		if call == args {
			count++
		}
	}

	return count
}

// Reset forgets all recorded calls and all configured behavior.
func (m *Method[A, R]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero R

	m.calls = nil
	m.hasReturnValue = false
	m.returnValue = zero
	m.sequence = nil
	m.closure = nil
	m.returnFor = nil
	m.closureFor = nil
}

// ReturnValue sets the value returned for any arguments once no
// higher-priority behavior applies.
func (m *Method[A, R]) ReturnValue(value R) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hasReturnValue = true
	m.returnValue = value
}

// ReturnValueFor sets the value returned whenever the method is called with
// exactly args. It takes precedence over every other behavior.
func (m *Method[A, R]) ReturnValueFor(args A, value R) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.returnFor == nil {
		m.returnFor = make(map[A]R)
	}

	m.returnFor[args] = value
}

// ReturnValues queues values to be returned one per call, in order. Values
// are appended to any still queued from earlier calls to ReturnValues.
func (m *Method[A, R]) ReturnValues(values ...R) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sequence = append(m.sequence, values...)
}

// UseClosure computes the return value from the call's arguments once no
// argument-specific behavior or queued value applies.
func (m *Method[A, R]) UseClosure(closure func(A) R) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closure = closure
}

// UseClosureFor computes the return value with closure whenever the method
// is called with exactly args, unless ReturnValueFor also covers args.
func (m *Method[A, R]) UseClosureFor(args A, closure func(A) R) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closureFor == nil {
		m.closureFor = make(map[A]func(A) R)
	}

	m.closureFor[args] = closure
}

// answerLocked picks the behavior for a call with args, consuming a queued
// value if that is what applies. Must be called with m.mu held.
func (m *Method[A, R]) answerLocked(args A) func(A) R {
	if value, ok := m.returnFor[args]; ok {
		return constant[A](value)
	}

	if closure, ok := m.closureFor[args]; ok {
		return closure
	}

	if len(m.sequence) > 0 {
		value := m.sequence[0]
		m.sequence = m.sequence[1:]

		return constant[A](value)
	}

	if m.closure != nil {
		return m.closure
	}

	if m.hasReturnValue {
		return constant[A](m.returnValue)
	}

	var zero R

	return constant[A](zero)
}

// constant returns a closure that ignores its arguments and returns value.
func constant[A, R any](value R) func(A) R {
	return func(A) R { return value }
}

// normalize maps an empty slice to nil so that "no calls" compares equal
// regardless of how it was built.
func normalize[A any](calls []A) []A {
	if len(calls) == 0 {
		return nil
	}

	return calls
}

// renderCalls formats calls one per line for diffing.
func renderCalls[A any](calls []A) string {
	var builder strings.Builder

	for i, call := range calls {
		fmt.Fprintf(&builder, "%d: %#v\n", i, call)
	}

	return builder.String()
}
