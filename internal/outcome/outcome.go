// Package outcome runs operations that touch partially untrusted input
// (formula cells, SQL statements) and turns every failure, panics included,
// into a value the caller inspects explicitly.
package outcome

import (
	"fmt"
	"runtime/debug"
)

// Result is either a success carrying a value or a failure carrying an error.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a value.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps an error. A nil err is replaced so the result still reports failure.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = fmt.Errorf("unspecified failure")
	}
	return Result[T]{err: err}
}

// Ok reports whether the operation succeeded.
func (r Result[T]) Ok() bool { return r.err == nil }

// Value returns the value, or the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the captured error, nil on success.
func (r Result[T]) Err() error { return r.err }

// Get unpacks the result.
func (r Result[T]) Get() (T, error) { return r.value, r.err }

// PanicError is the failure recorded when the operation panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes a panicked error value to errors.Is and errors.As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Try executes fn and never lets a panic escape.
func Try[T any](fn func() (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure[T](&PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	v, err := fn()
	if err != nil {
		return Failure[T](err)
	}
	return Success(v)
}

// Run is Try for operations without a value.
func Run(fn func() error) Result[struct{}] {
	return Try(func() (struct{}, error) {
		return struct{}{}, fn()
	})
}
