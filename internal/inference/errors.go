package inference

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks precondition violations detected before any model
// call. Callers can recover by correcting the input; it is never retried.
var ErrInvalidInput = errors.New("invalid input")

// ErrInference marks failures surfaced by an underlying model call. The
// original error is kept in the chain and propagated unchanged; no retry,
// no fallback.
var ErrInference = errors.New("inference failed")

func invalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// inferenceError wraps a model-call failure so that errors.Is(err, ErrInference)
// matches while errors.Is/As still reach the underlying cause.
type inferenceError struct {
	op  string
	err error
}

func (e *inferenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *inferenceError) Unwrap() error { return e.err }

func (e *inferenceError) Is(target error) bool { return target == ErrInference }

func wrapInference(op string, err error) error {
	return &inferenceError{op: op, err: err}
}
