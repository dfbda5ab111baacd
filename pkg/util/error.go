package util

import (
	"github.com/pingcap/errors"
)

type invariantViolation interface {
	invariantMarker()
}

type invariantWrapper struct {
	error
}

func (invariantWrapper) invariantMarker() {}

func (w invariantWrapper) Unwrap() error {
	return w.error
}

// WrapInvariantViolation marks err as a broken internal invariant. Such an
// error means a defect in the program, so callers should abort instead of
// retrying or reporting it as a user error.
func WrapInvariantViolation(err error) error {
	if err == nil {
		return nil
	}
	return invariantWrapper{err}
}

// IsInvariantViolation checks if an error is wrapped by
// WrapInvariantViolation. It supports pingcap/errors package.
func IsInvariantViolation(err error) bool {
	for err != nil {
		if _, ok := err.(invariantViolation); ok {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
