package util

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapInvariantViolation(t *testing.T) {
	require.Nil(t, WrapInvariantViolation(nil))
	require.False(t, IsInvariantViolation(nil))
	require.False(t, IsInvariantViolation(errors.New("123")))
	require.True(t, IsInvariantViolation(WrapInvariantViolation(errors.New("123"))))
	require.True(t, IsInvariantViolation(WrapInvariantViolation(WrapInvariantViolation(errors.New("123")))))
	require.True(t, IsInvariantViolation(WrapInvariantViolation(errors.Annotate(errors.New("123"), "456"))))
	require.True(t, IsInvariantViolation(errors.Annotate(WrapInvariantViolation(errors.New("123")), "annotated")))
	require.True(t, IsInvariantViolation(errors.Trace(WrapInvariantViolation(errors.New("123")))))

	err := WrapInvariantViolation(errors.New("pool exhausted"))
	require.ErrorContains(t, err, "pool exhausted")
}
