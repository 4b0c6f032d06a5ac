package dterrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesStackAndType(t *testing.T) {
	err := New(ErrorTypeShape, "row index out of range")
	assert.Equal(t, ErrorTypeShape, err.Type)
	assert.NotEmpty(t, err.Stack)
	assert.Equal(t, "shape: row index out of range", err.Error())
}

func TestWithDetailChains(t *testing.T) {
	err := New(ErrorTypeResource, "allocation failed").
		WithDetail("rows", 1000).
		WithDetail("stype", "float64")
	assert.Equal(t, 1000, err.Details["rows"])
	assert.Equal(t, "float64", err.Details["stype"])
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(cause, ErrorTypeCast, "cast failed")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "cast: cast failed: underlying failure", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "ignored"))
}

func TestWrapKeepsStructuredStack(t *testing.T) {
	inner := New(ErrorTypeShape, "inner")
	outer := Wrap(inner, ErrorTypeInternal, "outer")
	assert.Equal(t, inner.Stack[0], outer.Stack[0])
}

func TestIsTypeWalksChain(t *testing.T) {
	inner := New(ErrorTypeDegenerate, "no finite range")
	wrapped := fmt.Errorf("context: %w", inner)

	assert.True(t, IsType(wrapped, ErrorTypeDegenerate))
	assert.False(t, IsType(wrapped, ErrorTypeShape))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeShape))
}
