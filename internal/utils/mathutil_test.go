package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 2.5, SafeDivide(5, 2, 0))
	assert.Equal(t, 0.0, SafeDivide(5, 0, 0))
	assert.Equal(t, 1.0, SafeDivide(5, 0, 1.0))
	assert.Equal(t, -3.0, SafeDivide(9, -3, 0))
}

func TestSafeDividePtr(t *testing.T) {
	d := 4.0
	assert.Equal(t, 2.0, SafeDividePtr(8, &d, 0))
	assert.Equal(t, 7.0, SafeDividePtr(8, nil, 7.0))

	zero := 0.0
	assert.Equal(t, 7.0, SafeDividePtr(8, &zero, 7.0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.23, Round2(-1.234))
	assert.Equal(t, 99.0, Round2(99.0))
}

func TestRound2Ptr(t *testing.T) {
	assert.Nil(t, Round2Ptr(nil))

	v := 3.14159
	got := Round2Ptr(&v)
	assert.NotNil(t, got)
	assert.Equal(t, 3.14, *got)
}

func TestCoalesce(t *testing.T) {
	a := 1.5
	assert.Equal(t, 1.5, Coalesce(0, nil, &a))
	assert.Equal(t, 9.0, Coalesce(9.0, nil, nil))
}
