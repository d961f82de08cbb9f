package restate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalErrorRoundTrip(t *testing.T) {
	err := TerminalError(errors.New("nope"), 422)
	assert.True(t, IsTerminalError(err))
	assert.Equal(t, uint32(422), ErrorCode(err))
	assert.Equal(t, "nope", err.Error())
}

func TestTerminalErrorDefaultsCode(t *testing.T) {
	err := TerminalError(errors.New("nope"))
	assert.Equal(t, uint32(500), ErrorCode(err))
}

func TestTerminalErrorNilIsNil(t *testing.T) {
	assert.Nil(t, TerminalError(nil))
}

func TestErrorCodeDefaultsForPlainError(t *testing.T) {
	assert.Equal(t, uint32(500), ErrorCode(errors.New("plain")))
}

func TestIsTimeoutErrorDistinguishesFromOtherNonTerminalErrors(t *testing.T) {
	assert.False(t, IsTimeoutError(errors.New("plain")))
	assert.False(t, IsTimeoutError(TerminalError(errors.New("x"), 408)))
}
