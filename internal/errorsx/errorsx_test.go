package errorsx

import (
	"errors"
	"testing"

	"github.com/restatedev/sdk-go/internal/generated/protocol"

	"github.com/stretchr/testify/assert"
)

func TestToFailureDefaultsCodeForPlainError(t *testing.T) {
	f := ToFailure(errors.New("boom"))
	assert.Equal(t, uint32(DefaultErrorCode), f.Code)
	assert.Equal(t, "boom", f.Message)
}

func TestToFailurePreservesExplicitCode(t *testing.T) {
	f := ToFailure(Terminal(404, "not found"))
	assert.Equal(t, uint32(404), f.Code)
	assert.Equal(t, "not found", f.Message)
}

func TestIsTerminalDistinguishesConstructors(t *testing.T) {
	assert.True(t, IsTerminal(Terminal(1, "x")))
	assert.False(t, IsTerminal(New(1, "x")))
	assert.False(t, IsTerminal(errors.New("plain")))
}

func TestFromFailureNilIsNil(t *testing.T) {
	assert.Nil(t, FromFailure(nil, true))
}

func TestFromFailureRoundTrip(t *testing.T) {
	f := &protocol.Failure{Code: 7, Message: "oops"}
	err := FromFailure(f, true)
	assert.Equal(t, uint32(7), err.Code)
	assert.Equal(t, "oops", err.Message)
	assert.True(t, err.Terminal)
}

func TestErrorUnwrapsViaErrorsAs(t *testing.T) {
	err := Terminal(9, "nope")
	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, uint32(9), e.Code)
}
