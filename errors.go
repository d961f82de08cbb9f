package restate

import (
	"errors"

	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/futures"
)

// ErrKeyNotFound is returned by GetAs when the requested state key has
// no value, mirroring the teacher SDK's sentinel for a missing key
// rather than an empty one.
var ErrKeyNotFound = errors.New("restate: key not found")

// TerminalError marks err as terminal: the invocation ends with this
// error recorded as its Output rather than being retried by the
// platform. code defaults to 500 when omitted.
func TerminalError(err error, code ...uint32) error {
	if err == nil {
		return nil
	}
	c := uint32(errorsx.DefaultErrorCode)
	if len(code) > 0 {
		c = code[0]
	}
	return errorsx.Terminal(c, err.Error())
}

// IsTerminalError reports whether err was constructed with TerminalError.
func IsTerminalError(err error) bool {
	return errorsx.IsTerminal(err)
}

// ErrorCode extracts the protocol error code carried by err, defaulting
// to 500 for an error that never passed through TerminalError.
func ErrorCode(err error) uint32 {
	var e *errorsx.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return errorsx.DefaultErrorCode
}

// IsTimeoutError reports whether err was produced by Context.Timeout's
// deadline winning the race.
func IsTimeoutError(err error) bool {
	var e *errorsx.Error
	return errors.As(err, &e) && e.Code == futures.ErrTimeoutCode && !e.Terminal
}

// Void is used in place of an empty request or response type.
type Void struct{}

var errNotKeyed = errors.New("restate: handler requires a keyed (VirtualObject or Workflow) context")
