// Package errorsx carries the (code, message, terminal) error shape
// used across the wire protocol, the journal and the public API, so
// that internal/futures and internal/state can produce and consume
// terminal errors without importing the root package (which in turn
// imports them).
package errorsx

import (
	"errors"
	"fmt"

	"github.com/restatedev/sdk-go/internal/generated/protocol"
)

// DefaultErrorCode is used when a non-terminal Go error crosses into
// the protocol without an explicit code, mirroring the teacher SDK's
// treatment of arbitrary handler errors as retryable failures.
const DefaultErrorCode = 500

// Error is a protocol-level failure: Code/Message as carried on the
// wire, and Terminal recording whether the invocation may be retried.
// A non-terminal Error is reported to the platform as an Error
// message, and the platform retries the invocation from its journal;
// a terminal one produces
// an Output entry carrying the failure, ending the invocation for
// good (spec.md §4.D "Output").
type Error struct {
	Code     uint32
	Message  string
	Terminal bool
}

func (e *Error) Error() string { return e.Message }

// New constructs a non-terminal Error, the default for any error a
// handler returns without being explicit about terminality.
func New(code uint32, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Terminal constructs a terminal Error.
func Terminal(code uint32, message string) *Error {
	return &Error{Code: code, Message: message, Terminal: true}
}

// FromFailure converts a wire Failure into an Error.
func FromFailure(f *protocol.Failure, terminal bool) *Error {
	if f == nil {
		return nil
	}
	return &Error{Code: f.Code, Message: f.Message, Terminal: terminal}
}

// ToFailure converts any error into a wire Failure, defaulting the
// code to DefaultErrorCode when err is not an *Error.
func ToFailure(err error) *protocol.Failure {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &protocol.Failure{Code: e.Code, Message: e.Message}
	}
	return &protocol.Failure{Code: DefaultErrorCode, Message: err.Error()}
}

// IsTerminal reports whether err carries an explicit terminal marker.
func IsTerminal(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Terminal
}

// WrapDecode annotates a protobuf decode failure encountered while
// interpreting a completion or replay entry; always non-terminal,
// since a codec bug is the platform's problem to retry, not the
// handler's to diagnose.
func WrapDecode(what string, err error) error {
	return fmt.Errorf("errorsx: decoding %s: %w", what, err)
}
