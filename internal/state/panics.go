package state

import (
	"fmt"

	"github.com/restatedev/sdk-go/internal/wire"
)

// entryMismatch signals a handler-determinism violation: the entry the
// handler tried to emit at an index does not match what the replay
// prefix already recorded there. Recovered once, at the top of
// Machine.invoke (spec.md §7 item 3).
type entryMismatch struct {
	entryIndex    uint32
	expectedEntry wire.Message
	actualEntry   wire.Message
}

func (m *Machine) newEntryMismatch(index uint32, expected, actual wire.Message) *entryMismatch {
	return &entryMismatch{entryIndex: index, expectedEntry: expected, actualEntry: actual}
}

func (e *entryMismatch) Error() string {
	return fmt.Sprintf("entry mismatch at index %d: expected %T, got %T", e.entryIndex, e.expectedEntry, e.actualEntry)
}

// writeError wraps a failure writing an entry to the wire, fatal for
// the invocation (spec.md §7 item 6).
type writeError struct {
	entryIndex uint32
	entry      wire.Message
	err        error
}

func (e *writeError) Error() string { return fmt.Sprintf("writing entry %d: %v", e.entryIndex, e.err) }
func (e *writeError) Unwrap() error { return e.err }

// sideEffectFailure wraps an error returned by a Run closure that the
// handler did not mark terminal, which Restate treats as a protocol
// error (the closure itself, not user business logic, failed).
type sideEffectFailure struct {
	entryIndex uint32
	err        error
}

func (e *sideEffectFailure) Error() string {
	return fmt.Sprintf("side effect at index %d failed: %v", e.entryIndex, e.err)
}
func (e *sideEffectFailure) Unwrap() error { return e.err }
