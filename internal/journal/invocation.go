// Package journal implements spec.md §4.B (the Journal) and §4.C (the
// Local State Store): the replay prefix, the pending-entry table, and
// the invocation-scoped state shadow that sit beneath the state
// machine.
package journal

import (
	"github.com/restatedev/sdk-go/internal/wire"
)

// Invocation is immutable after construction (spec.md §3): it is the
// output of the Invocation Builder (internal/state.Builder) and the
// input to New.
type Invocation struct {
	// ID is the opaque invocation identifier assigned by the platform.
	ID []byte
	// DebugID is a human-readable rendering of ID for logs.
	DebugID string
	// Key is the routing key for keyed (VirtualObject/Workflow)
	// invocations; empty for stateless Services.
	Key string
	// KnownEntries is the count of journaled entries the platform
	// already holds for this invocation, including the Input entry.
	KnownEntries uint32
	// ReplayEntries holds the replay prefix, indexed by entry index;
	// index 0 is always the Input entry.
	ReplayEntries map[uint32]wire.Message
	// Input is the payload carried by the Input entry.
	Input []byte
	// Headers are the request headers carried by the Input entry.
	Headers map[string]string
	// InitialState is the state snapshot carried on the Start message.
	InitialState map[string][]byte
	// PartialState reports whether InitialState is a complete shadow
	// of platform state, or merely the keys the platform chose to
	// prefetch.
	PartialState bool
}
