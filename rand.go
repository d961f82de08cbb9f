package restate

import (
	"math/rand"

	"github.com/google/uuid"
)

// Rand is the invocation-deterministic random source backing
// Context.Rand(): every call replays to the same sequence of values
// given the same invocation id, so a handler may use it freely
// without breaking determinism across replay.
type Rand interface {
	UUID() uuid.UUID
	Float64() float64
	Uint64() uint64
	// Source exposes the underlying math/rand.Source64, for passing to
	// math/rand.New when a handler wants other distributions.
	Source() rand.Source64
}
