package restate

import (
	"github.com/restatedev/sdk-go/internal/futures"
	"github.com/restatedev/sdk-go/internal/ioenc"
)

// awakeable adapts an internal/futures.Awakeable into the public,
// typed Awakeable[T] by decoding its raw result with the JSON codec
// (or WithBinary's raw passthrough). It embeds *futures.Awakeable
// (rather than merely holding it) so that the unexported ready/wake
// methods futures.Selectable requires are promoted onto this type: an
// interface's unexported methods can only be satisfied by types in the
// interface's own package, and promotion through embedding is the only
// way a different package's type can pick them up.
type awakeable[T any] struct {
	*futures.Awakeable
	id   string
	opts []GetOption
}

// NewAwakeableAdapter is called by internal/state to build the public
// Awakeable[T] returned from Context.Awakeable(): id is the
// externally-visible identifier (base58-rendered by internal/state)
// and f the underlying blocking future.
func NewAwakeableAdapter[T any](f *futures.Awakeable, id string, opts ...GetOption) Awakeable[T] {
	return &awakeable[T]{Awakeable: f, id: id, opts: opts}
}

func (a *awakeable[T]) Id() string { return a.id }

func (a *awakeable[T]) Result() (T, error) {
	var zero T
	raw, err := a.Awakeable.Await()
	if err != nil {
		return zero, err
	}
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := ioenc.Apply(a.opts).Codec.Unmarshal(raw, &v); err != nil {
		return zero, err
	}
	return v, nil
}
