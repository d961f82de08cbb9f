package futures

import (
	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"
)

// Awakeable is the blocking future backing Context.Awakeable: an
// externally-resolvable one-shot value identified by an id the
// handler hands out to a third party, who later calls back in with
// CompleteAwakeable (spec.md §4.F).
type Awakeable struct{ *base }

func NewAwakeable(m Machine) *Awakeable {
	entry := &wire.AwakeableEntryMessage{}
	return &Awakeable{start(m, entry)}
}

func (f *Awakeable) Await() ([]byte, error) {
	msg := f.await().(*wire.AwakeableEntryMessage)
	if msg.Failure != nil {
		return nil, errorsx.FromFailure(msg.Failure, false)
	}
	return msg.Value, nil
}

// CompleteAwakeable resolves or rejects an awakeable by id. It is a
// fire-and-forget entry (no completion is ever sent back for it), so
// it bypasses the base blocking machinery entirely: the caller
// reserves its index and emits it directly.
func CompleteAwakeable(m Machine, id string, value []byte, failure *protocol.Failure) {
	entry := &wire.CompleteAwakeableEntryMessage{CompleteAwakeableEntryMessage: protocol.CompleteAwakeableEntryMessage{
		Id:              id,
		CompletionValue: value,
		CompletionError: failure,
	}}
	emitFireAndForget(m, entry)
}
