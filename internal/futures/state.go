package futures

import (
	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"
)

// GetState is the blocking future backing Context.Get: it resolves to
// the raw bytes stored under key, and whether any value was found
// (spec.md §4.C/§4.F).
type GetState struct{ *base }

// NewGetState constructs and starts a GetState future, reserving its
// journal entry immediately.
func NewGetState(m Machine, key string) *GetState {
	entry := &wire.GetStateEntryMessage{GetStateEntryMessage: protocol.GetStateEntryMessage{Key: []byte(key)}}
	return &GetState{start(m, entry)}
}

// Await blocks until the GetState entry resolves.
func (f *GetState) Await() (value []byte, ok bool, err error) {
	msg := f.await().(*wire.GetStateEntryMessage)
	if msg.Failure != nil {
		return nil, false, errorsx.FromFailure(msg.Failure, false)
	}
	if msg.HasZero {
		return nil, false, nil
	}
	return msg.Value, true, nil
}

// GetStateKeys is the blocking future backing Context.Keys.
type GetStateKeys struct{ *base }

func NewGetStateKeys(m Machine) *GetStateKeys {
	entry := &wire.GetStateKeysEntryMessage{}
	return &GetStateKeys{start(m, entry)}
}

func (f *GetStateKeys) Await() ([]string, error) {
	msg := f.await().(*wire.GetStateKeysEntryMessage)
	if msg.Failure != nil {
		return nil, errorsx.FromFailure(msg.Failure, false)
	}
	if msg.Value == nil {
		return nil, nil
	}
	keys := make([]string, len(msg.Value.Keys))
	for i, k := range msg.Value.Keys {
		keys[i] = string(k)
	}
	return keys, nil
}
