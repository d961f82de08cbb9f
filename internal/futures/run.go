package futures

import (
	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"
)

// Run executes fn exactly once across the lifetime of an invocation:
// on replay, its recorded result is returned directly without calling
// fn again; while Processing, fn runs immediately and its outcome is
// journaled as an already-resolved RunEntryMessage (spec.md §4.B point
// 5, "Run (side effects) ... resolved synchronously by the handler").
//
// Unlike the other syscall futures, Run never has a pending state: the
// journal either already has its result (replay) or the caller
// produces one on the spot (processing), so there is no waker and no
// blocking wait.
func Run(m Machine, fn func() ([]byte, error)) ([]byte, error) {
	j := m.Journal()

	if j.IsReplaying() {
		result, _, _ := j.HandleUserCodeEntry(&wire.RunEntryMessage{}, nil)
		msg := result.(*wire.RunEntryMessage)
		if msg.Failure != nil {
			return nil, errorsx.FromFailure(msg.Failure, false)
		}
		return msg.Value, nil
	}

	value, err := fn()
	var entry *wire.RunEntryMessage
	if err != nil {
		entry = &wire.RunEntryMessage{RunEntryMessage: protocol.RunEntryMessage{Failure: errorsx.ToFailure(err)}}
	} else {
		entry = &wire.RunEntryMessage{RunEntryMessage: protocol.RunEntryMessage{Value: value}}
	}

	index, _, mustEmit := j.HandleUserCodeEntry(entry, nil)
	if mustEmit {
		m.EmitEntry(index, entry)
	}
	return value, err
}
