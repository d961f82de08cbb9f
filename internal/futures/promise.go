package futures

import (
	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"
)

// GetPromise is the blocking future backing Context.Promise(name).Get():
// it blocks until the named durable promise is resolved or rejected by
// any invocation sharing the workflow key (spec.md §4 supplement
// "Durable Promises").
type GetPromise struct{ *base }

func NewGetPromise(m Machine, key string) *GetPromise {
	entry := &wire.GetPromiseEntryMessage{GetPromiseEntryMessage: protocol.GetPromiseEntryMessage{Key: key}}
	return &GetPromise{start(m, entry)}
}

func (f *GetPromise) Await() ([]byte, error) {
	msg := f.await().(*wire.GetPromiseEntryMessage)
	if msg.Failure != nil {
		return nil, errorsx.FromFailure(msg.Failure, true)
	}
	return msg.Value, nil
}

// PeekPromise is the blocking future backing Context.Promise(name).Peek():
// like GetPromise but resolves immediately to (nil, false) if the
// promise has not yet been completed, rather than blocking.
type PeekPromise struct{ *base }

func NewPeekPromise(m Machine, key string) *PeekPromise {
	entry := &wire.PeekPromiseEntryMessage{PeekPromiseEntryMessage: protocol.PeekPromiseEntryMessage{Key: key}}
	return &PeekPromise{start(m, entry)}
}

func (f *PeekPromise) Await() (value []byte, ok bool, err error) {
	msg := f.await().(*wire.PeekPromiseEntryMessage)
	if msg.Failure != nil {
		return nil, false, errorsx.FromFailure(msg.Failure, true)
	}
	if msg.HasZero {
		return nil, false, nil
	}
	return msg.Value, true, nil
}

// CompletePromise is the blocking future backing
// Context.Promise(name).Resolve()/Reject(): it blocks until the
// platform has durably recorded the completion, returning an error
// only if the promise was already completed by someone else.
type CompletePromise struct{ *base }

// NewCompletePromise constructs a CompletePromise that resolves the
// promise to value, or rejects it with failure if failure != nil
// (exactly one of value/failure is meaningful).
func NewCompletePromise(m Machine, key string, value []byte, failure *protocol.Failure) *CompletePromise {
	entry := &wire.CompletePromiseEntryMessage{CompletePromiseEntryMessage: protocol.CompletePromiseEntryMessage{
		Key:             key,
		CompletionValue: value,
		CompletionError: failure,
	}}
	return &CompletePromise{start(m, entry)}
}

func (f *CompletePromise) Await() error {
	msg := f.await().(*wire.CompletePromiseEntryMessage)
	if msg.Failure != nil {
		return errorsx.FromFailure(msg.Failure, true)
	}
	return nil
}
