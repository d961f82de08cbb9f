package futures

import (
	"time"

	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"
)

// ResponseFuture is the blocking future backing a synchronous service
// call (spec.md §4.A Call entry, §4.F).
type ResponseFuture struct{ *base }

// NewCall constructs and starts a synchronous call to service/handler,
// keyed by key for VirtualObject/Workflow targets (empty for Service).
func NewCall(m Machine, service, handler, key string, parameter []byte) *ResponseFuture {
	entry := &wire.CallEntryMessage{CallEntryMessage: protocol.CallEntryMessage{
		ServiceName: service,
		HandlerName: handler,
		Key:         key,
		Parameter:   parameter,
	}}
	return &ResponseFuture{start(m, entry)}
}

// Response blocks until the callee's response or failure arrives.
func (f *ResponseFuture) Response() ([]byte, error) {
	msg := f.await().(*wire.CallEntryMessage)
	if msg.Failure != nil {
		return nil, errorsx.FromFailure(msg.Failure, false)
	}
	return msg.Value, nil
}

// Send emits a fire-and-forget call to service/handler, optionally
// delayed until delay has elapsed (spec.md §4.A OneWayCall entry).
// invokeTimeMillis is 0 for an undelayed send.
func Send(m Machine, service, handler, key string, parameter []byte, delay time.Duration, invokeTimeMillis uint64) {
	entry := &wire.OneWayCallEntryMessage{OneWayCallEntryMessage: protocol.OneWayCallEntryMessage{
		ServiceName: service,
		HandlerName: handler,
		Key:         key,
		Parameter:   parameter,
		InvokeTime:  invokeTimeMillis,
	}}
	emitFireAndForget(m, entry)
}
