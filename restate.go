// Package restate is the durable-execution SDK for writing Restate
// services, virtual objects and workflows in Go: a handler is an
// ordinary function over a Context, and every call it makes against
// that Context is journaled so the platform can replay it exactly
// after a crash or suspension.
package restate

import (
	"context"
	"time"

	"github.com/restatedev/sdk-go/internal/ioenc"
)

// Context is offered to every Service handler. VirtualObject and
// Workflow handlers embed it in a wider interface carrying the
// invocation's key.
type Context interface {
	context.Context

	// Headers returns the request headers carried by the invocation's
	// Input entry.
	Headers() map[string]string

	// Get fetches the raw bytes stored under key, reporting whether any
	// value was present.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, encoding it with the JSON codec
	// unless WithBinary is given.
	Set(key string, value any, opts ...SetOption) error
	// Clear removes key.
	Clear(key string)
	// ClearAll removes every key.
	ClearAll()
	// Keys lists every key currently stored.
	Keys() ([]string, error)

	// Sleep blocks the handler for d, durably: on replay the original
	// wake time is reused rather than sleeping again.
	Sleep(d time.Duration) error
	// After returns a Selectable timer for use inside Select, instead
	// of blocking immediately the way Sleep does.
	After(d time.Duration) After

	// Service addresses a stateless service by name for a synchronous
	// call.
	Service(service string) ServiceClient
	// ServiceSend addresses a stateless service by name for a
	// fire-and-forget call, optionally delayed.
	ServiceSend(service string, delay time.Duration) ServiceSendClient
	// Object addresses one keyed instance of a virtual object for a
	// synchronous call.
	Object(service, key string) ServiceClient
	// ObjectSend addresses one keyed instance of a virtual object for a
	// fire-and-forget call, optionally delayed.
	ObjectSend(service, key string, delay time.Duration) ServiceSendClient

	// Run executes fn exactly once across the invocation's lifetime,
	// journaling its result so replay returns it directly instead of
	// running fn again.
	Run(fn func() ([]byte, error)) ([]byte, error)

	// Awakeable creates an externally-resolvable one-shot value.
	Awakeable() Awakeable[[]byte]
	// ResolveAwakeable completes another handler's awakeable by id.
	ResolveAwakeable(id string, value []byte)
	// RejectAwakeable fails another handler's awakeable by id.
	RejectAwakeable(id string, reason error)

	// Promise addresses a durable promise shared by every invocation
	// with the same workflow key (spec.md's Durable Promises supplement).
	Promise(name string) DurablePromise[[]byte]

	// Select returns a Selector over futs without blocking; each call
	// to the Selector's Select then blocks until one of the remaining
	// futures has resolved and returns it.
	Select(futs ...Selectable) Selector

	// Timeout races target against a d-long deadline, returning target
	// if it won or an IsTimeoutError error if the deadline did.
	Timeout(target Selectable, d time.Duration) (Selectable, error)

	// Rand returns the invocation's deterministic random source: safe
	// to call from replay, since it is seeded from the invocation id
	// rather than the system clock.
	Rand() Rand

	// Log returns a structured logger whose output is suppressed while
	// this invocation is replaying, so replayed handlers don't re-emit
	// logs for work that already happened.
	Log() Logger
}

// ObjectSharedContext is offered to a VirtualObject's shared (read-only
// concurrent) handlers: it carries the object's key but may not
// mutate state.
type ObjectSharedContext interface {
	context.Context

	Key() string
	Headers() map[string]string
	Get(key string) (value []byte, ok bool, err error)
	Keys() ([]string, error)

	Sleep(d time.Duration) error
	After(d time.Duration) After

	Service(service string) ServiceClient
	ServiceSend(service string, delay time.Duration) ServiceSendClient
	Object(service, key string) ServiceClient
	ObjectSend(service, key string, delay time.Duration) ServiceSendClient

	Run(fn func() ([]byte, error)) ([]byte, error)

	Awakeable() Awakeable[[]byte]
	ResolveAwakeable(id string, value []byte)
	RejectAwakeable(id string, reason error)

	Promise(name string) DurablePromise[[]byte]

	Select(futs ...Selectable) Selector
	Timeout(target Selectable, d time.Duration) (Selectable, error)
	Rand() Rand
	Log() Logger
}

// ObjectContext is offered to a VirtualObject's exclusive handlers: it
// is Context plus the object's key.
type ObjectContext interface {
	Context
	Key() string
}

// WorkflowContext is offered to a Workflow's run handler: Context plus
// the workflow's key, as carried on the invocation's Start message.
type WorkflowContext interface {
	Context
	Key() string
}

// WorkflowSharedContext is offered to a Workflow's shared handlers: the
// same restricted surface as ObjectSharedContext.
type WorkflowSharedContext interface {
	ObjectSharedContext
}

// RunContext is offered to the closure passed to Run/RunAs: a plain
// context plus the replay-aware logger, without journal access (a side
// effect must not itself make further durable calls).
type RunContext interface {
	context.Context
	Log() Logger
}

// RunAs executes fn exactly once for the lifetime of the invocation,
// decoding its recorded result with the JSON codec (or WithBinary's
// raw bytes, for T = []byte).
func RunAs[T any](ctx Context, fn func(RunContext) (T, error), opts ...SetOption) (T, error) {
	var zero T
	o := ioenc.Apply(opts)
	raw, err := ctx.Run(func() ([]byte, error) {
		v, err := fn(runContext{ctx})
		if err != nil {
			return nil, err
		}
		return o.Codec.Marshal(v)
	})
	if err != nil {
		return zero, err
	}
	var v T
	if err := o.Codec.Unmarshal(raw, &v); err != nil {
		return zero, err
	}
	return v, nil
}

type runContext struct{ Context }

func (r runContext) Log() Logger { return r.Context.Log() }

// Selectable is any durable future that can be raced inside Select.
type Selectable interface {
	// EntryIndex is the journal entry index this future reserved.
	EntryIndex() uint32
}

// Selector yields a set of racing Selectables one at a time: a future
// that resolves while Select waits is returned by that call, and among
// futures already resolved when Select is called, the one listed first
// is returned first.
type Selector interface {
	// Remaining reports how many futures have not yet been returned.
	Remaining() int
	// Select blocks until the next future resolves and returns it.
	Select() Selectable
}

// After is the Selectable form of Sleep, for racing a deadline against
// other durable futures.
type After interface {
	Selectable
	// Done blocks until the deadline elapses.
	Done() error
}

// ServiceClient addresses a target service/object for a synchronous call.
type ServiceClient interface {
	Method(name string) CallClient
}

// ServiceSendClient addresses a target service/object for a
// fire-and-forget call.
type ServiceSendClient interface {
	Method(name string) SendClient
}

// CallClient issues a synchronous call once Request is given its input.
type CallClient interface {
	Request(input any) ResponseFuture
}

// SendClient issues a fire-and-forget call once Request is given its input.
type SendClient interface {
	Request(input any) error
}

// ResponseFuture is the Selectable result of a synchronous call.
type ResponseFuture interface {
	Selectable
	// Response blocks until the callee responds, decoding the result
	// into output.
	Response(output any) error
}

// Awakeable is an externally-resolvable one-shot value.
type Awakeable[T any] interface {
	Selectable
	// Id is handed out to whoever will resolve this awakeable.
	Id() string
	// Result blocks until the awakeable is resolved or rejected.
	Result() (T, error)
}

// DurablePromise is a named, durably-stored value shared by every
// invocation of one workflow, resolved at most once (spec.md's
// Durable Promises supplement).
type DurablePromise[T any] interface {
	// Get blocks until the promise is resolved or rejected.
	Get() (T, error)
	// Peek returns the promise's value without blocking if it has
	// already been resolved or rejected.
	Peek() (value T, ok bool, err error)
	// Resolve completes the promise with value, or returns an error if
	// it was already completed.
	Resolve(value T) error
	// Reject fails the promise with reason, or returns an error if it
	// was already completed.
	Reject(reason error) error
}
