package state

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	restate "github.com/restatedev/sdk-go"
	intrand "github.com/restatedev/sdk-go/internal/rand"
	"github.com/restatedev/sdk-go/internal/ioenc"
)

// Context is the sole concrete implementation of restate.Context,
// restate.ObjectContext, restate.ObjectSharedContext,
// restate.WorkflowContext and restate.WorkflowSharedContext: every
// handler kind receives the same value, and Handler wrappers in the
// root package type-assert it down to the interface their typed
// function expects (spec.md's Handler module).
type Context struct {
	context.Context
	machine *Machine
}

var (
	_ restate.Context               = (*Context)(nil)
	_ restate.ObjectContext         = (*Context)(nil)
	_ restate.ObjectSharedContext   = (*Context)(nil)
	_ restate.WorkflowContext       = (*Context)(nil)
	_ restate.WorkflowSharedContext = (*Context)(nil)
)

// newContext wraps inner (the invocation's lifetime context, cancelled
// when the transport connection is cancelled, but NOT when the
// invocation merely suspends) together with machine.
func newContext(inner context.Context, machine *Machine) *Context {
	return &Context{Context: inner, machine: machine}
}

func (c *Context) Key() string { return c.machine.journal.Invocation().Key }

func (c *Context) Headers() map[string]string { return c.machine.journal.Invocation().Headers }

func (c *Context) Get(key string) ([]byte, bool, error) { return c.machine.get(key) }

func (c *Context) Set(key string, value any, opts ...restate.SetOption) error {
	raw, err := encodeSet(value, opts)
	if err != nil {
		return err
	}
	c.machine.set(key, raw)
	return nil
}

func (c *Context) Clear(key string) { c.machine.clear(key) }
func (c *Context) ClearAll()        { c.machine.clearAll() }
func (c *Context) Keys() ([]string, error) { return c.machine.keys() }

func (c *Context) Sleep(d time.Duration) error { return c.machine.sleep(d) }
func (c *Context) After(d time.Duration) restate.After { return c.machine.after(d) }

func (c *Context) Service(service string) restate.ServiceClient {
	return &serviceProxy{machine: c.machine, service: service}
}

func (c *Context) ServiceSend(service string, delay time.Duration) restate.ServiceSendClient {
	return &serviceSendProxy{machine: c.machine, service: service, delay: delay}
}

func (c *Context) Object(service, key string) restate.ServiceClient {
	return &serviceProxy{machine: c.machine, service: service, key: key}
}

func (c *Context) ObjectSend(service, key string, delay time.Duration) restate.ServiceSendClient {
	return &serviceSendProxy{machine: c.machine, service: service, key: key, delay: delay}
}

func (c *Context) Run(fn func() ([]byte, error)) ([]byte, error) { return c.machine.run(fn) }

func (c *Context) Awakeable() restate.Awakeable[[]byte] { return c.machine.awakeable() }
func (c *Context) ResolveAwakeable(id string, value []byte) { c.machine.resolveAwakeable(id, value) }
func (c *Context) RejectAwakeable(id string, reason error)  { c.machine.rejectAwakeable(id, reason) }

func (c *Context) Promise(name string) restate.DurablePromise[[]byte] { return c.machine.promise(name) }

func (c *Context) Select(futs ...restate.Selectable) restate.Selector {
	return c.machine.selector(futs)
}

func (c *Context) Timeout(target restate.Selectable, d time.Duration) (restate.Selectable, error) {
	return c.machine.timeout(target, d)
}

func (c *Context) Rand() restate.Rand { return randAdapter{c.machine.rnd} }

func (c *Context) Log() restate.Logger { return c.machine.logger() }

func encodeSet(value any, opts []restate.SetOption) ([]byte, error) {
	return ioenc.Apply(opts).Codec.Marshal(value)
}

// randAdapter adapts *internal/rand.Rand's concrete Source() return
// type to restate.Rand's interface-typed one (math/rand.Source64),
// since Go matches interface methods by exact signature.
type randAdapter struct{ inner *intrand.Rand }

func (r randAdapter) UUID() uuid.UUID   { return r.inner.UUID() }
func (r randAdapter) Float64() float64  { return r.inner.Float64() }
func (r randAdapter) Uint64() uint64    { return r.inner.Uint64() }
func (r randAdapter) Source() rand.Source64 { return r.inner.Source() }
