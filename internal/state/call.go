package state

import (
	"encoding/json"
	"time"

	restate "github.com/restatedev/sdk-go"
	"github.com/restatedev/sdk-go/internal/futures"
)

var (
	_ restate.ServiceClient     = (*serviceProxy)(nil)
	_ restate.ServiceSendClient = (*serviceSendProxy)(nil)
	_ restate.CallClient        = (*serviceCall)(nil)
	_ restate.SendClient        = (*serviceSend)(nil)
)

type serviceProxy struct {
	machine *Machine
	service string
	key     string
}

func (c *serviceProxy) Method(fn string) restate.CallClient {
	return &serviceCall{machine: c.machine, service: c.service, key: c.key, method: fn}
}

type serviceSendProxy struct {
	machine *Machine
	service string
	key     string
	delay   time.Duration
}

func (c *serviceSendProxy) Method(fn string) restate.SendClient {
	return &serviceSend{machine: c.machine, service: c.service, key: c.key, method: fn, delay: c.delay}
}

type serviceCall struct {
	machine *Machine
	service string
	key     string
	method  string
}

func (c *serviceCall) Request(input any) restate.ResponseFuture {
	params, err := json.Marshal(input)
	if err != nil {
		return &failedResponseFuture{err: err}
	}
	f := futures.NewCall(c.machine, c.service, c.method, c.key, params)
	return &responseFutureAdapter{ResponseFuture: f}
}

// responseFutureAdapter embeds *futures.ResponseFuture (rather than
// merely holding it) so that the unexported ready/wake methods
// futures.Selectable requires are promoted onto this type: an
// interface's unexported methods can only be satisfied by types in the
// interface's own package, and promotion through embedding is the only
// way a different package's type can pick them up.
type responseFutureAdapter struct {
	*futures.ResponseFuture
}

func (r *responseFutureAdapter) Response(output any) error {
	raw, err := r.ResponseFuture.Response()
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, output)
}

type failedResponseFuture struct{ err error }

func (f *failedResponseFuture) EntryIndex() uint32 { return 0 }
func (f *failedResponseFuture) Response(any) error { return f.err }

type serviceSend struct {
	machine *Machine
	service string
	key     string
	method  string
	delay   time.Duration
}

func (c *serviceSend) Request(input any) error {
	params, err := json.Marshal(input)
	if err != nil {
		return err
	}
	var invokeTime uint64
	if c.delay != 0 {
		invokeTime = uint64(time.Now().Add(c.delay).UnixMilli())
	}
	futures.Send(c.machine, c.service, c.method, c.key, params, c.delay, invokeTime)
	return nil
}
