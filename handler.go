package restate

import "github.com/restatedev/sdk-go/internal/ioenc"

// Handler is the type-erased form every typed handler function is
// wrapped into before being dispatched by the state machine
// (spec.md's Endpoint/Dispatch module).
type Handler interface {
	Call(ctx Context, input []byte) ([]byte, error)
}

func decode[I any](data []byte, codec ioenc.Codec) (I, error) {
	var v I
	if len(data) == 0 {
		return v, nil
	}
	if err := codec.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

type serviceHandler[I, O any] struct {
	fn    func(Context, I) (O, error)
	codec ioenc.Codec
}

// NewServiceHandler wraps a Service handler function.
func NewServiceHandler[I, O any](fn func(Context, I) (O, error), opts ...SetOption) Handler {
	return &serviceHandler[I, O]{fn: fn, codec: ioenc.Apply(opts).Codec}
}

func (h *serviceHandler[I, O]) Call(ctx Context, input []byte) ([]byte, error) {
	in, err := decode[I](input, h.codec)
	if err != nil {
		return nil, TerminalError(err)
	}
	out, err := h.fn(ctx, in)
	if err != nil {
		return nil, err
	}
	return h.codec.Marshal(out)
}

type objectHandler[I, O any] struct {
	fn    func(ObjectContext, I) (O, error)
	codec ioenc.Codec
}

// NewObjectHandler wraps a VirtualObject exclusive handler function.
func NewObjectHandler[I, O any](fn func(ObjectContext, I) (O, error), opts ...SetOption) Handler {
	return &objectHandler[I, O]{fn: fn, codec: ioenc.Apply(opts).Codec}
}

func (h *objectHandler[I, O]) Call(ctx Context, input []byte) ([]byte, error) {
	oc, ok := ctx.(ObjectContext)
	if !ok {
		return nil, TerminalError(errNotKeyed)
	}
	in, err := decode[I](input, h.codec)
	if err != nil {
		return nil, TerminalError(err)
	}
	out, err := h.fn(oc, in)
	if err != nil {
		return nil, err
	}
	return h.codec.Marshal(out)
}

type objectSharedHandler[I, O any] struct {
	fn    func(ObjectSharedContext, I) (O, error)
	codec ioenc.Codec
}

// NewObjectSharedHandler wraps a VirtualObject shared handler function.
func NewObjectSharedHandler[I, O any](fn func(ObjectSharedContext, I) (O, error), opts ...SetOption) Handler {
	return &objectSharedHandler[I, O]{fn: fn, codec: ioenc.Apply(opts).Codec}
}

// Shared marks this handler as callable concurrently with other
// shared handlers on the same object key (spec.md Endpoint/Dispatch
// module), read by ServiceDefinition.Handler to classify the handler
// without a separate registration method.
func (h *objectSharedHandler[I, O]) Shared() bool { return true }

func (h *objectSharedHandler[I, O]) Call(ctx Context, input []byte) ([]byte, error) {
	oc, ok := ctx.(ObjectSharedContext)
	if !ok {
		return nil, TerminalError(errNotKeyed)
	}
	in, err := decode[I](input, h.codec)
	if err != nil {
		return nil, TerminalError(err)
	}
	out, err := h.fn(oc, in)
	if err != nil {
		return nil, err
	}
	return h.codec.Marshal(out)
}

type workflowHandler[I, O any] struct {
	fn    func(WorkflowContext, I) (O, error)
	codec ioenc.Codec
}

// NewWorkflowHandler wraps a Workflow's run handler function.
func NewWorkflowHandler[I, O any](fn func(WorkflowContext, I) (O, error), opts ...SetOption) Handler {
	return &workflowHandler[I, O]{fn: fn, codec: ioenc.Apply(opts).Codec}
}

func (h *workflowHandler[I, O]) Call(ctx Context, input []byte) ([]byte, error) {
	wc, ok := ctx.(WorkflowContext)
	if !ok {
		return nil, TerminalError(errNotKeyed)
	}
	in, err := decode[I](input, h.codec)
	if err != nil {
		return nil, TerminalError(err)
	}
	out, err := h.fn(wc, in)
	if err != nil {
		return nil, err
	}
	return h.codec.Marshal(out)
}

type workflowSharedHandler[I, O any] struct {
	fn    func(WorkflowSharedContext, I) (O, error)
	codec ioenc.Codec
}

// NewWorkflowSharedHandler wraps a Workflow shared handler function.
func NewWorkflowSharedHandler[I, O any](fn func(WorkflowSharedContext, I) (O, error), opts ...SetOption) Handler {
	return &workflowSharedHandler[I, O]{fn: fn, codec: ioenc.Apply(opts).Codec}
}

// Shared marks this handler as callable concurrently, see
// objectSharedHandler.Shared.
func (h *workflowSharedHandler[I, O]) Shared() bool { return true }

func (h *workflowSharedHandler[I, O]) Call(ctx Context, input []byte) ([]byte, error) {
	wc, ok := ctx.(WorkflowSharedContext)
	if !ok {
		return nil, TerminalError(errNotKeyed)
	}
	in, err := decode[I](input, h.codec)
	if err != nil {
		return nil, TerminalError(err)
	}
	out, err := h.fn(wc, in)
	if err != nil {
		return nil, err
	}
	return h.codec.Marshal(out)
}
