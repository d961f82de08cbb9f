package restate

import "github.com/restatedev/sdk-go/internal/ioenc"

// durablePromise adapts internal/futures' Get/Peek/Complete promise
// futures into the public, typed DurablePromise[T].
type durablePromise[T any] struct {
	get      func() ([]byte, error)
	peek     func() ([]byte, bool, error)
	resolve  func(raw []byte) error
	reject   func(err error) error
	opts     []GetOption
	setCodec ioenc.Codec
}

// NewDurablePromiseAdapter is called by internal/state to build the
// public DurablePromise[T] returned from Context.Promise(name).
func NewDurablePromiseAdapter[T any](
	get func() ([]byte, error),
	peek func() ([]byte, bool, error),
	resolve func(raw []byte) error,
	reject func(err error) error,
	opts ...GetOption,
) DurablePromise[T] {
	return &durablePromise[T]{get: get, peek: peek, resolve: resolve, reject: reject, opts: opts, setCodec: ioenc.Apply(nil).Codec}
}

func (p *durablePromise[T]) Get() (T, error) {
	var zero T
	raw, err := p.get()
	if err != nil {
		return zero, err
	}
	return p.decode(raw)
}

func (p *durablePromise[T]) Peek() (value T, ok bool, err error) {
	var zero T
	raw, found, err := p.peek()
	if err != nil || !found {
		return zero, found, err
	}
	v, err := p.decode(raw)
	return v, true, err
}

func (p *durablePromise[T]) Resolve(value T) error {
	raw, err := ioenc.Apply(p.opts).Codec.Marshal(value)
	if err != nil {
		return err
	}
	return p.resolve(raw)
}

func (p *durablePromise[T]) Reject(reason error) error {
	return p.reject(reason)
}

func (p *durablePromise[T]) decode(raw []byte) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := ioenc.Apply(p.opts).Codec.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
