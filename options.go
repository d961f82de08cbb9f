package restate

import "github.com/restatedev/sdk-go/internal/ioenc"

// GetOption configures how GetAs decodes a stored value.
type GetOption = ioenc.Option

// SetOption configures how Set encodes a value before storing it.
type SetOption = ioenc.Option

// WithBinary treats the value as raw bytes rather than JSON, for both
// GetAs and Set call sites.
func WithBinary(o *ioenc.Options) { ioenc.WithBinary(o) }

// GetAs fetches and decodes the value stored under key, returning
// ErrKeyNotFound if it is absent.
func GetAs[T any](ctx Context, key string, opts ...GetOption) (T, error) {
	var zero T
	raw, ok, err := ctx.Get(key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrKeyNotFound
	}
	o := ioenc.Apply(opts)
	var v T
	if err := o.Codec.Unmarshal(raw, &v); err != nil {
		return zero, err
	}
	return v, nil
}
