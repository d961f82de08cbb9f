// Package ioenc holds the value codec shared by the root package's
// generic Get/Set helpers and internal/state's Context implementation,
// so that encoding lives in one place reachable from both sides of the
// package boundary (the root package may not import internal/state,
// and internal/state already imports the root package for its
// interface types).
package ioenc

import "encoding/json"

// Codec converts between a Go value and wire bytes.
type Codec struct {
	Marshal   func(v any) ([]byte, error)
	Unmarshal func(data []byte, v any) error
}

// JSON is the default codec, matching the discovery manifest's
// declared "application/json" content type.
var JSON = Codec{Marshal: json.Marshal, Unmarshal: json.Unmarshal}

// Binary passes []byte values through untouched, falling back to JSON
// for any other type so WithBinary is still usable on typed wrappers
// around raw payloads.
var Binary = Codec{
	Marshal: func(v any) ([]byte, error) {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
		return json.Marshal(v)
	},
	Unmarshal: func(data []byte, v any) error {
		if p, ok := v.(*[]byte); ok {
			*p = data
			return nil
		}
		return json.Unmarshal(data, v)
	},
}

// Options accumulates per-call codec selection.
type Options struct {
	Codec Codec
}

// Option configures a single Get/Set call; shared between GetOption
// and SetOption in the root package since both merely pick a codec.
type Option func(*Options)

// Apply folds opts over the JSON-default Options.
func Apply(opts []Option) Options {
	o := Options{Codec: JSON}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBinary is the shared implementation behind restate.WithBinary.
func WithBinary(o *Options) { o.Codec = Binary }
