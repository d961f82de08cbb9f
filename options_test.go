package restate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGetContext is the minimal Context needed to exercise GetAs: only
// Get is called, everything else panics if touched.
type fakeGetContext struct {
	Context
	values map[string][]byte
}

func (f fakeGetContext) Get(key string) ([]byte, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func TestGetAsDecodesJSONByDefault(t *testing.T) {
	ctx := fakeGetContext{values: map[string][]byte{"k": []byte(`"hello"`)}}
	v, err := GetAs[string](ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestGetAsReturnsKeyNotFound(t *testing.T) {
	ctx := fakeGetContext{values: map[string][]byte{}}
	_, err := GetAs[string](ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGetAsWithBinaryPassesBytesThrough(t *testing.T) {
	ctx := fakeGetContext{values: map[string][]byte{"k": []byte{1, 2, 3}}}
	v, err := GetAs[[]byte](ctx, "k", WithBinary)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v)
}

func TestGetAsPropagatesGetError(t *testing.T) {
	ctx := erroringGetContext{err: errors.New("boom")}
	_, err := GetAs[string](ctx, "k")
	assert.ErrorIs(t, err, ctx.err)
}

type erroringGetContext struct {
	Context
	err error
}

func (e erroringGetContext) Get(string) ([]byte, bool, error) { return nil, false, e.err }
