package restate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestServiceHandlerDecodesAndEncodesJSON(t *testing.T) {
	h := NewServiceHandler(func(_ Context, in payload) (payload, error) {
		return payload{Name: in.Name + "!"}, nil
	})

	out, err := h.Call(nil, []byte(`{"name":"hi"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"hi!"}`, string(out))
}

func TestServiceHandlerWrapsDecodeErrorAsTerminal(t *testing.T) {
	h := NewServiceHandler(func(_ Context, in payload) (payload, error) {
		return in, nil
	})

	_, err := h.Call(nil, []byte(`not json`))
	require.Error(t, err)
	assert.True(t, IsTerminalError(err))
}

func TestServiceHandlerPropagatesHandlerError(t *testing.T) {
	h := NewServiceHandler(func(_ Context, _ payload) (payload, error) {
		return payload{}, TerminalError(assertError("denied"), 403)
	})

	_, err := h.Call(nil, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, IsTerminalError(err))
	assert.Equal(t, uint32(403), ErrorCode(err))
}

// nonKeyedContext embeds the Context interface unset, so it satisfies
// Context (every method panics if actually called) without satisfying
// ObjectContext/WorkflowContext/WorkflowSharedContext, none of which
// it implements Key() for.
type nonKeyedContext struct{ Context }

func TestObjectHandlerRejectsNonKeyedContext(t *testing.T) {
	h := NewObjectHandler(func(_ ObjectContext, in payload) (payload, error) { return in, nil })

	_, err := h.Call(nonKeyedContext{}, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, IsTerminalError(err))
}

func TestObjectSharedHandlerRejectsNonKeyedContext(t *testing.T) {
	h := NewObjectSharedHandler(func(_ ObjectSharedContext, in payload) (payload, error) { return in, nil })

	_, err := h.Call(nonKeyedContext{}, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, IsTerminalError(err))
}

func TestWorkflowHandlerRejectsNonKeyedContext(t *testing.T) {
	h := NewWorkflowHandler(func(_ WorkflowContext, in payload) (payload, error) { return in, nil })

	_, err := h.Call(nonKeyedContext{}, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, IsTerminalError(err))
}

func TestWorkflowSharedHandlerRejectsNonKeyedContext(t *testing.T) {
	h := NewWorkflowSharedHandler(func(_ WorkflowSharedContext, in payload) (payload, error) { return in, nil })

	_, err := h.Call(nonKeyedContext{}, []byte(`{}`))
	require.Error(t, err)
	assert.True(t, IsTerminalError(err))
}

// keyedContext satisfies ObjectContext/WorkflowContext/
// WorkflowSharedContext by adding Key() on top of an unset Context.
type keyedContext struct {
	Context
	key string
}

func (k keyedContext) Key() string { return k.key }

func TestObjectHandlerAcceptsKeyedContext(t *testing.T) {
	var gotKey string
	h := NewObjectHandler(func(oc ObjectContext, in payload) (payload, error) {
		gotKey = oc.Key()
		return in, nil
	})

	_, err := h.Call(keyedContext{key: "account-1"}, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "account-1", gotKey)
}

type assertError string

func (e assertError) Error() string { return string(e) }
