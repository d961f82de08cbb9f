package restate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidNameGrammar(t *testing.T) {
	assert.True(t, ValidName("Checkout"))
	assert.True(t, ValidName("_private"))
	assert.True(t, ValidName("a1"))
	assert.False(t, ValidName("1leading"))
	assert.False(t, ValidName("has-dash"))
	assert.False(t, ValidName(""))
}

func TestServiceDefinitionHandlerKindInference(t *testing.T) {
	def := NewObject("Counter").
		Handler("add", NewObjectHandler(func(ObjectContext, Void) (Void, error) { return Void{}, nil })).
		Handler("get", NewObjectSharedHandler(func(ObjectSharedContext, Void) (Void, error) { return Void{}, nil }))

	handlers := def.Handlers()
	assert.Equal(t, HandlerExclusive, handlers[0].Kind)
	assert.Equal(t, HandlerShared, handlers[1].Kind)
}

func TestServiceDefinitionKindString(t *testing.T) {
	assert.Equal(t, "SERVICE", NewService("s").Kind().String())
	assert.Equal(t, "VIRTUAL_OBJECT", NewObject("o").Kind().String())
	assert.Equal(t, "WORKFLOW", NewWorkflow("w").Kind().String())
}

func TestWorkflowSharedHandlerIsShared(t *testing.T) {
	def := NewWorkflow("Shipment").
		Handler("run", NewWorkflowHandler(func(WorkflowContext, Void) (Void, error) { return Void{}, nil })).
		Handler("dispatch", NewWorkflowSharedHandler(func(WorkflowSharedContext, Void) (Void, error) { return Void{}, nil }))

	handlers := def.Handlers()
	assert.Equal(t, HandlerExclusive, handlers[0].Kind)
	assert.Equal(t, HandlerShared, handlers[1].Kind)
}
