package state

import (
	"testing"

	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderSingleEntryInvocationCompletesAfterInput(t *testing.T) {
	b := newBuilder()
	require.NoError(t, b.feedStart(&wire.StartMessage{StartMessage: protocol.StartMessage{
		Id: []byte("inv"), KnownEntries: 1,
	}}))
	assert.False(t, b.Done())

	require.NoError(t, b.feedInput(&wire.InputEntryMessage{InputEntryMessage: protocol.InputEntryMessage{
		Value: []byte("payload"),
		Headers: []protocol.Header{{Key: "x-test", Value: "1"}},
	}}))
	assert.True(t, b.Done())

	inv, outputSeen := b.build()
	assert.False(t, outputSeen)
	assert.Equal(t, []byte("payload"), inv.Input)
	assert.Equal(t, "1", inv.Headers["x-test"])
}

func TestBuilderConsumesReplayEntriesUntilKnownEntries(t *testing.T) {
	b := newBuilder()
	require.NoError(t, b.feedStart(&wire.StartMessage{StartMessage: protocol.StartMessage{
		Id: []byte("inv"), KnownEntries: 3,
	}}))
	require.NoError(t, b.feedInput(&wire.InputEntryMessage{}))
	assert.False(t, b.Done())

	require.NoError(t, b.feedReplay(&wire.GetStateEntryMessage{}))
	assert.False(t, b.Done())
	require.NoError(t, b.feedReplay(&wire.SleepEntryMessage{}))
	assert.True(t, b.Done())

	inv, outputSeen := b.build()
	assert.False(t, outputSeen)
	assert.Len(t, inv.ReplayEntries, 2)
}

func TestBuilderDetectsOutputEntryInReplay(t *testing.T) {
	b := newBuilder()
	require.NoError(t, b.feedStart(&wire.StartMessage{StartMessage: protocol.StartMessage{
		Id: []byte("inv"), KnownEntries: 2,
	}}))
	require.NoError(t, b.feedInput(&wire.InputEntryMessage{}))
	require.NoError(t, b.feedReplay(&wire.OutputEntryMessage{OutputEntryMessage: protocol.OutputEntryMessage{Value: []byte("done")}}))

	_, outputSeen := b.build()
	assert.True(t, outputSeen)
}

func TestBuilderRejectsOutOfOrderMessages(t *testing.T) {
	b := newBuilder()
	err := b.feedInput(&wire.InputEntryMessage{})
	assert.Error(t, err)
}

func TestBuilderSeedsInitialStateFromStartMessage(t *testing.T) {
	b := newBuilder()
	require.NoError(t, b.feedStart(&wire.StartMessage{StartMessage: protocol.StartMessage{
		Id:           []byte("inv"),
		KnownEntries: 1,
		StateMap: []protocol.StateEntry{
			{Key: []byte("a"), Value: []byte("1")},
		},
		Partial: true,
	}}))
	require.NoError(t, b.feedInput(&wire.InputEntryMessage{}))

	inv, _ := b.build()
	assert.Equal(t, []byte("1"), inv.InitialState["a"])
	assert.True(t, inv.PartialState)
}
