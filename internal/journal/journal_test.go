package journal

import (
	"testing"

	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvocation(knownEntries uint32, replay map[uint32]wire.Message) *Invocation {
	return &Invocation{
		ID:            []byte("inv"),
		DebugID:       "inv-debug",
		KnownEntries:  knownEntries,
		ReplayEntries: replay,
		Input:         []byte("input"),
	}
}

func TestNewStartsProcessingWhenNothingToReplay(t *testing.T) {
	j := New(newInvocation(1, nil))
	assert.True(t, j.IsProcessing())
}

func TestNewStartsReplayingWhenEntriesPending(t *testing.T) {
	replay := map[uint32]wire.Message{
		1: &wire.GetStateEntryMessage{GetStateEntryMessage: protocol.GetStateEntryMessage{
			Key: []byte("k"), Value: []byte("v"),
		}},
	}
	j := New(newInvocation(2, replay))
	assert.True(t, j.IsReplaying())
}

func TestHandleUserCodeEntryReplaysCompletedEntry(t *testing.T) {
	replay := map[uint32]wire.Message{
		1: &wire.GetStateEntryMessage{GetStateEntryMessage: protocol.GetStateEntryMessage{
			Key: []byte("k"), Value: []byte("v"),
		}},
	}
	j := New(newInvocation(2, replay))

	newEntry := &wire.GetStateEntryMessage{GetStateEntryMessage: protocol.GetStateEntryMessage{Key: []byte("k")}}
	index, result, mustEmit := j.HandleUserCodeEntry(newEntry, nil)

	assert.Equal(t, uint32(1), index)
	assert.False(t, mustEmit)
	require.NotNil(t, result)
	got := result.(*wire.GetStateEntryMessage)
	assert.Equal(t, []byte("v"), got.Value)
}

func TestHandleUserCodeEntryReplayingUnresolvedEntryParksWaker(t *testing.T) {
	replay := map[uint32]wire.Message{
		1: &wire.SleepEntryMessage{},
	}
	j := New(newInvocation(2, replay))

	woken := false
	index, result, mustEmit := j.HandleUserCodeEntry(&wire.SleepEntryMessage{}, func() { woken = true })
	assert.Equal(t, uint32(1), index)
	assert.Nil(t, result)
	assert.False(t, mustEmit)
	assert.True(t, j.IsUnresolved(1))

	j.HandleRuntimeCompletion(1, wire.CompletionResult{Empty: true})
	assert.True(t, woken)
	assert.False(t, j.IsUnresolved(1))

	entry, replayFlag, ok := j.TakeResolved(1)
	require.True(t, ok)
	assert.True(t, replayFlag)
	assert.True(t, entry.(*wire.SleepEntryMessage).HasZero)
}

func TestHandleUserCodeEntryProcessingMustEmit(t *testing.T) {
	j := New(newInvocation(1, nil))

	entry := &wire.GetStateEntryMessage{GetStateEntryMessage: protocol.GetStateEntryMessage{Key: []byte("k")}}
	index, result, mustEmit := j.HandleUserCodeEntry(entry, func() {})

	assert.Equal(t, uint32(1), index)
	assert.Nil(t, result)
	assert.True(t, mustEmit)
	assert.True(t, j.IsUnresolved(1))
}

func TestProcessingTransitionsToProcessingOnceKnownEntriesExhausted(t *testing.T) {
	replay := map[uint32]wire.Message{
		1: &wire.GetStateEntryMessage{GetStateEntryMessage: protocol.GetStateEntryMessage{
			Key: []byte("k"), Value: []byte("v"),
		}},
	}
	j := New(newInvocation(2, replay))
	assert.True(t, j.IsReplaying())

	j.HandleUserCodeEntry(&wire.GetStateEntryMessage{}, nil)
	assert.True(t, j.IsProcessing())
}

func TestHandleRuntimeCompletionIsIdempotent(t *testing.T) {
	j := New(newInvocation(1, nil))
	calls := 0
	j.HandleUserCodeEntry(&wire.SleepEntryMessage{}, func() { calls++ })

	j.HandleRuntimeCompletion(1, wire.CompletionResult{Empty: true})
	j.HandleRuntimeCompletion(1, wire.CompletionResult{Empty: true})

	assert.Equal(t, 1, calls)
}

func TestCloseStopsFurtherEntries(t *testing.T) {
	j := New(newInvocation(1, nil))
	j.Close()
	assert.True(t, j.IsClosed())

	index, result, mustEmit := j.HandleUserCodeEntry(&wire.GetStateEntryMessage{}, nil)
	assert.Zero(t, index)
	assert.Nil(t, result)
	assert.False(t, mustEmit)
}

func TestPendingIndexesTracksUnresolvedOnly(t *testing.T) {
	j := New(newInvocation(1, nil))
	j.HandleUserCodeEntry(&wire.SleepEntryMessage{}, func() {})
	j.HandleUserCodeEntry(&wire.GetStateEntryMessage{}, func() {})

	assert.ElementsMatch(t, []uint32{1, 2}, j.PendingIndexes())

	j.HandleRuntimeCompletion(1, wire.CompletionResult{Empty: true})
	assert.ElementsMatch(t, []uint32{2}, j.PendingIndexes())
}

func TestPendingIndexesExcludesFireAndForgetEntries(t *testing.T) {
	j := New(newInvocation(1, nil))

	// A fire-and-forget syscall (SetState, ClearState, OneWayCall, Run,
	// ...) passes no waker: the platform never sends a Completion or Ack
	// for it, so it must resolve synchronously rather than sit in
	// PendingIndexes forever.
	j.HandleUserCodeEntry(&wire.SetStateEntryMessage{}, nil)
	assert.False(t, j.IsUnresolved(1))
	assert.Empty(t, j.PendingIndexes())

	// A genuinely blocking entry alongside it must still show up.
	j.HandleUserCodeEntry(&wire.SleepEntryMessage{}, func() {})
	assert.ElementsMatch(t, []uint32{2}, j.PendingIndexes())
}

func TestHandleUserCodeEntryReplayingDetectsTypeMismatch(t *testing.T) {
	replay := map[uint32]wire.Message{
		1: &wire.SleepEntryMessage{},
	}
	j := New(newInvocation(2, replay))

	assert.Panics(t, func() {
		j.HandleUserCodeEntry(&wire.CallEntryMessage{}, nil)
	})
}

func TestHandleUserCodeEntryReplayingTypeMismatchErrorCarriesIndexAndEntries(t *testing.T) {
	replay := map[uint32]wire.Message{
		1: &wire.SleepEntryMessage{},
	}
	j := New(newInvocation(2, replay))

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		mismatch, ok := recovered.(*EntryMismatchError)
		require.True(t, ok)
		assert.Equal(t, uint32(1), mismatch.Index)
		assert.IsType(t, &wire.SleepEntryMessage{}, mismatch.Expected)
		assert.IsType(t, &wire.CallEntryMessage{}, mismatch.Actual)
	}()

	j.HandleUserCodeEntry(&wire.CallEntryMessage{}, nil)
}

func TestNonDeterminismErrorOnMissingReplayEntry(t *testing.T) {
	j := New(newInvocation(2, map[uint32]wire.Message{}))

	assert.Panics(t, func() {
		j.HandleUserCodeEntry(&wire.GetStateEntryMessage{}, nil)
	})
}
