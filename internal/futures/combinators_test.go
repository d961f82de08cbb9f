package futures

import (
	"context"
	"runtime"
	"sync"
	"testing"

	"github.com/restatedev/sdk-go/internal/journal"
	"github.com/restatedev/sdk-go/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMachine is a minimal Machine backed by a real journal.Journal, so
// Select/Join/Timeout exercise the same HandleUserCodeEntry/
// HandleRuntimeCompletion path the state machine drives in production.
type fakeMachine struct {
	j             *journal.Journal
	ctx           context.Context
	cancel        context.CancelCauseFunc
	mu            sync.Mutex
	emitted       []uint32
}

func newFakeMachine(knownEntries uint32) *fakeMachine {
	ctx, cancel := context.WithCancelCause(context.Background())
	inv := &journal.Invocation{ID: []byte("inv"), KnownEntries: knownEntries, ReplayEntries: map[uint32]wire.Message{}}
	return &fakeMachine{j: journal.New(inv), ctx: ctx, cancel: cancel}
}

func (f *fakeMachine) Journal() *journal.Journal            { return f.j }
func (f *fakeMachine) SuspensionContext() context.Context   { return f.ctx }
func (f *fakeMachine) EmitEntry(index uint32, _ wire.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emitted = append(f.emitted, index)
}

func (f *fakeMachine) wasEmitted(index uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.emitted {
		if i == index {
			return true
		}
	}
	return false
}

func TestSelectorReturnsWhicheverResolvesFirst(t *testing.T) {
	m := newFakeMachine(1)

	a := NewGetState(m, "a")
	b := NewGetState(m, "b")

	go m.j.HandleRuntimeCompletion(b.EntryIndex(), wire.CompletionResult{Empty: true})

	sel := NewSelector(m, []Selectable{a, b})
	winner := sel.Select()

	assert.Equal(t, b.EntryIndex(), winner.EntryIndex())
	assert.Equal(t, 1, sel.Remaining())
}

func TestJoinReturnsAllInResolutionOrder(t *testing.T) {
	m := newFakeMachine(1)

	a := NewGetState(m, "a")
	b := NewGetState(m, "b")

	// b resolves before Join starts; a resolves only once the first
	// Select has journaled its combinator entry, so b is picked first.
	m.j.HandleRuntimeCompletion(b.EntryIndex(), wire.CompletionResult{Empty: true})
	firstCombinator := b.EntryIndex() + 1
	go func() {
		for !m.wasEmitted(firstCombinator) {
			runtime.Gosched()
		}
		m.j.HandleRuntimeCompletion(a.EntryIndex(), wire.CompletionResult{Empty: true})
	}()

	order := Join(m, []Selectable{a, b})
	require.Len(t, order, 2)
	assert.Equal(t, b.EntryIndex(), order[0].EntryIndex())
	assert.Equal(t, a.EntryIndex(), order[1].EntryIndex())
}

func TestTimeoutReturnsTimeoutErrorWhenDeadlineWins(t *testing.T) {
	m := newFakeMachine(1)

	target := NewGetState(m, "slow")
	// Timeout reserves its own sleep entry right after target's.
	deadline := target.EntryIndex() + 1

	go func() {
		for !m.j.IsUnresolved(deadline) {
			runtime.Gosched()
		}
		m.j.HandleRuntimeCompletion(deadline, wire.CompletionResult{Empty: true})
	}()

	winner, err := Timeout(m, target, 0)
	assert.Nil(t, winner)
	require.Error(t, err)
}

func TestTimeoutReturnsTargetWhenItWinsFirst(t *testing.T) {
	m := newFakeMachine(1)

	target := NewGetState(m, "fast")

	go m.j.HandleRuntimeCompletion(target.EntryIndex(), wire.CompletionResult{Value: []byte("v")})

	winner, err := Timeout(m, target, 60_000)
	require.NoError(t, err)
	assert.Equal(t, target.EntryIndex(), winner.EntryIndex())
}

func TestSelectorReplayLooksUpRecordedWinner(t *testing.T) {
	entry := &wire.CombinatorEntryMessage{}
	entry.JournalEntriesOrder = []uint32{2}

	inv := &journal.Invocation{
		ID:           []byte("inv"),
		KnownEntries: 4,
		ReplayEntries: map[uint32]wire.Message{
			1: &wire.GetStateEntryMessage{},
			2: &wire.GetStateEntryMessage{},
			3: entry,
		},
	}
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	m := &fakeMachine{j: journal.New(inv), ctx: ctx, cancel: cancel}

	a := NewGetState(m, "a")
	b := NewGetState(m, "b")

	sel := NewSelector(m, []Selectable{a, b})
	winner := sel.Select()
	assert.Equal(t, uint32(2), winner.EntryIndex())
}
