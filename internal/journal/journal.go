package journal

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/restatedev/sdk-go/internal/wire"
)

// State is the Journal's execution state, spec.md §3/§4.B.
type State int

const (
	Replaying State = iota
	Processing
	Closed
)

func (s State) String() string {
	switch s {
	case Replaying:
		return "replaying"
	case Processing:
		return "processing"
	default:
		return "closed"
	}
}

// Waker is invoked, outside of the Journal's lock, when a pending
// entry resolves or is acknowledged (spec.md §5: "Waker invocations
// happen outside the lock").
type Waker func()

type pendingEntry struct {
	entry    wire.Message
	waker    Waker
	resolved bool
	// replay records whether this entry's resolution came from the
	// replay prefix, for the State Machine's tracing replay flag
	// (spec.md §4.E).
	replay bool
}

// Journal holds the replay prefix, the pending-entry table and the
// execution state of one invocation (spec.md §3/§4.B). It is owned
// exclusively by the State Machine (spec.md §3 "Ownership"); all
// exported methods are safe to call under the state machine's mutex
// and are themselves internally synchronized for the background
// completion-reader goroutine.
type Journal struct {
	mu sync.Mutex

	invocation *Invocation
	state      State

	// userCodeIndex is the last index the handler's syscalls have
	// reserved; entry index 0 (Input) is consumed before the journal
	// is constructed and is not counted here.
	userCodeIndex uint32

	pending map[uint32]*pendingEntry
}

// NonDeterminismError reports a handler-determinism violation
// (spec.md §7 item 3): the user-code index requested by a syscall did
// not match the journal's expectation.
type NonDeterminismError struct {
	Expected, Actual uint32
}

func (e *NonDeterminismError) Error() string {
	return fmt.Sprintf("journal: non-deterministic handler: expected entry index %d, got %d", e.Expected, e.Actual)
}

// EntryMismatchError reports that the entry the handler tried to emit
// at Index has a different concrete type than what the replay prefix
// recorded there (spec.md §7 item 3): code changed between deploys and
// a syscall now issues a different entry variant at an index the
// journal already settled during a previous attempt. internal/state
// recovers this panic and translates it into its own structured
// mismatch diagnostic (see internal/state's entryMismatch).
type EntryMismatchError struct {
	Index            uint32
	Expected, Actual wire.Message
}

func (e *EntryMismatchError) Error() string {
	return fmt.Sprintf("journal: entry mismatch at index %d: expected %T, got %T", e.Index, e.Expected, e.Actual)
}

// New constructs a Journal over an Invocation. If the invocation has
// only the Input entry (known_entries == 1), the journal starts
// already in Processing, per spec.md §4.B's transition rule applied
// to an invocation with nothing left to replay.
func New(invocation *Invocation) *Journal {
	j := &Journal{
		invocation: invocation,
		state:      Replaying,
		pending:    make(map[uint32]*pendingEntry),
	}
	if invocation.KnownEntries <= 1 {
		j.state = Processing
	}
	return j
}

// IsReplaying, IsProcessing, IsClosed report the current execution
// state (spec.md §4.B queries).
func (j *Journal) IsReplaying() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state == Replaying
}

func (j *Journal) IsProcessing() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state == Processing
}

func (j *Journal) IsClosed() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state == Closed
}

// NextUserCodeIndex returns the index the next syscall must reserve
// (spec.md §4.B).
func (j *Journal) NextUserCodeIndex() uint32 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.userCodeIndex + 1
}

// Close transitions the journal to Closed: no further entries may be
// appended and no wakers may fire (spec.md §3 invariant).
func (j *Journal) Close() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = Closed
}

// reserve advances the user-code index by exactly one and returns it
// together with the state that index is handled in. Once the reserved
// index is the last one the replay prefix holds, the journal
// transitions Replaying->Processing, so the next syscall is live.
// Must be called with j.mu held.
func (j *Journal) reserve() (uint32, State) {
	j.userCodeIndex++
	state := j.state
	if j.state == Replaying && j.userCodeIndex+1 >= j.invocation.KnownEntries {
		j.state = Processing
	}
	return j.userCodeIndex, state
}

// HandleUserCodeEntry is the Journal's central operation (spec.md
// §4.B). newEntry is the entry the handler would emit if this turns
// out to be Processing; while Replaying, its concrete type is checked
// against the replayed entry at the same index. It returns the
// reserved index, the replayed entry when that entry already carries
// its result (nil otherwise) and whether the State Machine must emit
// newEntry as an outbound message (only ever true in Processing).
//
// Fire-and-forget variants (SetState, ClearState, ClearAllState,
// OneWayCall, CompleteAwakeable, Run, and a Selector's combinator
// entry) call it with a nil waker and, in Processing, are marked
// resolved immediately — see spec.md §4.B point 5.
func (j *Journal) HandleUserCodeEntry(newEntry wire.Message, waker Waker) (index uint32, result wire.Message, mustEmit bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.state == Closed {
		return 0, nil, false
	}

	var state State
	index, state = j.reserve()

	switch state {
	case Replaying:
		replay, ok := j.invocation.ReplayEntries[index]
		if !ok {
			// known_entries promised this index would exist; it
			// didn't. This is a protocol/builder inconsistency, not a
			// handler non-determinism, but we treat it the same way:
			// fatal for the invocation.
			panic(&NonDeterminismError{Expected: index, Actual: index})
		}
		if reflect.TypeOf(replay) != reflect.TypeOf(newEntry) {
			panic(&EntryMismatchError{Index: index, Expected: replay, Actual: newEntry})
		}
		if completed(replay) {
			return index, replay, false
		}
		j.pending[index] = &pendingEntry{entry: replay, waker: waker, replay: true}
		return index, nil, false
	default: // Processing
		// A syscall with no waker is fire-and-forget (SetState,
		// ClearState, ClearAllState, OneWayCall, CompleteAwakeable, Run,
		// and a Selector's own combinator entry): the platform never
		// sends a Completion or Ack for these, so nothing would ever
		// wake them if left pending. Mark resolved immediately so
		// PendingIndexes (and therefore the Suspension message) doesn't
		// keep waiting on them (spec.md §4.B point 5, §4.E).
		j.pending[index] = &pendingEntry{entry: newEntry, waker: waker, resolved: waker == nil}
		return index, nil, true
	}
}

// completed reports whether a replay entry already carries a result,
// for the completable variants; non-completable variants (SetState,
// ClearState, ...) are always considered resolved once replayed.
func completed(entry wire.Message) bool {
	if cm, ok := entry.(wire.CompleteableMessage); ok {
		return cm.Completed()
	}
	return true
}

// HandleRuntimeCompletion writes result into the pending entry at
// index and wakes its waker (spec.md §4.B). Re-application targeting
// an already-resolved index is a no-op, giving completion idempotence
// (spec.md §8).
func (j *Journal) HandleRuntimeCompletion(index uint32, result wire.CompletionResult) {
	j.mu.Lock()
	if j.state == Closed {
		j.mu.Unlock()
		return
	}
	p, ok := j.pending[index]
	if !ok || p.resolved {
		j.mu.Unlock()
		return
	}
	if cm, ok := p.entry.(wire.CompleteableMessage); ok {
		wire.Complete(cm, result)
	}
	p.resolved = true
	waker := p.waker
	j.mu.Unlock()

	if waker != nil {
		waker()
	}
}

// HandleRuntimeAck wakes the waker parked on index without attaching
// a result (spec.md §4.B), used for entries acknowledged rather than
// completed.
func (j *Journal) HandleRuntimeAck(index uint32) {
	j.mu.Lock()
	if j.state == Closed {
		j.mu.Unlock()
		return
	}
	p, ok := j.pending[index]
	if !ok || p.resolved {
		j.mu.Unlock()
		return
	}
	p.resolved = true
	waker := p.waker
	j.mu.Unlock()

	if waker != nil {
		waker()
	}
}

// TakeResolved returns the resolved entry at index, if any, and
// whether its resolution came from the replay prefix.
func (j *Journal) TakeResolved(index uint32) (entry wire.Message, replay bool, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	p, found := j.pending[index]
	if !found || !p.resolved {
		return nil, false, false
	}
	return p.entry, p.replay, true
}

// IsUnresolved reports whether index is parked awaiting a completion
// or ack (spec.md §4.B query).
func (j *Journal) IsUnresolved(index uint32) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	p, ok := j.pending[index]
	return ok && !p.resolved
}

// PendingIndexes returns the indexes of every entry still awaiting a
// completion or ack, in ascending order. Used by the State Machine's
// suspension decision (spec.md §4.E).
func (j *Journal) PendingIndexes() []uint32 {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]uint32, 0, len(j.pending))
	for idx, p := range j.pending {
		if !p.resolved {
			out = append(out, idx)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Invocation returns the journal's immutable invocation descriptor.
func (j *Journal) Invocation() *Invocation { return j.invocation }
