package futures

import (
	"context"
	"reflect"

	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/wire"
)

// ErrTimeoutCode is the protocol error code a Timeout's deadline
// produces, matching HTTP's 408 Request Timeout (spec.md §4.G).
const ErrTimeoutCode = 408

// Selector races a set of Selectable futures against each other,
// returning them one at a time (spec.md §4.G "Join"/"Select"): each
// Select returns a future that has resolved, and among futures that
// are already resolved when Select is called, the one listed first in
// futs is returned first. Replaying Selectors never race: the journal
// prefix already records, via a CombinatorEntryMessage per Select
// call, which child resolved first, so replay just looks that entry
// up. Only a Processing Selector performs a real race over channels.
type Selector struct {
	m         Machine
	remaining []Selectable
}

// NewSelector constructs a Selector over futs. futs must not be empty.
func NewSelector(m Machine, futs []Selectable) *Selector {
	remaining := make([]Selectable, len(futs))
	copy(remaining, futs)
	return &Selector{m: m, remaining: remaining}
}

// Remaining reports how many futures have not yet been returned by
// Select.
func (s *Selector) Remaining() int { return len(s.remaining) }

// Select blocks until one of the remaining futures resolves, removes
// it from the remaining set and returns it. Calling Select when
// Remaining() == 0 panics, mirroring an out-of-bounds slice access:
// callers are expected to check Remaining() first.
func (s *Selector) Select() Selectable {
	if len(s.remaining) == 0 {
		panic("futures: Select called with no remaining futures")
	}
	j := s.m.Journal()

	entry := &wire.CombinatorEntryMessage{}
	index, replayResult, mustEmit := j.HandleUserCodeEntry(entry, nil)

	if replayResult != nil {
		order := replayResult.(*wire.CombinatorEntryMessage).JournalEntriesOrder
		winner := s.takeByEntryIndex(order[0])
		return winner
	}

	winner := s.race()

	entry.CombinatorId = index
	entry.JournalEntriesOrder = []uint32{winner.EntryIndex()}
	if mustEmit {
		s.m.EmitEntry(index, entry)
	}
	return s.takeByEntryIndex(winner.EntryIndex())
}

// race blocks until at least one remaining future is ready, using a
// real multi-way wait (only ever necessary while Processing: during
// Replaying every remaining future's entry is already present in the
// replay prefix and resolves synchronously).
func (s *Selector) race() Selectable {
	for _, f := range s.remaining {
		if f.ready() {
			return f
		}
	}

	cases := make([]reflect.SelectCase, 0, len(s.remaining)+1)
	for _, f := range s.remaining {
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(f.wake())})
	}
	suspCtx := s.m.SuspensionContext()
	cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(suspCtx.Done())})

	chosen, _, _ := reflect.Select(cases)
	if chosen == len(s.remaining) {
		panic(&wire.SuspensionPanic{
			Err:          context.Cause(suspCtx),
			EntryIndexes: s.m.Journal().PendingIndexes(),
		})
	}
	return s.remaining[chosen]
}

func (s *Selector) takeByEntryIndex(entryIndex uint32) Selectable {
	for i, f := range s.remaining {
		if f.EntryIndex() == entryIndex {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			return f
		}
	}
	return nil
}

// Join blocks until every future in futs has resolved, returning them
// in the order successive Selector.Select calls picked them (spec.md
// §4.G "Join").
func Join(m Machine, futs []Selectable) []Selectable {
	sel := NewSelector(m, futs)
	out := make([]Selectable, 0, len(futs))
	for sel.Remaining() > 0 {
		out = append(out, sel.Select())
	}
	return out
}

// After is the blocking future backing the public Timeout/After
// combinator: a Sleep future exposed through the Selectable interface
// so it can be raced against another future (spec.md §4.G "Timeout").
type After struct{ sleep *Sleep }

func NewAfter(m Machine, wakeUpTimeMillis uint64) *After {
	return &After{sleep: NewSleep(m, wakeUpTimeMillis)}
}

func (a *After) EntryIndex() uint32    { return a.sleep.EntryIndex() }
func (a *After) ready() bool           { return a.sleep.ready() }
func (a *After) wake() <-chan struct{} { return a.sleep.wake() }
func (a *After) Done() error           { return a.sleep.Await() }

// Timeout races target against a deadline, returning an ErrTimeoutCode
// error if the deadline wins (spec.md §4.G "Timeout"). target's
// Selectable is returned so the caller can pull its own typed result
// back out.
func Timeout(m Machine, target Selectable, wakeUpTimeMillis uint64) (Selectable, error) {
	after := NewAfter(m, wakeUpTimeMillis)
	sel := NewSelector(m, []Selectable{target, after})
	winner := sel.Select()
	if winner == Selectable(after) {
		return nil, errorsx.New(ErrTimeoutCode, "timeout")
	}
	return winner, nil
}
