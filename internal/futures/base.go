// Package futures implements spec.md §4.F (Syscall Futures) and §4.G
// (Combinators): one value per syscall variant that advances the
// Journal on first use and resolves once the Journal resolves its
// entry, plus the Timeout/Join/Select composites layered on top.
//
// The upstream Rust SDK models these as poll()-based futures driven by
// an executor. Go has no equivalent cooperative-poll primitive, so
// each future here is a "start now, await later" value: constructing
// it reserves its journal entry and emits it if required (§9's
// "assign indices at first poll" happens at construction, under the
// state machine's lock), and a subsequent blocking call waits for
// resolution. This keeps the determinism contract (index assignment
// order is fixed at construction) while fitting Go's synchronous
// handler style, which the teacher SDK already uses for its call/run
// helpers.
package futures

import (
	"context"

	"github.com/restatedev/sdk-go/internal/journal"
	"github.com/restatedev/sdk-go/internal/wire"
)

// Machine is the narrow slice of internal/state.Machine that futures
// need: emit a newly-constructed entry in Processing, and expose the
// journal + suspension context to wait against. Defined here (rather
// than importing internal/state) to avoid an import cycle, since
// internal/state constructs futures.
type Machine interface {
	Journal() *journal.Journal
	SuspensionContext() context.Context
	// EmitEntry writes entry through the protocol codec, in strict
	// entry-index order, panicking with an internal write-error type on
	// failure (spec.md §5 "Ordering guarantees").
	EmitEntry(index uint32, entry wire.Message)
}

// Selectable is implemented by every future that can be raced inside
// a Selector (spec.md §4.G "Select"): it exposes the entry index it
// reserved and a non-blocking readiness check.
type Selectable interface {
	EntryIndex() uint32
	// ready reports whether this future has already resolved, without
	// blocking. Used by Selector (and so by Join and Timeout) to find,
	// in list order, a future that resolved before it starts waiting.
	ready() bool
	// wake returns a channel that closes when this future resolves.
	wake() <-chan struct{}
}

// base is embedded by every concrete syscall future.
type base struct {
	m       Machine
	index   uint32
	done    chan struct{}
	entry   wire.Message
	replay  bool
}

// start reserves the next journal entry for newEntry, emits it if the
// journal is Processing, and arranges for done to close on resolution.
// Constructing a future always calls start exactly once.
func start(m Machine, newEntry wire.Message) *base {
	b := &base{m: m, done: make(chan struct{})}
	j := m.Journal()

	index, result, mustEmit := j.HandleUserCodeEntry(newEntry, func() { close(b.done) })
	b.index = index

	if result != nil {
		b.entry = result
		b.replay = true
		close(b.done)
		return b
	}

	if mustEmit {
		m.EmitEntry(index, newEntry)
	}
	return b
}

// EntryIndex implements Selectable.
func (b *base) EntryIndex() uint32 { return b.index }

func (b *base) ready() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

func (b *base) wake() <-chan struct{} { return b.done }

// await blocks until the entry resolves or the invocation suspends,
// returning the resolved wire message. It panics with
// *wire.SuspensionPanic if the invocation must suspend before this
// entry resolves (spec.md §4.E).
func (b *base) await() wire.Message {
	if b.entry != nil {
		return b.entry
	}

	j := b.m.Journal()
	select {
	case <-b.done:
	case <-b.m.SuspensionContext().Done():
		panic(&wire.SuspensionPanic{
			Err:          context.Cause(b.m.SuspensionContext()),
			EntryIndexes: j.PendingIndexes(),
		})
	}

	entry, replay, ok := j.TakeResolved(b.index)
	if !ok {
		// the journal closed before this entry resolved; nothing more
		// to observe.
		panic(&wire.SuspensionPanic{EntryIndexes: j.PendingIndexes()})
	}
	b.entry = entry
	b.replay = replay
	return entry
}

// Replay reports whether this future's resolution came from the
// replay prefix rather than live processing, for the state machine's
// tracing replay flag (spec.md §4.E).
func (b *base) Replay() bool { return b.replay }

// emitFireAndForget reserves and, if Processing, emits entry for the
// non-completable entry variants (SetState, ClearState, ClearAllState,
// OneWayCall, CompleteAwakeable): these
// never carry a pending completion, so the caller never blocks on them
// (spec.md §4.B point 5).
func emitFireAndForget(m Machine, entry wire.Message) {
	j := m.Journal()
	index, _, mustEmit := j.HandleUserCodeEntry(entry, nil)
	if mustEmit {
		m.EmitEntry(index, entry)
	}
}
