package state

import (
	"encoding/binary"
	"time"

	restate "github.com/restatedev/sdk-go"
	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/futures"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"

	"github.com/mr-tron/base58"
)

// get implements Context.Get: consults the Local State Store shadow
// first, falling through to a durable GetState entry only when the
// shadow cannot answer on its own (spec.md §4.C).
func (m *Machine) get(key string) ([]byte, bool, error) {
	if value, present, needsFetch := m.store.Get(key); !needsFetch {
		return value, present, nil
	}

	value, ok, err := futures.NewGetState(m, key).Await()
	if err != nil {
		return nil, false, err
	}
	m.store.Observe(key, value, ok)
	return value, ok, nil
}

// set implements Context.Set: updates the shadow immediately and
// emits the corresponding SetState entry.
func (m *Machine) set(key string, value []byte) {
	m.store.Set(key, value)
	entry := &wire.SetStateEntryMessage{SetStateEntryMessage: protocol.SetStateEntryMessage{
		Key: []byte(key), Value: value,
	}}
	emitFireAndForget(m, entry)
}

func (m *Machine) clear(key string) {
	m.store.Clear(key)
	entry := &wire.ClearStateEntryMessage{ClearStateEntryMessage: protocol.ClearStateEntryMessage{Key: []byte(key)}}
	emitFireAndForget(m, entry)
}

func (m *Machine) clearAll() {
	m.store.ClearAll()
	emitFireAndForget(m, &wire.ClearAllStateEntryMessage{})
}

func (m *Machine) keys() ([]string, error) {
	if !m.store.IsPartial() {
		return m.store.Keys(), nil
	}
	keys, err := futures.NewGetStateKeys(m).Await()
	if err != nil {
		return nil, err
	}
	m.store.ObserveKeys(keys)
	return m.store.Keys(), nil
}

func (m *Machine) sleep(d time.Duration) error {
	return futures.NewSleep(m, wakeTimeMillis(d)).Await()
}

func (m *Machine) after(d time.Duration) restate.After {
	return futures.NewAfter(m, wakeTimeMillis(d))
}

func wakeTimeMillis(d time.Duration) uint64 {
	return uint64(time.Now().Add(d).UnixMilli())
}

func (m *Machine) run(fn func() ([]byte, error)) ([]byte, error) {
	value, err := futures.Run(m, fn)
	if err != nil && !m.journal.IsReplaying() && !restate.IsTerminalError(err) {
		// a non-terminal error from a live side effect is a protocol
		// error, not business logic the handler can recover from: the
		// closure itself failed to produce a result.
		panic(&sideEffectFailure{entryIndex: m.journal.NextUserCodeIndex() - 1, err: err})
	}
	return value, err
}

func (m *Machine) awakeable() restate.Awakeable[[]byte] {
	f := futures.NewAwakeable(m)
	var index [4]byte
	binary.BigEndian.PutUint32(index[:], f.EntryIndex())
	raw := append(append([]byte{0x01}, m.journal.Invocation().ID...), index[:]...)
	return restate.NewAwakeableAdapter[[]byte](f, base58.Encode(raw))
}

func (m *Machine) resolveAwakeable(id string, value []byte) {
	futures.CompleteAwakeable(m, id, value, nil)
}

func (m *Machine) rejectAwakeable(id string, reason error) {
	futures.CompleteAwakeable(m, id, nil, errorsx.ToFailure(reason))
}

func (m *Machine) promise(name string) restate.DurablePromise[[]byte] {
	return restate.NewDurablePromiseAdapter[[]byte](
		func() ([]byte, error) { return futures.NewGetPromise(m, name).Await() },
		func() ([]byte, bool, error) { return futures.NewPeekPromise(m, name).Await() },
		func(raw []byte) error { return futures.NewCompletePromise(m, name, raw, nil).Await() },
		func(reason error) error {
			return futures.NewCompletePromise(m, name, nil, errorsx.ToFailure(reason)).Await()
		},
	)
}

func (m *Machine) timeout(target restate.Selectable, d time.Duration) (restate.Selectable, error) {
	winner, err := futures.Timeout(m, target.(futures.Selectable), wakeTimeMillis(d))
	if err != nil {
		return nil, err
	}
	return winner.(restate.Selectable), nil
}

func (m *Machine) selector(futs []restate.Selectable) restate.Selector {
	selectable := make([]futures.Selectable, len(futs))
	for i, f := range futs {
		selectable[i] = f.(futures.Selectable)
	}
	return &selectorAdapter{futures.NewSelector(m, selectable)}
}

type selectorAdapter struct{ sel *futures.Selector }

func (s *selectorAdapter) Remaining() int { return s.sel.Remaining() }
func (s *selectorAdapter) Select() restate.Selectable {
	return s.sel.Select().(restate.Selectable)
}

func emitFireAndForget(m *Machine, entry wire.Message) {
	index, _, mustEmit := m.journal.HandleUserCodeEntry(entry, nil)
	if mustEmit {
		m.EmitEntry(index, entry)
	}
}
