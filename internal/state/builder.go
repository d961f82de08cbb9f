package state

import (
	"fmt"

	"github.com/restatedev/sdk-go/internal/journal"
	"github.com/restatedev/sdk-go/internal/wire"
)

// builderState is the Invocation Builder's four-state accumulator
// (spec.md's Invocation Builder module): a Start message, then an
// Input entry, then zero or more replayed entries, then complete.
type builderState int

const (
	expectingStart builderState = iota
	expectingInput
	expectingReplay
	builderComplete
)

// builder assembles one journal.Invocation from the bidirectional
// stream's opening handshake, exactly reproducing the read order the
// protocol requires: Start, Input, then KnownEntries-1 further replay
// entries.
type builder struct {
	state builderState

	id           []byte
	debugID      string
	key          string
	knownEntries uint32
	initialState map[string][]byte
	partial      bool

	input      []byte
	headers    map[string]string
	replay     map[uint32]wire.Message
	nextIndex  uint32
	outputSeen bool
}

func newBuilder() *builder {
	return &builder{state: expectingStart, replay: make(map[uint32]wire.Message)}
}

func (b *builder) feedStart(msg *wire.StartMessage) error {
	if b.state != expectingStart {
		return fmt.Errorf("state: unexpected Start message in state %d", b.state)
	}
	b.id = msg.Id
	b.debugID = msg.DebugId
	b.key = msg.Key
	b.knownEntries = msg.KnownEntries
	b.partial = msg.Partial

	b.initialState = make(map[string][]byte, len(msg.StateMap))
	for _, e := range msg.StateMap {
		b.initialState[string(e.Key)] = e.Value
	}

	b.state = expectingInput
	return nil
}

func (b *builder) feedInput(msg *wire.InputEntryMessage) error {
	if b.state != expectingInput {
		return fmt.Errorf("state: unexpected Input entry in state %d", b.state)
	}
	b.input = msg.Value
	b.headers = make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		b.headers[h.Key] = h.Value
	}
	b.nextIndex = 1
	if b.nextIndex >= b.knownEntries {
		b.state = builderComplete
	} else {
		b.state = expectingReplay
	}
	return nil
}

// feedReplay consumes one further journaled entry. The caller must
// stop reading once Done() reports true.
func (b *builder) feedReplay(msg wire.Message) error {
	if b.state != expectingReplay {
		return fmt.Errorf("state: unexpected replay entry in state %d", b.state)
	}
	b.replay[b.nextIndex] = msg
	if _, ok := msg.(*wire.OutputEntryMessage); ok {
		b.outputSeen = true
	}
	b.nextIndex++
	if b.nextIndex >= b.knownEntries {
		b.state = builderComplete
	}
	return nil
}

// Done reports whether the builder has consumed every entry the Start
// message promised.
func (b *builder) Done() bool { return b.state == builderComplete }

// build finalizes the accumulated invocation. Must only be called once
// Done() reports true.
func (b *builder) build() (*journal.Invocation, bool) {
	inv := &journal.Invocation{
		ID:            b.id,
		DebugID:       b.debugID,
		Key:           b.key,
		KnownEntries:  b.knownEntries,
		ReplayEntries: b.replay,
		Input:         b.input,
		Headers:       b.headers,
		InitialState:  b.initialState,
		PartialState:  b.partial,
	}
	return inv, b.outputSeen
}
