// Package state implements spec.md's State Machine: the component
// that owns one invocation's Journal, Local State Store and wire
// Protocol connection, dispatches replayed and live syscalls, and
// recovers the panics those syscalls use for protocol-violation and
// suspension control flow (spec.md §4.E, §7).
package state

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	restate "github.com/restatedev/sdk-go"
	"github.com/restatedev/sdk-go/internal/errorsx"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	intlog "github.com/restatedev/sdk-go/internal/log"
	intrand "github.com/restatedev/sdk-go/internal/rand"
	"github.com/restatedev/sdk-go/internal/journal"
	"github.com/restatedev/sdk-go/internal/wire"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Machine coordinates one invocation's Journal, Store and Protocol. It
// implements internal/futures.Machine so syscall futures can reserve
// and emit entries through it.
type Machine struct {
	ctx           context.Context
	suspensionCtx context.Context
	suspend       func(error)

	handler restate.Handler
	proto   *wire.Protocol

	journal *journal.Journal
	store   *journal.Store
	rnd     *intrand.Rand

	writeMu sync.Mutex

	log zerolog.Logger
}

// NewMachine constructs a Machine bound to conn, ready for Start.
func NewMachine(handler restate.Handler, conn io.ReadWriter) *Machine {
	m := &Machine{handler: handler, log: log.Logger}
	m.proto = wire.NewProtocol(&m.log, conn)
	return m
}

// Start performs the invocation's opening handshake and runs the
// handler to completion or suspension.
func (m *Machine) Start(inner context.Context, trace string) error {
	b := newBuilder()

	msg, err := m.proto.Read()
	if err != nil {
		return err
	}
	start, ok := msg.(*wire.StartMessage)
	if !ok {
		return wire.ErrUnexpectedMessage
	}
	if err := b.feedStart(start); err != nil {
		return err
	}

	msg, err = m.proto.Read()
	if err != nil {
		return err
	}
	input, ok := msg.(*wire.InputEntryMessage)
	if !ok {
		return wire.ErrUnexpectedMessage
	}
	if err := b.feedInput(input); err != nil {
		return err
	}

	for !b.Done() {
		msg, err := m.proto.Read()
		if err != nil {
			return fmt.Errorf("state: reading replay entry: %w", err)
		}
		if err := b.feedReplay(msg); err != nil {
			return err
		}
	}

	invocation, outputSeen := b.build()

	m.ctx = inner
	m.suspensionCtx, m.suspend = context.WithCancelCause(m.ctx)
	m.journal = journal.New(invocation)
	m.store = journal.NewStore(invocation.InitialState, invocation.PartialState)
	m.rnd = intrand.New(invocation.ID)
	m.log = m.log.With().Str("id", invocation.DebugID).Str("method", trace).Logger()

	go m.pump()

	ctx := newContext(inner, m)

	m.log.Debug().Msg("start invocation")
	defer m.log.Debug().Msg("invocation ended")

	return m.invoke(ctx, invocation.Input, outputSeen)
}

// pump is the background completion/ack reader (spec.md §4.B): it runs
// for the lifetime of the invocation, applying every inbound
// Completion/Ack to the journal and waking whichever syscall future is
// parked on it. When the stream ends (normally with io.EOF once the
// platform has nothing further to send right now) it cancels
// suspensionCtx so any future still blocked panics into a suspension.
func (m *Machine) pump() {
	for {
		msg, err := m.proto.Read()
		if err != nil {
			m.suspend(err)
			return
		}

		switch typ := msg.(type) {
		case *wire.CompletionMessage:
			m.journal.HandleRuntimeCompletion(typ.EntryIndex, typ.Result())
		case *wire.EntryAckMessage:
			m.journal.HandleRuntimeAck(typ.EntryIndex)
		default:
			// anything else arriving mid-invocation is a protocol
			// violation; treat it like a stream failure.
			m.suspend(fmt.Errorf("state: unexpected message %T on completion stream", typ))
			return
		}
	}
}

// Journal implements internal/futures.Machine.
func (m *Machine) Journal() *journal.Journal { return m.journal }

// SuspensionContext implements internal/futures.Machine.
func (m *Machine) SuspensionContext() context.Context { return m.suspensionCtx }

// EmitEntry implements internal/futures.Machine: writes entry to the
// wire under writeMu, panicking *writeError on failure so that
// invoke's recover reports it to the platform as an ErrorMessage.
func (m *Machine) EmitEntry(index uint32, entry wire.Message) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if err := m.proto.Write(entry); err != nil {
		panic(&writeError{entryIndex: index, entry: entry, err: err})
	}
}

// replaying reports whether the journal is still replaying, for the
// replay-filtering logger.
func (m *Machine) replaying() bool { return m.journal.IsReplaying() }

func (m *Machine) logger() restate.Logger {
	return intlog.New(m.log, m.replaying)
}

// writeEntryMismatch logs and reports a handler-determinism violation
// (spec.md §7 item 3) back to the platform as an ErrorMessage tied to
// the offending entry index.
func (m *Machine) writeEntryMismatch(typ *entryMismatch) {
	expected, _ := json.Marshal(typ.expectedEntry)
	actual, _ := json.Marshal(typ.actualEntry)

	m.log.Error().
		Type("expectedType", typ.expectedEntry).
		RawJSON("expectedMessage", expected).
		Type("actualType", typ.actualEntry).
		RawJSON("actualMessage", actual).
		Msg("journal mismatch: replayed entries did not match the handler; handler code must be deterministic")

	idx := typ.entryIndex
	_ = m.proto.Write(&wire.ErrorMessage{ErrorMessage: protocol.ErrorMessage{
		Code: uint32(errorsx.DefaultErrorCode),
		Message: fmt.Sprintf(
			"journal mismatch at entry %d: expected %T, got %T", typ.entryIndex, typ.expectedEntry, typ.actualEntry),
		Description:       string(debug.Stack()),
		RelatedEntryIndex: &idx,
	}})
}

// invoke runs the handler to completion, translating its outcome (or
// any recovered panic) into the terminal Output/Error/Suspension/End
// messages the protocol requires (spec.md §4.D, §4.E, §7). This is the
// single point, for the whole invocation, where syscall panics are
// recovered.
func (m *Machine) invoke(ctx *Context, input []byte, outputSeen bool) error {
	defer func() {
		recovered := recover()

		switch typ := recovered.(type) {
		case nil:
			return
		case *entryMismatch:
			m.writeEntryMismatch(typ)
			return
		case *journal.EntryMismatchError:
			m.writeEntryMismatch(m.newEntryMismatch(typ.Index, typ.Expected, typ.Actual))
			return
		case *writeError:
			m.log.Error().Err(typ.err).Msg("failed to write entry, shutting down invocation")
			idx := typ.entryIndex
			_ = m.proto.Write(&wire.ErrorMessage{ErrorMessage: protocol.ErrorMessage{
				Code:              uint32(errorsx.DefaultErrorCode),
				Message:           typ.err.Error(),
				Description:       string(debug.Stack()),
				RelatedEntryIndex: &idx,
			}})
			return
		case *sideEffectFailure:
			m.log.Error().Err(typ.err).Msg("side effect failed")
			idx := typ.entryIndex
			_ = m.proto.Write(&wire.ErrorMessage{ErrorMessage: protocol.ErrorMessage{
				Code:              restate.ErrorCode(typ.err),
				Message:           typ.err.Error(),
				Description:       string(debug.Stack()),
				RelatedEntryIndex: &idx,
			}})
			return
		case *wire.SuspensionPanic:
			if m.ctx.Err() != nil {
				return
			}
			if stderrors.Is(typ.Err, io.EOF) {
				m.log.Info().Uints32("entryIndexes", typ.EntryIndexes).Msg("suspending")
				_ = m.proto.Write(&wire.SuspensionMessage{SuspensionMessage: protocol.SuspensionMessage{
					EntryIndexes: typ.EntryIndexes,
				}})
			} else {
				m.log.Error().Err(typ.Err).Uints32("entryIndexes", typ.EntryIndexes).Msg("unexpected error reading completions")
				_ = m.proto.Write(&wire.ErrorMessage{ErrorMessage: protocol.ErrorMessage{
					Code:        restate.ErrorCode(typ.Err),
					Message:     fmt.Sprintf("reading completions: %v", typ.Err),
					Description: string(debug.Stack()),
				}})
			}
			return
		default:
			m.log.Error().Interface("panic", typ).Msg("unexpected panic in handler")
			_ = m.proto.Write(&wire.ErrorMessage{ErrorMessage: protocol.ErrorMessage{
				Code:        uint32(errorsx.DefaultErrorCode),
				Message:     fmt.Sprint(typ),
				Description: string(debug.Stack()),
			}})
			return
		}
	}()

	if outputSeen {
		return m.proto.Write(&wire.EndMessage{})
	}

	output, err := m.handler.Call(ctx, input)
	if err != nil {
		m.log.Error().Err(err).Msg("handler failed")
	}

	switch {
	case err != nil && restate.IsTerminalError(err):
		if werr := m.proto.Write(&wire.OutputEntryMessage{OutputEntryMessage: protocol.OutputEntryMessage{
			Failure: errorsx.ToFailure(err),
		}}); werr != nil {
			return werr
		}
		return m.proto.Write(&wire.EndMessage{})
	case err != nil:
		return m.proto.Write(&wire.ErrorMessage{ErrorMessage: protocol.ErrorMessage{
			Code:    restate.ErrorCode(err),
			Message: err.Error(),
		}})
	default:
		if werr := m.proto.Write(&wire.OutputEntryMessage{OutputEntryMessage: protocol.OutputEntryMessage{
			Value: output,
		}}); werr != nil {
			return werr
		}
		return m.proto.Write(&wire.EndMessage{})
	}
}
