package wire

import (
	"github.com/restatedev/sdk-go/internal/generated/protocol"
)

// Message is implemented by every value that can travel across the
// bidirectional stream: the six protocol control messages plus one
// wrapper per Entry variant (spec.md §3/§4.A).
type Message interface {
	Type() Type
}

// CompleteableMessage is implemented by entry wrappers whose variant
// can be outstanding and later resolved by a Completion message
// (spec.md §3: GetState, GetStateKeys, GetPromise, PeekPromise,
// CompletePromise, Sleep, Call, Awakeable).
type CompleteableMessage interface {
	Message
	// Completed reports whether this entry already carries a result,
	// either because it was replayed in a completed state or because
	// a completion has since been merged onto it.
	Completed() bool
	// complete merges a runtime completion result onto this entry in
	// place, per §4.A's write-completion operation.
	complete(CompletionResult)
}

// AckableMessage is implemented by entry wrappers that are resolved
// by an EntryAck rather than a Completion (the platform merely needs
// to confirm durable persistence before the handler may proceed).
type AckableMessage interface {
	Message
	Acked() bool
	ack()
}

// CompletionResult mirrors spec.md §4.B's three result variants for a
// runtime completion.
type CompletionResult struct {
	Empty   bool
	Value   []byte
	Failure *protocol.Failure
}

// --- control messages -------------------------------------------------

type StartMessage struct {
	protocol.StartMessage
}

func (*StartMessage) Type() Type { return StartMessageType }

type CompletionMessage struct {
	protocol.CompletionMessage
}

func (*CompletionMessage) Type() Type { return CompletionMessageType }

// Result decodes this message's payload into a CompletionResult.
func (m *CompletionMessage) Result() CompletionResult {
	switch {
	case m.Failure != nil:
		return CompletionResult{Failure: m.Failure}
	case m.Value != nil:
		return CompletionResult{Value: m.Value}
	default:
		return CompletionResult{Empty: true}
	}
}

type SuspensionMessage struct {
	protocol.SuspensionMessage
}

func (*SuspensionMessage) Type() Type { return SuspensionMessageType }

type ErrorMessage struct {
	protocol.ErrorMessage
}

func (*ErrorMessage) Type() Type { return ErrorMessageType }

type EntryAckMessage struct {
	protocol.EntryAckMessage
}

func (*EntryAckMessage) Type() Type { return EntryAckMessageType }

type EndMessage struct {
	protocol.EndMessage
}

func (*EndMessage) Type() Type { return EndMessageType }

// --- entry messages ----------------------------------------------------

type InputEntryMessage struct {
	protocol.InputEntryMessage
}

func (*InputEntryMessage) Type() Type { return InputEntryMessageType }

type OutputEntryMessage struct {
	protocol.OutputEntryMessage
}

func (*OutputEntryMessage) Type() Type { return OutputEntryMessageType }

type GetStateEntryMessage struct {
	protocol.GetStateEntryMessage
}

func (*GetStateEntryMessage) Type() Type { return GetStateEntryMessageType }
func (m *GetStateEntryMessage) Completed() bool {
	return m.HasZero || m.Value != nil || m.Failure != nil
}
func (m *GetStateEntryMessage) complete(r CompletionResult) {
	m.HasZero, m.Value, m.Failure = r.Empty, r.Value, r.Failure
}

type SetStateEntryMessage struct {
	protocol.SetStateEntryMessage
}

func (*SetStateEntryMessage) Type() Type { return SetStateEntryMessageType }

type ClearStateEntryMessage struct {
	protocol.ClearStateEntryMessage
}

func (*ClearStateEntryMessage) Type() Type { return ClearStateEntryMessageType }

type ClearAllStateEntryMessage struct {
	protocol.ClearAllStateEntryMessage
}

func (*ClearAllStateEntryMessage) Type() Type { return ClearAllStateEntryMessageType }

type GetStateKeysEntryMessage struct {
	protocol.GetStateKeysEntryMessage
}

func (*GetStateKeysEntryMessage) Type() Type { return GetStateKeysEntryMessageType }
func (m *GetStateKeysEntryMessage) Completed() bool {
	return m.Value != nil || m.Failure != nil
}
func (m *GetStateKeysEntryMessage) complete(r CompletionResult) {
	if r.Failure != nil {
		m.Failure = r.Failure
		return
	}
	if keys, err := protocol.DecodeStateKeysValue(r.Value); err == nil {
		m.Value = keys
	}
}

type GetPromiseEntryMessage struct {
	protocol.GetPromiseEntryMessage
}

func (*GetPromiseEntryMessage) Type() Type { return GetPromiseEntryMessageType }
func (m *GetPromiseEntryMessage) Completed() bool {
	return m.Value != nil || m.Failure != nil
}
func (m *GetPromiseEntryMessage) complete(r CompletionResult) {
	m.Value, m.Failure = r.Value, r.Failure
}

type PeekPromiseEntryMessage struct {
	protocol.PeekPromiseEntryMessage
}

func (*PeekPromiseEntryMessage) Type() Type { return PeekPromiseEntryMessageType }
func (m *PeekPromiseEntryMessage) Completed() bool {
	return m.HasZero || m.Value != nil || m.Failure != nil
}
func (m *PeekPromiseEntryMessage) complete(r CompletionResult) {
	m.HasZero, m.Value, m.Failure = r.Empty, r.Value, r.Failure
}

type CompletePromiseEntryMessage struct {
	protocol.CompletePromiseEntryMessage
	completed bool
}

func (*CompletePromiseEntryMessage) Type() Type { return CompletePromiseEntryMessageType }
func (m *CompletePromiseEntryMessage) Completed() bool {
	return m.Failure != nil || m.completed
}
func (m *CompletePromiseEntryMessage) complete(r CompletionResult) {
	m.Failure = r.Failure
	m.completed = true
}

type SleepEntryMessage struct {
	protocol.SleepEntryMessage
}

func (*SleepEntryMessage) Type() Type { return SleepEntryMessageType }
func (m *SleepEntryMessage) Completed() bool {
	return m.HasZero || m.Failure != nil
}
func (m *SleepEntryMessage) complete(r CompletionResult) {
	m.HasZero, m.Failure = true, r.Failure
}

type CallEntryMessage struct {
	protocol.CallEntryMessage
}

func (*CallEntryMessage) Type() Type { return CallEntryMessageType }
func (m *CallEntryMessage) Completed() bool {
	return m.Value != nil || m.Failure != nil
}
func (m *CallEntryMessage) complete(r CompletionResult) {
	m.Value, m.Failure = r.Value, r.Failure
}

type OneWayCallEntryMessage struct {
	protocol.OneWayCallEntryMessage
}

func (*OneWayCallEntryMessage) Type() Type { return OneWayCallEntryMessageType }

type AwakeableEntryMessage struct {
	protocol.AwakeableEntryMessage
}

func (*AwakeableEntryMessage) Type() Type { return AwakeableEntryMessageType }
func (m *AwakeableEntryMessage) Completed() bool {
	return m.Value != nil || m.Failure != nil
}
func (m *AwakeableEntryMessage) complete(r CompletionResult) {
	m.Value, m.Failure = r.Value, r.Failure
}

type CompleteAwakeableEntryMessage struct {
	protocol.CompleteAwakeableEntryMessage
}

func (*CompleteAwakeableEntryMessage) Type() Type { return CompleteAwakeableEntryMessageType }

type RunEntryMessage struct {
	protocol.RunEntryMessage
}

func (*RunEntryMessage) Type() Type { return RunEntryMessageType }

type CombinatorEntryMessage struct {
	protocol.CombinatorEntryMessage
}

func (*CombinatorEntryMessage) Type() Type { return CombinatorEntryMessageType }

// CustomEntryMessage preserves an unrecognized entry's raw payload
// verbatim, per §4.A's forward-compatibility contract.
type CustomEntryMessage struct {
	typ     Type
	Payload []byte
}

func (m *CustomEntryMessage) Type() Type { return m.typ }
