package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/restatedev/sdk-go/internal/generated/protocol"

	"github.com/rs/zerolog"
)

// ErrUnexpectedMessage is returned by Builder/Machine code when a
// message arrives out of the sequence the protocol requires
// (spec.md §7 item 2, "Builder sequence").
var ErrUnexpectedMessage = fmt.Errorf("wire: unexpected message")

// frameHeaderLen is the length, in bytes, of the fixed frame header
// described in spec.md §4.A: {type: u16, flags: u16, length: u32}.
const frameHeaderLen = 8

// Protocol is the bidirectional framed codec of spec.md §4.A. It owns
// buffered reads off conn and writes frames out synchronously; callers
// serialize their own writes (the state machine holds a mutex around
// outbound sends, per §5).
type Protocol struct {
	log  *zerolog.Logger
	r    *bufio.Reader
	w    io.Writer
}

// NewProtocol constructs a Protocol over a full-duplex connection,
// mirroring the teacher's state.NewMachine(handler, conn) constructor
// pattern.
func NewProtocol(log *zerolog.Logger, conn io.ReadWriter) *Protocol {
	return &Protocol{
		log: log,
		r:   bufio.NewReader(conn),
		w:   conn,
	}
}

// Read blocks for the next frame and decodes it into its Message.
func (p *Protocol) Read() (Message, error) {
	var header [frameHeaderLen]byte
	if _, err := io.ReadFull(p.r, header[:]); err != nil {
		return nil, err
	}

	typ := Type(binary.BigEndian.Uint16(header[0:2]))
	flags := binary.BigEndian.Uint16(header[2:4])
	length := binary.BigEndian.Uint32(header[4:8])

	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(p.r, payload); err != nil {
			return nil, err
		}
	}

	msg, err := decode(typ, flags, payload)
	if err != nil {
		return nil, &DecodeError{Type: typ, Err: err}
	}
	return msg, nil
}

// Write encodes and flushes message as a single frame.
func (p *Protocol) Write(message Message) error {
	typ := message.Type()
	var flags uint16
	if cm, ok := message.(CompleteableMessage); ok && cm.Completed() {
		flags |= FlagCompleted
	}

	payload, err := encode(message)
	if err != nil {
		return err
	}

	var header [frameHeaderLen]byte
	binary.BigEndian.PutUint16(header[0:2], uint16(typ))
	binary.BigEndian.PutUint16(header[2:4], flags)
	binary.BigEndian.PutUint32(header[4:8], uint32(len(payload)))

	if _, err := p.w.Write(header[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := p.w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

// DecodeError is the terminal decode error of spec.md §7 item 1.
type DecodeError struct {
	Type Type
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wire: malformed frame of type %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decode(typ Type, flags uint16, payload []byte) (Message, error) {
	switch typ {
	case StartMessageType:
		m, err := protocol.DecodeStartMessage(payload)
		return &StartMessage{*m}, err
	case CompletionMessageType:
		m, err := protocol.DecodeCompletionMessage(payload)
		return &CompletionMessage{*m}, err
	case SuspensionMessageType:
		m, err := protocol.DecodeSuspensionMessage(payload)
		return &SuspensionMessage{*m}, err
	case ErrorMessageType:
		m, err := protocol.DecodeErrorMessage(payload)
		return &ErrorMessage{*m}, err
	case EntryAckMessageType:
		m, err := protocol.DecodeEntryAckMessage(payload)
		return &EntryAckMessage{*m}, err
	case EndMessageType:
		m, err := protocol.DecodeEndMessage(payload)
		return &EndMessage{*m}, err
	case InputEntryMessageType:
		m, err := protocol.DecodeInputEntryMessage(payload)
		return &InputEntryMessage{*m}, err
	case OutputEntryMessageType:
		m, err := protocol.DecodeOutputEntryMessage(payload)
		return &OutputEntryMessage{*m}, err
	case GetStateEntryMessageType:
		m, err := protocol.DecodeGetStateEntryMessage(payload)
		return &GetStateEntryMessage{*m}, err
	case SetStateEntryMessageType:
		m, err := protocol.DecodeSetStateEntryMessage(payload)
		return &SetStateEntryMessage{*m}, err
	case ClearStateEntryMessageType:
		m, err := protocol.DecodeClearStateEntryMessage(payload)
		return &ClearStateEntryMessage{*m}, err
	case ClearAllStateEntryMessageType:
		m, err := protocol.DecodeClearAllStateEntryMessage(payload)
		return &ClearAllStateEntryMessage{*m}, err
	case GetStateKeysEntryMessageType:
		m, err := protocol.DecodeGetStateKeysEntryMessage(payload)
		return &GetStateKeysEntryMessage{*m}, err
	case GetPromiseEntryMessageType:
		m, err := protocol.DecodeGetPromiseEntryMessage(payload)
		return &GetPromiseEntryMessage{*m}, err
	case PeekPromiseEntryMessageType:
		m, err := protocol.DecodePeekPromiseEntryMessage(payload)
		return &PeekPromiseEntryMessage{*m}, err
	case CompletePromiseEntryMessageType:
		m, err := protocol.DecodeCompletePromiseEntryMessage(payload)
		w := &CompletePromiseEntryMessage{CompletePromiseEntryMessage: *m}
		w.completed = flags&FlagCompleted != 0
		return w, err
	case SleepEntryMessageType:
		m, err := protocol.DecodeSleepEntryMessage(payload)
		return &SleepEntryMessage{*m}, err
	case CallEntryMessageType:
		m, err := protocol.DecodeCallEntryMessage(payload)
		return &CallEntryMessage{*m}, err
	case OneWayCallEntryMessageType:
		m, err := protocol.DecodeOneWayCallEntryMessage(payload)
		return &OneWayCallEntryMessage{*m}, err
	case AwakeableEntryMessageType:
		m, err := protocol.DecodeAwakeableEntryMessage(payload)
		return &AwakeableEntryMessage{*m}, err
	case CompleteAwakeableEntryMessageType:
		m, err := protocol.DecodeCompleteAwakeableEntryMessage(payload)
		return &CompleteAwakeableEntryMessage{*m}, err
	case RunEntryMessageType:
		m, err := protocol.DecodeRunEntryMessage(payload)
		return &RunEntryMessage{*m}, err
	case CombinatorEntryMessageType:
		m, err := protocol.DecodeCombinatorEntryMessage(payload)
		return &CombinatorEntryMessage{*m}, err
	default:
		// unknown message types are preserved as opaque entries,
		// per §4.A.
		return &CustomEntryMessage{typ: typ, Payload: payload}, nil
	}
}

func encode(message Message) ([]byte, error) {
	switch m := message.(type) {
	case *StartMessage:
		return m.StartMessage.Encode(), nil
	case *CompletionMessage:
		return m.CompletionMessage.Encode(), nil
	case *SuspensionMessage:
		return m.SuspensionMessage.Encode(), nil
	case *ErrorMessage:
		return m.ErrorMessage.Encode(), nil
	case *EntryAckMessage:
		return m.EntryAckMessage.Encode(), nil
	case *EndMessage:
		return m.EndMessage.Encode(), nil
	case *InputEntryMessage:
		return m.InputEntryMessage.Encode(), nil
	case *OutputEntryMessage:
		return m.OutputEntryMessage.Encode(), nil
	case *GetStateEntryMessage:
		return m.GetStateEntryMessage.Encode(), nil
	case *SetStateEntryMessage:
		return m.SetStateEntryMessage.Encode(), nil
	case *ClearStateEntryMessage:
		return m.ClearStateEntryMessage.Encode(), nil
	case *ClearAllStateEntryMessage:
		return m.ClearAllStateEntryMessage.Encode(), nil
	case *GetStateKeysEntryMessage:
		return m.GetStateKeysEntryMessage.Encode(), nil
	case *GetPromiseEntryMessage:
		return m.GetPromiseEntryMessage.Encode(), nil
	case *PeekPromiseEntryMessage:
		return m.PeekPromiseEntryMessage.Encode(), nil
	case *CompletePromiseEntryMessage:
		return m.CompletePromiseEntryMessage.Encode(), nil
	case *SleepEntryMessage:
		return m.SleepEntryMessage.Encode(), nil
	case *CallEntryMessage:
		return m.CallEntryMessage.Encode(), nil
	case *OneWayCallEntryMessage:
		return m.OneWayCallEntryMessage.Encode(), nil
	case *AwakeableEntryMessage:
		return m.AwakeableEntryMessage.Encode(), nil
	case *CompleteAwakeableEntryMessage:
		return m.CompleteAwakeableEntryMessage.Encode(), nil
	case *RunEntryMessage:
		return m.RunEntryMessage.Encode(), nil
	case *CombinatorEntryMessage:
		return m.CombinatorEntryMessage.Encode(), nil
	case *CustomEntryMessage:
		return m.Payload, nil
	default:
		return nil, fmt.Errorf("wire: cannot encode message of type %T", message)
	}
}

// Complete merges a runtime completion result onto a previously
// emitted completable entry, flipping its completion flag in place.
// This is the codec's write-completion operation (spec.md §4.A).
func Complete(entry CompleteableMessage, result CompletionResult) {
	entry.complete(result)
}
