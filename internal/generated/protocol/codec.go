package protocol

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// This file hand-implements protobuf wire encoding for the structs in
// messages.go using google.golang.org/protobuf/encoding/protowire
// directly, field by field, rather than through protoc-gen-go
// generated reflection. Each Encode/Decode pair below is grounded on
// the field-number assignments used by the Restate service-protocol
// wire format. A CompletionMessage carries its result under the same
// tags the completable entries use for theirs (13 empty, 14 value,
// 15 failure), as in the original codec (see restate-sdk-rust's
// crates/service-protocol/src/codec.rs); internal/wire merges a
// decoded completion onto its entry struct (wire.Complete), not at
// the byte level.

func appendFailure(b []byte, num protowire.Number, f *Failure) []byte {
	if f == nil {
		return b
	}
	inner := protowire.AppendTag(nil, 1, protowire.VarintType)
	inner = protowire.AppendVarint(inner, uint64(f.Code))
	inner = protowire.AppendTag(inner, 2, protowire.BytesType)
	inner = protowire.AppendString(inner, f.Message)

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func consumeFailure(b []byte) (*Failure, error) {
	f := &Failure{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f.Code = uint32(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f.Message = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return f, nil
}

func (m *StartMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Id)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, m.DebugId)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.KnownEntries))
	for _, e := range m.StateMap {
		inner := protowire.AppendTag(nil, 1, protowire.BytesType)
		inner = protowire.AppendBytes(inner, e.Key)
		inner = protowire.AppendTag(inner, 2, protowire.BytesType)
		inner = protowire.AppendBytes(inner, e.Value)
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	b = protowire.AppendTag(b, 5, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(m.Partial))
	b = protowire.AppendTag(b, 6, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	b = protowire.AppendTag(b, 8, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.RetryCountSinceLastStored))
	return b
}

func DecodeStartMessage(b []byte) (*StartMessage, error) {
	m := &StartMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Id = append([]byte(nil), v...)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.DebugId = string(v)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.KnownEntries = uint32(v)
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			entry, err := decodeStateEntry(v)
			if err != nil {
				return nil, err
			}
			m.StateMap = append(m.StateMap, entry)
			b = b[n:]
		case 5:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Partial = protowire.DecodeBool(v)
			b = b[n:]
		case 6:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = string(v)
			b = b[n:]
		case 8:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.RetryCountSinceLastStored = uint32(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func decodeStateEntry(b []byte) (StateEntry, error) {
	e := StateEntry{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return e, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return e, protowire.ParseError(n)
			}
			e.Key = append([]byte(nil), v...)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return e, protowire.ParseError(n)
			}
			e.Value = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return e, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return e, nil
}

func (m *CompletionMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.EntryIndex))
	switch {
	case m.Failure != nil:
		b = appendFailure(b, 15, m.Failure)
	case m.Value != nil:
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	default:
		b = protowire.AppendTag(b, 13, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

func DecodeCompletionMessage(b []byte) (*CompletionMessage, error) {
	m := &CompletionMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.EntryIndex = uint32(v)
			b = b[n:]
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		case 13:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.HasEmpty = protowire.DecodeBool(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *SuspensionMessage) Encode() []byte {
	var b []byte
	for _, idx := range m.EntryIndexes {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(idx))
	}
	return b
}

func DecodeSuspensionMessage(b []byte) (*SuspensionMessage, error) {
	m := &SuspensionMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.EntryIndexes = append(m.EntryIndexes, uint32(v))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *ErrorMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Code))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, m.Message)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendString(b, m.Description)
	if m.RelatedEntryIndex != nil {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*m.RelatedEntryIndex))
	}
	if m.RelatedEntryType != nil {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(*m.RelatedEntryType))
	}
	if m.RelatedEntryName != nil {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, *m.RelatedEntryName)
	}
	return b
}

func DecodeErrorMessage(b []byte) (*ErrorMessage, error) {
	m := &ErrorMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Code = uint32(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Message = string(v)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Description = string(v)
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			idx := uint32(v)
			m.RelatedEntryIndex = &idx
			b = b[n:]
		case 5:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			ty := uint32(v)
			m.RelatedEntryType = &ty
			b = b[n:]
		case 6:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			s := string(v)
			m.RelatedEntryName = &s
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *EntryAckMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.EntryIndex))
	return b
}

func DecodeEntryAckMessage(b []byte) (*EntryAckMessage, error) {
	m := &EntryAckMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.EntryIndex = uint32(v)
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
	}
	return m, nil
}

func (m *EndMessage) Encode() []byte { return nil }

func DecodeEndMessage(b []byte) (*EndMessage, error) {
	if len(b) != 0 {
		// unknown trailing fields are tolerated per the codec's
		// forward-compatibility contract
	}
	return &EndMessage{}, nil
}

func (m *InputEntryMessage) Encode() []byte {
	var b []byte
	for _, h := range m.Headers {
		inner := protowire.AppendTag(nil, 1, protowire.BytesType)
		inner = protowire.AppendString(inner, h.Key)
		inner = protowire.AppendTag(inner, 2, protowire.BytesType)
		inner = protowire.AppendString(inner, h.Value)
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Value)
	return b
}

func DecodeInputEntryMessage(b []byte) (*InputEntryMessage, error) {
	m := &InputEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			h, err := decodeHeader(v)
			if err != nil {
				return nil, err
			}
			m.Headers = append(m.Headers, h)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func decodeHeader(b []byte) (Header, error) {
	h := Header{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return h, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return h, protowire.ParseError(n)
			}
			h.Key = string(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return h, protowire.ParseError(n)
			}
			h.Value = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return h, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return h, nil
}

func (m *OutputEntryMessage) Encode() []byte {
	var b []byte
	if m.Failure != nil {
		b = appendFailure(b, 15, m.Failure)
	} else {
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func DecodeOutputEntryMessage(b []byte) (*OutputEntryMessage, error) {
	m := &OutputEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *GetStateEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Key)
	switch {
	case m.Failure != nil:
		b = appendFailure(b, 15, m.Failure)
	case m.HasZero:
		b = protowire.AppendTag(b, 13, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	case m.Value != nil:
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func DecodeGetStateEntryMessage(b []byte) (*GetStateEntryMessage, error) {
	m := &GetStateEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = append([]byte(nil), v...)
			b = b[n:]
		case 13:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.HasZero = protowire.DecodeBool(v)
			b = b[n:]
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *SetStateEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Key)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Value)
	return b
}

func DecodeSetStateEntryMessage(b []byte) (*SetStateEntryMessage, error) {
	m := &SetStateEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = append([]byte(nil), v...)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *ClearStateEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Key)
	return b
}

func DecodeClearStateEntryMessage(b []byte) (*ClearStateEntryMessage, error) {
	m := &ClearStateEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = append([]byte(nil), v...)
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
	}
	return m, nil
}

func (m *ClearAllStateEntryMessage) Encode() []byte { return nil }

func DecodeClearAllStateEntryMessage(b []byte) (*ClearAllStateEntryMessage, error) {
	return &ClearAllStateEntryMessage{}, nil
}

func (m *GetStateKeysEntryMessage) Encode() []byte {
	var b []byte
	switch {
	case m.Failure != nil:
		b = appendFailure(b, 15, m.Failure)
	case m.Value != nil:
		inner := make([]byte, 0, 16)
		for _, k := range m.Value.Keys {
			inner = protowire.AppendTag(inner, 1, protowire.BytesType)
			inner = protowire.AppendBytes(inner, k)
		}
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	return b
}

func DecodeGetStateKeysEntryMessage(b []byte) (*GetStateKeysEntryMessage, error) {
	m := &GetStateKeysEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			sk, err := decodeStateKeys(v)
			if err != nil {
				return nil, err
			}
			m.Value = sk
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

// DecodeStateKeysValue decodes the raw bytes of a GetStateKeys
// completion result (the StateKeys submessage) into its keys.
func DecodeStateKeysValue(b []byte) (*GetStateKeysEntryMessage_StateKeys, error) {
	return decodeStateKeys(b)
}

func decodeStateKeys(b []byte) (*GetStateKeysEntryMessage_StateKeys, error) {
	sk := &GetStateKeysEntryMessage_StateKeys{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		if num == 1 {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			sk.Keys = append(sk.Keys, append([]byte(nil), v...))
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
	}
	return sk, nil
}

func (m *GetPromiseEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	switch {
	case m.Failure != nil:
		b = appendFailure(b, 15, m.Failure)
	case m.Value != nil:
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func DecodeGetPromiseEntryMessage(b []byte) (*GetPromiseEntryMessage, error) {
	m := &GetPromiseEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = string(v)
			b = b[n:]
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *PeekPromiseEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	switch {
	case m.Failure != nil:
		b = appendFailure(b, 15, m.Failure)
	case m.HasZero:
		b = protowire.AppendTag(b, 13, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	case m.Value != nil:
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func DecodePeekPromiseEntryMessage(b []byte) (*PeekPromiseEntryMessage, error) {
	m := &PeekPromiseEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = string(v)
			b = b[n:]
		case 13:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.HasZero = protowire.DecodeBool(v)
			b = b[n:]
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *CompletePromiseEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	if m.CompletionError != nil {
		b = appendFailure(b, 3, m.CompletionError)
	} else {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.CompletionValue)
	}
	if m.Failure != nil {
		b = appendFailure(b, 15, m.Failure)
	}
	return b
}

func DecodeCompletePromiseEntryMessage(b []byte) (*CompletePromiseEntryMessage, error) {
	m := &CompletePromiseEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = string(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.CompletionValue = append([]byte(nil), v...)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.CompletionError = f
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *SleepEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, m.WakeUpTime)
	if m.Failure != nil {
		b = appendFailure(b, 15, m.Failure)
	} else if m.HasZero {
		b = protowire.AppendTag(b, 13, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

func DecodeSleepEntryMessage(b []byte) (*SleepEntryMessage, error) {
	m := &SleepEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.WakeUpTime = v
			b = b[n:]
		case 13:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.HasZero = protowire.DecodeBool(v)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *CallEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, m.ServiceName)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, m.HandlerName)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Parameter)
	b = protowire.AppendTag(b, 4, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	switch {
	case m.Failure != nil:
		b = appendFailure(b, 15, m.Failure)
	case m.Value != nil:
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func DecodeCallEntryMessage(b []byte) (*CallEntryMessage, error) {
	m := &CallEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.ServiceName = string(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.HandlerName = string(v)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Parameter = append([]byte(nil), v...)
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = string(v)
			b = b[n:]
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *OneWayCallEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, m.ServiceName)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, m.HandlerName)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Parameter)
	b = protowire.AppendTag(b, 4, protowire.BytesType)
	b = protowire.AppendString(b, m.Key)
	b = protowire.AppendTag(b, 5, protowire.VarintType)
	b = protowire.AppendVarint(b, m.InvokeTime)
	return b
}

func DecodeOneWayCallEntryMessage(b []byte) (*OneWayCallEntryMessage, error) {
	m := &OneWayCallEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.ServiceName = string(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.HandlerName = string(v)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Parameter = append([]byte(nil), v...)
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Key = string(v)
			b = b[n:]
		case 5:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.InvokeTime = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *AwakeableEntryMessage) Encode() []byte {
	var b []byte
	switch {
	case m.Failure != nil:
		b = appendFailure(b, 15, m.Failure)
	case m.Value != nil:
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func DecodeAwakeableEntryMessage(b []byte) (*AwakeableEntryMessage, error) {
	m := &AwakeableEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *CompleteAwakeableEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, m.Id)
	if m.CompletionError != nil {
		b = appendFailure(b, 3, m.CompletionError)
	} else {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.CompletionValue)
	}
	return b
}

func DecodeCompleteAwakeableEntryMessage(b []byte) (*CompleteAwakeableEntryMessage, error) {
	m := &CompleteAwakeableEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Id = string(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.CompletionValue = append([]byte(nil), v...)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.CompletionError = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *RunEntryMessage) Encode() []byte {
	var b []byte
	if m.Failure != nil {
		b = appendFailure(b, 15, m.Failure)
	} else {
		b = protowire.AppendTag(b, 14, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Value)
	}
	return b
}

func DecodeRunEntryMessage(b []byte) (*RunEntryMessage, error) {
	m := &RunEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 14:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.Value = append([]byte(nil), v...)
			b = b[n:]
		case 15:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			f, err := consumeFailure(v)
			if err != nil {
				return nil, err
			}
			m.Failure = f
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func (m *CombinatorEntryMessage) Encode() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.CombinatorId))
	for _, idx := range m.JournalEntriesOrder {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(idx))
	}
	return b
}

func DecodeCombinatorEntryMessage(b []byte) (*CombinatorEntryMessage, error) {
	m := &CombinatorEntryMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.CombinatorId = uint32(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			m.JournalEntriesOrder = append(m.JournalEntriesOrder, uint32(v))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return m, nil
}

// ErrDecode wraps a decode failure with the offending message name.
type ErrDecode struct {
	Message string
	Err     error
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("protocol: decode %s: %v", e.Message, e.Err)
}

func (e *ErrDecode) Unwrap() error { return e.Err }
