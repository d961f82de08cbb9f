package wire

import (
	"bytes"
	"testing"

	"github.com/restatedev/sdk-go/internal/generated/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	p := NewProtocol(nil, &buf)

	in := &StartMessage{StartMessage: protocol.StartMessage{
		Id:           []byte("inv-1"),
		DebugId:      "inv-1-debug",
		KnownEntries: 1,
		Key:          "my-key",
	}}
	require.NoError(t, p.Write(in))

	out, err := p.Read()
	require.NoError(t, err)

	got, ok := out.(*StartMessage)
	require.True(t, ok)
	assert.Equal(t, in.Id, got.Id)
	assert.Equal(t, in.DebugId, got.DebugId)
	assert.Equal(t, in.Key, got.Key)
}

func TestProtocolWriteSetsCompletedFlag(t *testing.T) {
	var buf bytes.Buffer
	p := NewProtocol(nil, &buf)

	// a GetState entry that already carries a value must be written
	// with FlagCompleted set in its frame header.
	entry := &GetStateEntryMessage{GetStateEntryMessage: protocol.GetStateEntryMessage{
		Key:   []byte("k"),
		Value: []byte("v"),
	}}
	require.NoError(t, p.Write(entry))

	header := buf.Bytes()[:frameHeaderLen]
	flags := uint16(header[2])<<8 | uint16(header[3])
	assert.NotZero(t, flags&FlagCompleted)
}

func TestProtocolReadUnknownTypePreservesPayload(t *testing.T) {
	var buf bytes.Buffer
	p := NewProtocol(nil, &buf)

	custom := &CustomEntryMessage{typ: Type(0xfeff), Payload: []byte("opaque")}
	require.NoError(t, p.Write(custom))

	out, err := p.Read()
	require.NoError(t, err)
	got, ok := out.(*CustomEntryMessage)
	require.True(t, ok)
	assert.Equal(t, custom.typ, got.typ)
	assert.Equal(t, custom.Payload, got.Payload)
}

func TestProtocolReadMalformedFrameIsDecodeError(t *testing.T) {
	var buf bytes.Buffer
	p := NewProtocol(nil, &buf)

	var header [frameHeaderLen]byte
	header[0], header[1] = 0x0c, 0x01 // CallEntryMessageType
	header[7] = 3                     // length=3, garbage protobuf bytes
	buf.Write(header[:])
	buf.Write([]byte{0xff, 0xff, 0xff})

	_, err := p.Read()
	require.Error(t, err)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestTypeIsEntry(t *testing.T) {
	assert.False(t, StartMessageType.IsEntry())
	assert.False(t, EndMessageType.IsEntry())
	assert.True(t, InputEntryMessageType.IsEntry())
	assert.True(t, CallEntryMessageType.IsEntry())
}
