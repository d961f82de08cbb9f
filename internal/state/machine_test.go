package state

import (
	"context"
	"net"
	"testing"
	"time"

	restate "github.com/restatedev/sdk-go"
	"github.com/restatedev/sdk-go/internal/generated/protocol"
	"github.com/restatedev/sdk-go/internal/wire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoHandler struct{}

func (echoHandler) Call(_ restate.Context, input []byte) ([]byte, error) { return input, nil }

func TestMachineStartEchoesInputToOutput(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	m := NewMachine(echoHandler{}, serverConn)
	client := wire.NewProtocol(nil, clientConn)

	done := make(chan error, 1)
	go func() { done <- m.Start(context.Background(), "echo/call") }()

	require.NoError(t, client.Write(&wire.StartMessage{StartMessage: protocol.StartMessage{
		Id: []byte("inv-1"), DebugId: "inv-1", KnownEntries: 1,
	}}))
	require.NoError(t, client.Write(&wire.InputEntryMessage{InputEntryMessage: protocol.InputEntryMessage{
		Value: []byte("hello"),
	}}))

	out, err := readOutput(t, client)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out.Value)
	assert.Nil(t, out.Failure)

	// Start writes End after Output; net.Pipe is unbuffered, so that
	// frame has to be read before Start can return.
	end, err := client.Read()
	require.NoError(t, err)
	assert.IsType(t, &wire.EndMessage{}, end)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Machine.Start did not return")
	}
}

type failingHandler struct{ err error }

func (h failingHandler) Call(_ restate.Context, _ []byte) ([]byte, error) { return nil, h.err }

func TestMachineStartWritesFailureOutputForTerminalError(t *testing.T) {
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	m := NewMachine(failingHandler{err: restate.TerminalError(assertError("boom"))}, serverConn)
	client := wire.NewProtocol(nil, clientConn)

	go m.Start(context.Background(), "fails/call")

	require.NoError(t, client.Write(&wire.StartMessage{StartMessage: protocol.StartMessage{
		Id: []byte("inv-1"), KnownEntries: 1,
	}}))
	require.NoError(t, client.Write(&wire.InputEntryMessage{}))

	out, err := readOutput(t, client)
	require.NoError(t, err)
	require.NotNil(t, out.Failure)
	assert.Equal(t, "boom", out.Failure.Message)
}

type assertError string

func (e assertError) Error() string { return string(e) }

// readOutput reads frames off client until an OutputEntryMessage
// arrives or the deadline expires, skipping anything else.
func readOutput(t *testing.T, client *wire.Protocol) (*wire.OutputEntryMessage, error) {
	t.Helper()
	type result struct {
		msg *wire.OutputEntryMessage
		err error
	}
	ch := make(chan result, 1)
	go func() {
		for {
			msg, err := client.Read()
			if err != nil {
				ch <- result{err: err}
				return
			}
			if typed, ok := msg.(*wire.OutputEntryMessage); ok {
				ch <- result{msg: typed}
				return
			}
		}
	}()
	select {
	case r := <-ch:
		return r.msg, r.err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for expected message")
		return nil, nil
	}
}
