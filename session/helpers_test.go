package session

import (
	"bytes"
	"compress/zlib"
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/poollink/go-omnilogic/wire"
)

// fakeController is a scripted UDP peer standing in for a pool controller.
type fakeController struct {
	t    *testing.T
	conn *net.UDPConn
	peer *net.UDPAddr
}

func newFakeController(t *testing.T) *fakeController {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &fakeController{t: t, conn: conn}
}

func (f *fakeController) port() int {
	return f.conn.LocalAddr().(*net.UDPAddr).Port
}

// readRaw returns the next raw datagram, remembering the peer address.
func (f *fakeController) readRaw(timeout time.Duration) ([]byte, error) {
	buf := make([]byte, 65536)
	_ = f.conn.SetReadDeadline(time.Now().Add(timeout))
	n, addr, err := f.conn.ReadFromUDP(buf)
	if err != nil {
		return nil, err
	}
	f.peer = addr

	return append([]byte{}, buf[:n]...), nil
}

// readMsg returns the next decoded message from the session under test.
func (f *fakeController) readMsg(timeout time.Duration) (*wire.Message, error) {
	raw, err := f.readRaw(timeout)
	if err != nil {
		return nil, err
	}

	return wire.Decode(raw)
}

// expectMsg fails the test when no message of the wanted type arrives.
func (f *fakeController) expectMsg(want wire.Type, timeout time.Duration) *wire.Message {
	f.t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		remain := time.Until(deadline)
		if remain <= 0 {
			f.t.Fatalf("no %s message within %v", want.String(), timeout)
		}
		msg, err := f.readMsg(remain)
		if err != nil {
			f.t.Fatalf("reading %s message: %v", want.String(), err)
		}
		if msg.Type == want {
			return msg
		}
	}
}

func (f *fakeController) send(msg *wire.Message) {
	f.t.Helper()
	require.NotNil(f.t, f.peer, "no request seen yet")

	_, err := f.conn.WriteToUDP(msg.Encode(), f.peer)
	require.NoError(f.t, err)
}

// sendAck acknowledges the given request message.
func (f *fakeController) sendAck(forID uint32) {
	f.send(wire.NewMessage(forID, wire.TypeAck, nil))
}

// dataFrame builds a single-frame uncompressed response with the 8-byte
// relay header the controller prepends.
func dataFrame(id uint32, t wire.Type, body string) *wire.Message {
	payload := append(make([]byte, 8), []byte(body+"\x00")...)
	return &wire.Message{ID: id, Type: t, Version: wire.Version, Payload: payload}
}

// telemetryFrame builds a compressed telemetry push frame.
func telemetryFrame(t *testing.T, id uint32, body string) *wire.Message {
	t.Helper()

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &wire.Message{ID: id, Type: wire.TypeMSPTelemetryUpdate, Version: wire.Version, Payload: buf.Bytes()}
}

// leadFrame builds a lead message announcing blocks fragments.
func leadFrame(id uint32, blocks, size int) *wire.Message {
	body := fmt.Sprintf(`<Response><Name>LeadMessage</Name><Parameters>`+
		`<Parameter name="SourceOpId" dataType="int">0</Parameter>`+
		`<Parameter name="MsgSize" dataType="int">%d</Parameter>`+
		`<Parameter name="MsgBlockCount" dataType="int">%d</Parameter>`+
		`<Parameter name="Type" dataType="int">0</Parameter>`+
		`</Parameters></Response>`, size, blocks)

	return &wire.Message{ID: id, Type: wire.TypeMSPLeadMessage, Version: wire.Version, Payload: []byte(body + "\x00")}
}

// blockFrame builds one fragment with its 8-byte relay header.
func blockFrame(id uint32, body string) *wire.Message {
	return &wire.Message{
		ID:      id,
		Type:    wire.TypeMSPBlockMessage,
		Version: wire.Version,
		Payload: append(make([]byte, 8), []byte(body)...),
	}
}

// testSession opens a session against the fake controller with short
// timeouts suited to tests.
func testSession(t *testing.T, f *fakeController, extra ...Option) *Session {
	t.Helper()

	opts := append([]Option{
		WithPort(f.port()),
		WithAckTimeout(100 * time.Millisecond),
		WithResponseTimeout(2 * time.Second),
	}, extra...)

	cfg, err := NewConfig("127.0.0.1", opts...)
	require.NoError(t, err)

	sess := NewSession(context.Background(), cfg)
	require.NoError(t, sess.Open())
	t.Cleanup(func() { _ = sess.Close() })

	return sess
}
