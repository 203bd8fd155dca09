package wire

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

const (
	// HeaderSize is the fixed length of the message header in bytes.
	HeaderSize = 24
	// Version is the protocol version string carried in every header.
	Version = "1.19"
	// relayHeaderSize is the length of the relay header the controller
	// prepends to uncompressed bodies and to every block fragment.
	relayHeaderSize = 8
)

// Message is one OmniLogic datagram: a fixed 24-byte big-endian header
// followed by the raw payload bytes.
//
// Header layout: u32 message ID, u64 unix timestamp, 4 ASCII version bytes,
// u32 message type, client type byte, reserved byte, compressed flag byte,
// reserved byte.
type Message struct {
	ID         uint32
	Timestamp  uint64
	Version    string
	Type       Type
	ClientType ClientType
	// compressed mirrors the raw header flag. Use Compressed to test for
	// payload compression, it accounts for types that lie in the header.
	compressed bool

	Payload []byte
}

// NewMessage creates an outgoing message. A non-empty XML body selects the
// XML client type and gains the null terminator the controller expects;
// bodiless messages are sent as the simple client type.
func NewMessage(id uint32, t Type, body []byte) *Message {
	msg := &Message{
		ID:        id,
		Timestamp: uint64(time.Now().Unix()),
		Version:   Version,
		Type:      t,
	}
	if len(body) > 0 {
		msg.ClientType = ClientXML
		msg.Payload = append(append([]byte{}, body...), 0)
	} else {
		msg.ClientType = ClientSimple
	}

	return msg
}

// Compressed reports whether the payload is zlib-compressed. Telemetry
// updates are always compressed even though the header flag reads zero.
func (m *Message) Compressed() bool {
	return m.compressed || m.Type == TypeMSPTelemetryUpdate
}

// SetCompressed overrides the header compression flag, used by the offline
// decoder when synthesizing frames.
func (m *Message) SetCompressed(c bool) {
	m.compressed = c
}

// Encode serializes the message for UDP transmission.
func (m *Message) Encode() []byte {
	buf := make([]byte, HeaderSize, HeaderSize+len(m.Payload))
	binary.BigEndian.PutUint32(buf[0:4], m.ID)
	binary.BigEndian.PutUint64(buf[4:12], m.Timestamp)
	version := m.Version
	if version == "" {
		version = Version
	}
	copy(buf[12:16], version)
	binary.BigEndian.PutUint32(buf[16:20], uint32(m.Type))
	buf[20] = byte(m.ClientType)
	buf[21] = 0
	if m.compressed {
		buf[22] = 1
	}
	buf[23] = 0

	return append(buf, m.Payload...)
}

// Decode parses a received datagram. The message type is preserved
// numerically even when it is not in the registry, so unknown controller
// messages still round-trip.
func Decode(data []byte) (*Message, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrShortMessage, len(data))
	}

	msg := &Message{
		ID:         binary.BigEndian.Uint32(data[0:4]),
		Timestamp:  binary.BigEndian.Uint64(data[4:12]),
		Version:    string(data[12:16]),
		Type:       Type(binary.BigEndian.Uint32(data[16:20])),
		ClientType: ClientType(data[20]),
		compressed: data[22] != 0,
	}
	if len(data) > HeaderSize {
		msg.Payload = append([]byte{}, data[HeaderSize:]...)
	}

	return msg, nil
}

// Body returns the decoded message body: the relay header stripped for
// uncompressed payloads, the zlib stream inflated for compressed ones, and
// trailing null terminators trimmed in both cases.
func (m *Message) Body() ([]byte, error) {
	if m.Compressed() {
		inflated, err := inflate(m.Payload)
		if err != nil {
			return nil, err
		}
		return trimNull(inflated), nil
	}

	payload := m.Payload
	if len(payload) >= relayHeaderSize {
		payload = payload[relayHeaderSize:]
	}

	return trimNull(payload), nil
}

// RawBody returns the payload with only the null terminator trimmed, for
// messages whose body is plain XML with no relay header, such as lead
// messages and our own requests.
func (m *Message) RawBody() []byte {
	return trimNull(m.Payload)
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrMessageFormat, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", ErrMessageFormat, err)
	}

	return out, nil
}

func trimNull(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}
