// Package pcapdump decodes captured controller traffic offline. Captures
// are stored as length-prefixed record streams, one raw UDP datagram per
// record, and replayed through the same frame codec and fragment assembler
// the live session uses. Multi-block transfers are reassembled and inflated
// so a capture reads as a sequence of whole XML documents.
package pcapdump

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/poollink/go-omnilogic/wire"
)

// maxRecordSize bounds a single record to reject corrupt streams early.
const maxRecordSize = 1 << 20

// ErrRecordFormat indicates a corrupt record stream.
var ErrRecordFormat = fmt.Errorf("malformed capture record")

// Writer appends raw datagrams to a capture stream.
type Writer struct {
	w io.Writer
}

// NewWriter creates a capture writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecord appends one datagram to the stream.
func (w *Writer) WriteRecord(datagram []byte) error {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(datagram)))
	if _, err := w.w.Write(size[:]); err != nil {
		return err
	}
	_, err := w.w.Write(datagram)

	return err
}

// Reader reads decoded messages back out of a capture stream.
type Reader struct {
	r io.Reader
}

// NewReader creates a capture reader on r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadMessage reads and decodes the next datagram. It returns io.EOF at the
// end of the stream.
func (r *Reader) ReadMessage() (*wire.Message, error) {
	var size [4]byte
	if _, err := io.ReadFull(r.r, size[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %w", ErrRecordFormat, err)
	}

	n := binary.BigEndian.Uint32(size[:])
	if n > maxRecordSize {
		return nil, fmt.Errorf("%w: record size %d exceeds limit", ErrRecordFormat, n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordFormat, err)
	}

	msg, err := wire.Decode(buf)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// Exchange is one logical message recovered from a capture: either a single
// frame or a reassembled multi-block transfer.
type Exchange struct {
	// ID is the message ID of the frame, or of the lead for reassembled
	// transfers.
	ID uint32
	// Type is the effective message type. For reassembled transfers this
	// is the type announced by the lead.
	Type wire.Type
	// Lead is the parsed lead message, nil for single-frame exchanges.
	Lead *wire.LeadMessage
	// Body is the message body with framing stripped and compression
	// undone.
	Body []byte
}

// Decoder folds a stream of messages into logical exchanges. Push one
// message at a time; acks and simple frames produce no exchange.
type Decoder struct {
	lead           *wire.LeadMessage
	leadID         uint32
	leadCompressed bool
	assembler      *wire.Assembler
}

// NewDecoder creates an empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Push feeds one decoded message. It returns a completed exchange, or nil
// when the message was an ack, a lead, or a block of an unfinished
// transfer.
func (d *Decoder) Push(msg *wire.Message) (*Exchange, error) {
	switch {
	case msg.Type.IsAck():
		return nil, nil

	case msg.Type == wire.TypeMSPLeadMessage:
		lead, err := wire.ParseLeadMessage(msg.RawBody())
		if err != nil {
			return nil, err
		}
		d.lead = lead
		d.leadID = msg.ID
		d.leadCompressed = msg.Compressed()
		d.assembler = wire.NewAssembler(lead)

		return nil, nil

	case msg.Type == wire.TypeMSPBlockMessage:
		if d.assembler == nil {
			return nil, fmt.Errorf("%w: block message without a lead", wire.ErrFragmentation)
		}
		d.assembler.Add(msg)
		if !d.assembler.Complete() {
			return nil, nil
		}

		body, err := d.assembler.Assemble(d.leadCompressed)
		if err != nil {
			return nil, err
		}

		respType := wire.Type(d.lead.Type)
		if respType == 0 {
			respType = wire.TypeMSPLeadMessage
		}
		ex := &Exchange{ID: d.leadID, Type: respType, Lead: d.lead, Body: body}
		d.lead = nil
		d.assembler = nil

		return ex, nil

	case msg.Type >= wire.TypeMSPConfigurationUpdate:
		// Controller data frame: relay-framed or compressed.
		body, err := msg.Body()
		if err != nil {
			return nil, err
		}

		return &Exchange{ID: msg.ID, Type: msg.Type, Body: body}, nil

	default:
		// Client request frame: plain XML, no relay framing.
		return &Exchange{ID: msg.ID, Type: msg.Type, Body: msg.RawBody()}, nil
	}
}

// Decode replays a whole capture stream and returns every recovered
// exchange in order.
func Decode(r io.Reader) ([]Exchange, error) {
	reader := NewReader(r)
	decoder := NewDecoder()

	var out []Exchange
	for {
		msg, err := reader.ReadMessage()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}

		ex, err := decoder.Push(msg)
		if err != nil {
			return out, err
		}
		if ex != nil {
			out = append(out, *ex)
		}
	}
}
