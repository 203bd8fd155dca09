package pcapdump

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poollink/go-omnilogic/wire"
)

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func encode(t *testing.T, msg *wire.Message) []byte {
	t.Helper()
	return msg.Encode()
}

func leadFrame(t *testing.T, id uint32, blockCount, leadType int) []byte {
	t.Helper()
	body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" ?>
<Response><Name>MSPLeadMessage</Name><Parameters>
<Parameter name="SourceOpId" dataType="int">0</Parameter>
<Parameter name="MsgSize" dataType="int">1024</Parameter>
<Parameter name="MsgBlockCount" dataType="int">%d</Parameter>
<Parameter name="Type" dataType="int">%d</Parameter>
</Parameters></Response>`, blockCount, leadType)

	msg := wire.NewMessage(id, wire.TypeMSPLeadMessage, []byte(body))
	msg.SetCompressed(true)

	return encode(t, msg)
}

func blockFrame(t *testing.T, id uint32, fragment []byte) []byte {
	t.Helper()
	payload := append(make([]byte, 8), fragment...)
	msg := &wire.Message{
		ID:      id,
		Version: wire.Version,
		Type:    wire.TypeMSPBlockMessage,
		Payload: payload,
	}

	return encode(t, msg)
}

func TestRoundTripRecordStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	request := wire.NewMessage(41, wire.TypeSetHeaterCommand, []byte("<Request><Name>SetUIHeaterCmd</Name></Request>"))
	require.NoError(t, w.WriteRecord(encode(t, request)))

	r := NewReader(&buf)
	msg, err := r.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, uint32(41), msg.ID)
	assert.Equal(t, wire.TypeSetHeaterCommand, msg.Type)

	_, err = r.ReadMessage()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderRejectsTruncatedRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteRecord(encode(t, wire.NewMessage(1, wire.TypeAck, nil))))

	truncated := buf.Bytes()[:buf.Len()-4]
	_, err := NewReader(bytes.NewReader(truncated)).ReadMessage()
	require.ErrorIs(t, err, ErrRecordFormat)
}

func TestDecodeReassemblesBlockTransfer(t *testing.T) {
	document := []byte("<MSPConfig><Backyard><System-Id>0</System-Id></Backyard></MSPConfig>")
	compressed := deflate(t, document)
	half := len(compressed) / 2

	var buf bytes.Buffer
	w := NewWriter(&buf)

	// Client request, controller ack, then the fragmented response with
	// the second block arriving before the first.
	require.NoError(t, w.WriteRecord(encode(t, wire.NewMessage(50, wire.TypeRequestConfiguration, []byte("<Request><Name>RequestConfiguration</Name></Request>")))))
	require.NoError(t, w.WriteRecord(encode(t, wire.NewMessage(50, wire.TypeAck, nil))))
	require.NoError(t, w.WriteRecord(leadFrame(t, 100, 2, int(wire.TypeMSPConfigurationUpdate))))
	require.NoError(t, w.WriteRecord(blockFrame(t, 102, compressed[half:])))
	require.NoError(t, w.WriteRecord(blockFrame(t, 101, compressed[:half])))

	exchanges, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, exchanges, 2)

	assert.Equal(t, wire.TypeRequestConfiguration, exchanges[0].Type)
	assert.Contains(t, string(exchanges[0].Body), "RequestConfiguration")

	assert.Equal(t, wire.TypeMSPConfigurationUpdate, exchanges[1].Type)
	require.NotNil(t, exchanges[1].Lead)
	assert.Equal(t, 2, exchanges[1].Lead.MsgBlockCount)
	assert.Equal(t, document, exchanges[1].Body)
}

func TestDecodeSingleCompressedFrame(t *testing.T) {
	document := []byte(`<STATUS version="1.11"></STATUS>`)

	msg := &wire.Message{
		ID:      7,
		Version: wire.Version,
		Type:    wire.TypeMSPTelemetryUpdate,
		Payload: deflate(t, document),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteRecord(encode(t, msg)))

	exchanges, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, exchanges, 1)
	assert.Equal(t, document, exchanges[0].Body)
}

func TestDecoderRejectsBlockWithoutLead(t *testing.T) {
	decoder := NewDecoder()

	raw := blockFrame(t, 5, []byte("frag"))
	msg, err := wire.Decode(raw)
	require.NoError(t, err)

	_, err = decoder.Push(msg)
	require.ErrorIs(t, err, wire.ErrFragmentation)
}
