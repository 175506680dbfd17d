package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRoundTripEncodeDecode(t *testing.T) {
	h := Header{
		Type:       MsgEchoRequest,
		EndpointID: 0,
		SequenceID: 42,
		Length:     HeaderSize,
		Timestamp:  1735689600,
	}

	decoded, err := DecodeHeader(EncodeHeader(h))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != h {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, h)
	}
}

func TestEncodeHeaderLayout(t *testing.T) {
	h := Header{
		Type:       MsgEchoResponse,
		EndpointID: 0x01020304,
		SequenceID: 0x0a0b0c0d,
		Length:     HeaderSize,
		Timestamp:  0x1122334455667788,
		Checksum:   0,
	}

	want := []byte{
		0x00, 0x01, // type
		0x01, 0x02, 0x03, 0x04, // endpoint_id
		0x0a, 0x0b, 0x0c, 0x0d, // sequence_id
		0x00, 0x18, // length = 24
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, // timestamp
		0x00, 0x00, 0x00, 0x00, // crc32
	}

	got := EncodeHeader(h)
	if !bytes.Equal(got, want) {
		t.Fatalf("wire layout mismatch:\n got %x\nwant %x", got, want)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	h, err := DecodeHeader(make([]byte, 10))
	if !errors.Is(err, ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	if h != (Header{}) {
		t.Fatalf("expected zero header on short read, got %+v", h)
	}
}

func TestDecodeUnknownTypeTolerated(t *testing.T) {
	h := Header{Type: MsgType(99), SequenceID: 7, Length: HeaderSize}

	decoded, err := DecodeHeader(EncodeHeader(h))
	if err != nil {
		t.Fatalf("decode unknown type: %v", err)
	}
	if decoded.Type != 99 {
		t.Fatalf("unexpected type: %d", decoded.Type)
	}
	if !strings.Contains(decoded.Type.String(), "99") {
		t.Fatalf("opaque type should render verbatim, got %q", decoded.Type)
	}
}

func TestNewFillsOutboundFields(t *testing.T) {
	before := time.Now().Unix()
	h := New(MsgEchoRequest, 3)
	after := time.Now().Unix()

	if h.Type != MsgEchoRequest {
		t.Fatalf("unexpected type: %v", h.Type)
	}
	if h.EndpointID != LocalEndpointID {
		t.Fatalf("unexpected endpoint id: %d", h.EndpointID)
	}
	if h.SequenceID != 3 {
		t.Fatalf("unexpected sequence id: %d", h.SequenceID)
	}
	if h.Length != HeaderSize {
		t.Fatalf("unexpected length: %d", h.Length)
	}
	if h.Timestamp < before || h.Timestamp > after {
		t.Fatalf("timestamp %d outside [%d, %d]", h.Timestamp, before, after)
	}
	if h.Checksum != 0 {
		t.Fatalf("checksum must encode as zero, got %d", h.Checksum)
	}
}

func TestFormatEvent(t *testing.T) {
	h := Header{Type: MsgEchoRequest, SequenceID: 12, Length: HeaderSize, Timestamp: 99}

	line := FormatEvent("127.0.0.1", h)
	for _, part := range []string{"peer=127.0.0.1", "type=echo_req", "len=24", "endpoint=0", "seq=12", "ts=99"} {
		if !strings.Contains(line, part) {
			t.Fatalf("diagnostic line %q missing %q", line, part)
		}
	}
}
