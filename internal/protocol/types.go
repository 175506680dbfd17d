package protocol

import "fmt"

// MsgType discriminates header payload semantics. Decoders treat unknown
// values as opaque so new message types can be introduced without breaking
// older endpoints.
type MsgType uint16

const (
	MsgEchoRequest MsgType = iota
	MsgEchoResponse
	MsgCommandRequest
	MsgCommandResponse
)

func (t MsgType) String() string {
	switch t {
	case MsgEchoRequest:
		return "echo_req"
	case MsgEchoResponse:
		return "echo_resp"
	case MsgCommandRequest:
		return "command_req"
	case MsgCommandResponse:
		return "command_resp"
	default:
		return fmt.Sprintf("type(%d)", uint16(t))
	}
}

// HeaderSize is the encoded size of Header:
// type(2) + endpoint_id(4) + sequence_id(4) + length(2) + timestamp(8) + crc32(4).
const HeaderSize = 24

// LocalEndpointID identifies this endpoint in outbound headers. The field is
// reserved for multi-endpoint routing; a single-endpoint deployment always
// sends 0.
const LocalEndpointID uint32 = 0

// Header is the fixed wire header shared by every LLRPC message.
type Header struct {
	Type       MsgType
	EndpointID uint32
	SequenceID uint32
	Length     uint16
	Timestamp  int64
	Checksum   uint32
}

// FormatEvent renders one diagnostic line for a message exchanged with peer.
// Pure formatting; the line is for humans and log collectors, not the wire.
func FormatEvent(peer string, h Header) string {
	return fmt.Sprintf(
		"peer=%s type=%s len=%d endpoint=%d seq=%d ts=%d",
		peer, h.Type, h.Length, h.EndpointID, h.SequenceID, h.Timestamp,
	)
}
