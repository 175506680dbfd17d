package protocol

import (
	"encoding/binary"
	"time"
)

// New builds an outbound header for this endpoint: the caller-supplied type
// and sequence id, the local endpoint id, the fixed encoded length, and the
// current wall-clock time at seconds resolution. The checksum field is
// reserved and always encoded as zero.
func New(t MsgType, seq uint32) Header {
	return Header{
		Type:       t,
		EndpointID: LocalEndpointID,
		SequenceID: seq,
		Length:     HeaderSize,
		Timestamp:  time.Now().Unix(),
	}
}

// EncodeHeader serializes h into a fresh HeaderSize-byte buffer.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(buf[0:2], uint16(h.Type))
	binary.BigEndian.PutUint32(buf[2:6], h.EndpointID)
	binary.BigEndian.PutUint32(buf[6:10], h.SequenceID)
	binary.BigEndian.PutUint16(buf[10:12], h.Length)
	binary.BigEndian.PutUint64(buf[12:20], uint64(h.Timestamp))
	binary.BigEndian.PutUint32(buf[20:24], h.Checksum)
	return buf
}
