package protocol

import "encoding/binary"

// DecodeHeader parses the fixed header from buf. It fails with ErrShortRead
// when fewer than HeaderSize bytes are available and assigns no fields.
//
// Peer-controlled values pass through as-is: an unknown message type is not
// an error, and the checksum field is carried but never validated.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrShortRead
	}
	return Header{
		Type:       MsgType(binary.BigEndian.Uint16(buf[0:2])),
		EndpointID: binary.BigEndian.Uint32(buf[2:6]),
		SequenceID: binary.BigEndian.Uint32(buf[6:10]),
		Length:     binary.BigEndian.Uint16(buf[10:12]),
		Timestamp:  int64(binary.BigEndian.Uint64(buf[12:20])),
		Checksum:   binary.BigEndian.Uint32(buf[20:24]),
	}, nil
}
