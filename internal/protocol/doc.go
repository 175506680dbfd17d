// Package protocol implements the LLRPC wire header codec.
//
// Every LLRPC message starts with a fixed 24-byte header; no message defined
// so far carries a payload. All multi-byte fields are network byte order and
// the header has no inter-field padding, so encode/decode work field by field
// rather than relying on in-memory struct layout.
package protocol
