package protocol

import "errors"

var (
	ErrShortRead = errors.New("protocol: short read")
)
