package sigs

import (
	"github.com/iov-one/stake/errors"
)

// ErrInvalidSequence is returned when a signature nonce does not match the
// signer's stored sequence.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
