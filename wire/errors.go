package wire

import (
	"errors"
	"fmt"
)

// ErrProtocol is the root class for malformed frames and framing violations.
// Every wire-level parse failure wraps it, so errors.Is(err, ErrProtocol)
// matches regardless of the specific failure below.
var ErrProtocol = errors.New("protocol error")

var (
	// ErrShortMessage indicates a datagram shorter than the fixed header.
	ErrShortMessage = fmt.Errorf("%w: message shorter than header", ErrProtocol)
	// ErrMessageFormat indicates a payload that could not be decoded,
	// typically a zlib stream or XML body that fails to parse.
	ErrMessageFormat = fmt.Errorf("%w: malformed message payload", ErrProtocol)
	// ErrFragmentation indicates an inconsistent lead/block sequence, such as
	// an unparsable lead message or an incomplete fragment set.
	ErrFragmentation = fmt.Errorf("%w: fragment reassembly failed", ErrProtocol)
)
