package session

import (
	"errors"
	"fmt"
)

// Root error classes raised by the transport. Specific failures wrap one of
// these so callers can classify with errors.Is.
var (
	// ErrConnection indicates a socket-level failure: dial, read or write.
	ErrConnection = errors.New("connection error")
	// ErrTimeout indicates the controller did not answer within the
	// configured budgets.
	ErrTimeout = errors.New("protocol timeout")
)

var (
	// ErrClosed is returned by operations on a closed session.
	ErrClosed = fmt.Errorf("%w: session closed", ErrConnection)
	// ErrNotOpened is returned when Call is used before Open.
	ErrNotOpened = fmt.Errorf("%w: session not opened", ErrConnection)
	// ErrAckTimeout indicates the transmission budget was exhausted without
	// an acknowledgement from the controller.
	ErrAckTimeout = fmt.Errorf("%w: no acknowledgement", ErrTimeout)
	// ErrResponseTimeout indicates the request was acknowledged but no data
	// frame followed in time.
	ErrResponseTimeout = fmt.Errorf("%w: no response", ErrTimeout)
	// ErrFragmentTimeout indicates an incomplete fragment set when the
	// fragment budget ran out.
	ErrFragmentTimeout = fmt.Errorf("%w: incomplete fragment set", ErrTimeout)
)
