package stream

import (
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/gorilla/websocket"
)

// Outcome classifies the result of writing one frame to the peer.
type Outcome int

const (
	// OutcomeOK means the frame was handed to the transport.
	OutcomeOK Outcome = iota
	// OutcomePeerClosed means the peer ended the connection; not an error.
	OutcomePeerClosed
	// OutcomeTransportError means the write failed for any other reason.
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomePeerClosed:
		return "peer_closed"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Classify maps a write error to an Outcome. Peer-initiated teardown in any
// of its shapes (close frame, reset, broken pipe, EOF, closed socket) counts
// as a disconnect; anything else is a transport failure.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}

	if errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, websocket.ErrCloseSent) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) {
		return OutcomePeerClosed
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return OutcomePeerClosed
	}

	return OutcomeTransportError
}
