package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/vitalstream/vsb/internal/audit"
	"github.com/vitalstream/vsb/internal/biometrics"
)

// Session close reasons, also used as the closures metric label.
const (
	reasonPeerClosed     = "peer_closed"
	reasonTransportError = "transport_error"
	reasonShutdown       = "shutdown"
)

const (
	// Control frame payload limit minus the two status code bytes.
	maxCloseReasonLen = 123
	closeWriteWait    = time.Second
)

// Conn is the subset of *websocket.Conn a session needs. Reads only serve
// peer-close detection; the stream itself is write-only.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Handler accepts upgraded WebSocket connections and runs one streaming
// session per connection. Sessions are fully isolated from each other.
type Handler struct {
	generator *biometrics.Generator
	interval  time.Duration
	lg        *zap.SugaredLogger
	auditor   *audit.Logger
	upgrader  websocket.Upgrader

	active   *atomic.Int64
	done     chan struct{}
	stopOnce sync.Once
}

// NewHandler creates a streaming handler. The auditor may be nil.
func NewHandler(generator *biometrics.Generator, interval time.Duration, lg *zap.SugaredLogger, auditor *audit.Logger) *Handler {
	return &Handler{
		generator: generator,
		interval:  interval,
		lg:        lg,
		auditor:   auditor,
		upgrader: websocket.Upgrader{
			// Browser clients connect cross-origin, same posture as the
			// HTTP endpoints' CORS configuration.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		active: atomic.NewInt64(0),
		done:   make(chan struct{}),
	}
}

// ActiveSessions returns the number of sessions currently streaming.
func (h *Handler) ActiveSessions() int64 {
	return h.active.Load()
}

// Shutdown ends all sessions. Pending tick waits are cancelled promptly;
// each session sends a best-effort going-away close frame.
func (h *Handler) Shutdown() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// HandleTelemetry upgrades the request and streams until the session ends.
// The surrounding router performs method and path dispatch; the handshake
// happens here because gorilla ties it to the response writer.
func (h *Handler) HandleTelemetry(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		h.lg.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "err", err.Error())
		return
	}

	h.serve(conn, r.RemoteAddr)
}

// serve runs one session over an accepted connection and releases it.
func (h *Handler) serve(conn Conn, remoteAddr string) {
	sessionID := uuid.NewString()
	epoch := time.Now()

	h.active.Inc()
	activeSessionsGauge.Inc()
	sessionsTotalCounter.Inc()
	if h.auditor != nil {
		h.auditor.SessionOpened(sessionID, remoteAddr)
	}
	h.lg.Infow("session opened", "session", sessionID, "remote", remoteAddr)

	// The read pump drains inbound frames so close frames are processed;
	// its exit is the peer-disconnect signal.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var samples int64
	reason := reasonShutdown

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

loop:
	for {
		sample := h.generator.Generate(time.Since(epoch).Seconds())
		data, err := json.Marshal(sample)
		if err != nil {
			// Cannot happen for this type; treated as a transport-level fault.
			reason = reasonTransportError
			h.closeWithReason(conn, err.Error())
			break
		}

		switch err := conn.WriteMessage(websocket.TextMessage, data); Classify(err) {
		case OutcomeOK:
			samples++
			samplesSentCounter.Inc()
		case OutcomePeerClosed:
			reason = reasonPeerClosed
			break loop
		case OutcomeTransportError:
			reason = reasonTransportError
			h.closeWithReason(conn, err.Error())
			break loop
		}

		select {
		case <-readDone:
			reason = reasonPeerClosed
			break loop
		case <-h.done:
			reason = reasonShutdown
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait))
			break loop
		case <-ticker.C:
		}
	}

	_ = conn.Close()
	<-readDone

	h.active.Dec()
	activeSessionsGauge.Dec()
	sessionClosuresCounter.WithLabelValues(reason).Inc()
	duration := time.Since(epoch)
	if h.auditor != nil {
		h.auditor.SessionClosed(sessionID, remoteAddr, reason, samples, duration)
	}
	h.lg.Infow("session closed",
		"session", sessionID,
		"remote", remoteAddr,
		"reason", reason,
		"samples", samples,
		"durationMs", duration.Milliseconds(),
	)
}

// closeWithReason makes exactly one best-effort attempt to tell the peer why
// the session ended. Any error from the attempt is suppressed.
func (h *Handler) closeWithReason(conn Conn, reason string) {
	if len(reason) > maxCloseReasonLen {
		reason = reason[:maxCloseReasonLen]
	}
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait))
}
