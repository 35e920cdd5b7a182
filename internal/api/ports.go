package api

import (
	"context"
	"net/http"

	"github.com/vitalstream/vsb/internal/diag"
)

// StreamPort is the telemetry streaming surface the server hands upgraded
// connections to.
type StreamPort interface {
	// HandleTelemetry performs the WebSocket handshake and streams until
	// the session ends.
	HandleTelemetry(w http.ResponseWriter, r *http.Request)
	// ActiveSessions reports how many sessions are currently streaming.
	ActiveSessions() int64
}

// DiagPort produces the diagnostic report for the /test endpoint.
type DiagPort interface {
	Report(ctx context.Context) diag.Report
}
