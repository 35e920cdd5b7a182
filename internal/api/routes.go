package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// RegisterRoutes registers all endpoints on the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/hello", s.handleHello)
	mux.HandleFunc("/test", s.handleDatabaseTest)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ws/telemetry", s.handleTelemetry)
	mux.Handle("/metrics", promhttp.Handler())
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// The catch-all pattern also receives every unregistered path.
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from the Vital Stream backend!",
	})
}

// handleHello handles GET /api/hello
func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from the backend API!",
	})
}

// handleDatabaseTest handles GET /test
func (s *Server) handleDatabaseTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if s.probe == nil {
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Diagnostic probe not available")
		return
	}

	writeJSON(w, http.StatusOK, s.probe.Report(r.Context()))
}

// handleTelemetry handles GET /ws/telemetry by delegating the upgrade and
// the streaming session to the stream handler.
func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if s.stream == nil {
		writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Telemetry service not available")
		return
	}

	s.stream.HandleTelemetry(w, r)
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	subsystems := map[string]bool{
		"stream":      s.stream != nil,
		"diagnostics": s.probe != nil,
	}

	status := "ok"
	statusCode := http.StatusOK
	if !subsystems["stream"] {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	var activeSessions int64
	if s.stream != nil {
		activeSessions = s.stream.ActiveSessions()
	}

	writeJSON(w, statusCode, map[string]interface{}{
		"status":         status,
		"version":        Version,
		"uptimeSec":      time.Since(s.startTime).Seconds(),
		"activeSessions": activeSessions,
		"subsystems":     subsystems,
	})
}
