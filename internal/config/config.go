package config

import "time"

// Default listen port, matching the original deployment.
const DefaultPort = "8000"

// Config holds every tunable of the backend. The stream section is the only
// part that affects telemetry behavior; the rest is server plumbing.
type Config struct {
	// Listen address. PORT sets the port, VSB_ADDR overrides the whole address.
	Addr string

	// Stream cadence; one sample per interval, best effort.
	StreamInterval time.Duration

	// HTTP server timeouts. These cover the request/response endpoints;
	// upgraded telemetry connections are hijacked and not subject to them.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// How long graceful shutdown may take before giving up.
	ShutdownTimeout time.Duration

	// Optional database dependency, introspected by the /test endpoint.
	DatabaseURL     string
	DatabaseName    string
	DatabaseTimeout time.Duration

	// Logging. Empty LogFile means stdout only.
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	// Directory for the session audit trail. Empty disables auditing.
	AuditDir string
}

// Baseline returns the built-in defaults.
func Baseline() *Config {
	return &Config{
		Addr:            ":" + DefaultPort,
		StreamInterval:  100 * time.Millisecond, // ~10 samples/second
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		DatabaseTimeout: 3 * time.Second,
		LogLevel:        "info",
		LogMaxSizeMB:    64,
		LogMaxBackups:   3,
		AuditDir:        "logs",
	}
}
