package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session lifecycle events.
const (
	EventOpened = "session_opened"
	EventClosed = "session_closed"
)

// Record is a single audit log entry.
type Record struct {
	Timestamp  time.Time `json:"ts"`
	Event      string    `json:"event"`
	SessionID  string    `json:"sessionId"`
	RemoteAddr string    `json:"remoteAddr"`
	Reason     string    `json:"reason,omitempty"`
	Samples    int64     `json:"samples,omitempty"`
	DurationMs int64     `json:"durationMs,omitempty"`
}

// Logger appends session records to a JSONL file.
type Logger struct {
	mu       sync.Mutex
	filePath string
	file     *os.File
}

// NewLogger creates a session audit logger writing to <dir>/sessions.jsonl.
func NewLogger(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	filePath := filepath.Join(logDir, "sessions.jsonl")
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}

	return &Logger{
		filePath: filePath,
		file:     file,
	}, nil
}

// SessionOpened records the start of a streaming session.
func (l *Logger) SessionOpened(sessionID, remoteAddr string) {
	l.writeRecord(Record{
		Timestamp:  time.Now().UTC(),
		Event:      EventOpened,
		SessionID:  sessionID,
		RemoteAddr: remoteAddr,
	})
}

// SessionClosed records the end of a streaming session.
func (l *Logger) SessionClosed(sessionID, remoteAddr, reason string, samples int64, duration time.Duration) {
	l.writeRecord(Record{
		Timestamp:  time.Now().UTC(),
		Event:      EventClosed,
		SessionID:  sessionID,
		RemoteAddr: remoteAddr,
		Reason:     reason,
		Samples:    samples,
		DurationMs: duration.Milliseconds(),
	})
}

// FilePath returns the path of the audit log file.
func (l *Logger) FilePath() string {
	return l.filePath
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// writeRecord appends one JSON line to the audit file.
func (l *Logger) writeRecord(record Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal audit record: %v\n", err)
		return
	}

	if _, err := l.file.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write audit record: %v\n", err)
		return
	}

	if err := l.file.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sync audit log: %v\n", err)
	}
}
