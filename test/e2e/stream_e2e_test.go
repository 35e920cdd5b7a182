package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vitalstream/vsb/internal/api"
	"github.com/vitalstream/vsb/internal/biometrics"
	"github.com/vitalstream/vsb/internal/config"
	"github.com/vitalstream/vsb/internal/diag"
	"github.com/vitalstream/vsb/internal/stream"
)

// startBackend wires the real components behind an httptest server.
func startBackend(t *testing.T, interval time.Duration) (*httptest.Server, *stream.Handler) {
	t.Helper()

	cfg := config.Baseline()
	cfg.StreamInterval = interval

	lg := zap.NewNop().Sugar()
	handler := stream.NewHandler(biometrics.NewGenerator(nil), cfg.StreamInterval, lg, nil)
	probe := diag.NewProbe("", "", cfg.DatabaseTimeout, lg)
	server := api.NewServer(cfg, handler, probe, lg)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return ts, handler
}

func dialTelemetry(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/telemetry"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s failed: %v", url, err)
	}
	return conn
}

func TestTelemetryStreamEndToEnd(t *testing.T) {
	ts, _ := startBackend(t, 100*time.Millisecond)
	conn := dialTelemetry(t, ts)
	defer conn.Close()

	deadline := time.Now().Add(500 * time.Millisecond)
	var samples []biometrics.Sample

	for time.Now().Before(deadline) {
		_ = conn.SetReadDeadline(deadline.Add(150 * time.Millisecond))
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			t.Fatalf("message type = %d, want text frame", messageType)
		}

		var sample biometrics.Sample
		if err := json.Unmarshal(data, &sample); err != nil {
			t.Fatalf("frame is not a valid sample: %v\n%s", err, data)
		}
		samples = append(samples, sample)
	}

	// ~10Hz over 500ms with generous tolerance for scheduling jitter.
	if len(samples) < 4 || len(samples) > 7 {
		t.Fatalf("got %d samples in 500ms, want 4-7", len(samples))
	}

	for i, sample := range samples {
		if sample.OxygenSaturation < 96 || sample.OxygenSaturation > 99 {
			t.Errorf("sample %d: oxygenSaturation = %d out of range", i, sample.OxygenSaturation)
		}
		if len(sample.EMG) != biometrics.EMGChannels {
			t.Errorf("sample %d: len(emg) = %d, want %d", i, len(sample.EMG), biometrics.EMGChannels)
		}
		if i > 0 {
			gap := sample.Timestamp - samples[i-1].Timestamp
			if gap < 0 {
				t.Errorf("sample %d: timestamp went backwards (%d after %d)", i, sample.Timestamp, samples[i-1].Timestamp)
			}
			if gap > 400 {
				t.Errorf("sample %d: %dms gap, cadence should be roughly 100ms", i, gap)
			}
		}
	}
}

func TestClientDisconnectReleasesSession(t *testing.T) {
	ts, handler := startBackend(t, 50*time.Millisecond)
	conn := dialTelemetry(t, ts)

	// Let the stream establish, then close from the client side.
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("first sample read failed: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for handler.ActiveSessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session still active after client disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestConcurrentClientsGetIndependentStreams(t *testing.T) {
	ts, handler := startBackend(t, 50*time.Millisecond)

	connA := dialTelemetry(t, ts)
	defer connA.Close()
	connB := dialTelemetry(t, ts)
	defer connB.Close()

	readSample := func(conn *websocket.Conn) biometrics.Sample {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		var sample biometrics.Sample
		if err := json.Unmarshal(data, &sample); err != nil {
			t.Fatalf("invalid sample: %v", err)
		}
		return sample
	}

	// Both clients receive their own stream from their own epoch.
	for i := 0; i < 3; i++ {
		readSample(connA)
		readSample(connB)
	}
	if got := handler.ActiveSessions(); got != 2 {
		t.Errorf("ActiveSessions() = %d, want 2", got)
	}

	connA.Close()
	if readSample(connB); handler.ActiveSessions() < 1 {
		t.Error("closing one client tore down the other session")
	}
}

func TestShutdownClosesClientWithGoingAway(t *testing.T) {
	ts, handler := startBackend(t, 50*time.Millisecond)
	conn := dialTelemetry(t, ts)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("first sample read failed: %v", err)
	}

	handler.Shutdown()

	// Drain until the close frame arrives.
	deadline := time.Now().Add(2 * time.Second)
	for {
		_ = conn.SetReadDeadline(deadline)
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
			t.Fatalf("expected going-away close, got %v", err)
		}
		return
	}
}
