package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vsb_stream_active_sessions",
		Help: "Streaming sessions currently open",
	})

	sessionsTotalCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vsb_stream_sessions_total",
		Help: "Streaming sessions accepted since start",
	})

	samplesSentCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vsb_stream_samples_sent_total",
		Help: "Telemetry samples written to peers",
	})

	sessionClosuresCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vsb_stream_session_closures_total",
		Help: "Session closures by reason",
	}, []string{"reason"})
)
