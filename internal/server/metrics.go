package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the encoder server.
type Metrics struct {
	framesEncoded  *prometheus.CounterVec // by data rate
	encodeErrors   prometheus.Counter
	samplesEmitted prometheus.Counter
	wsConnections  prometheus.Counter
	wsActive       prometheus.Gauge
}

// NewMetrics creates and registers all collectors on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		framesEncoded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phy_frames_encoded_total",
				Help: "Frames encoded into baseband waveforms, by data rate in Mb/s",
			},
			[]string{"rate"},
		),
		encodeErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "phy_encode_errors_total",
				Help: "Encode requests rejected or failed",
			},
		),
		samplesEmitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "phy_samples_emitted_total",
				Help: "Complex baseband samples generated",
			},
		),
		wsConnections: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ws_connections_total",
				Help: "WebSocket connections established",
			},
		),
		wsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ws_active_connections",
				Help: "Currently active WebSocket connections",
			},
		),
	}
}

// FrameEncoded records a successful encode at the given rate.
func (m *Metrics) FrameEncoded(rate string, samples int) {
	m.framesEncoded.WithLabelValues(rate).Inc()
	m.samplesEmitted.Add(float64(samples))
}

// EncodeError records a failed encode request.
func (m *Metrics) EncodeError() {
	m.encodeErrors.Inc()
}

// WSConnected records a new WebSocket client.
func (m *Metrics) WSConnected() {
	m.wsConnections.Inc()
	m.wsActive.Inc()
}

// WSDisconnected records a departed WebSocket client.
func (m *Metrics) WSDisconnected() {
	m.wsActive.Dec()
}
