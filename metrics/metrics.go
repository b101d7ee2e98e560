// Package metrics exports command counters and latencies to prometheus.
package metrics

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mogaika/meshcat_client/transport"
)

const (
	resultOK        = "ok"
	resultTransport = "transport_error"
	resultRejected  = "rejected"
)

type Metrics struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
	payload  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meshcat_commands_total",
				Help: "Commands sent to the viewer by type and result",
			},
			[]string{"request_type", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meshcat_command_duration_seconds",
				Help:    "Time from request to acknowledgement",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"request_type"},
		),
		payload: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meshcat_payload_bytes",
				Help:    "Encoded payload size",
				Buckets: prometheus.ExponentialBuckets(64, 4, 10),
			},
			[]string{"request_type"},
		),
	}
	m.registry.MustRegister(
		m.commands, m.duration, m.payload,
		collectors.NewGoCollector(),
	)
	return m
}

// Observe makes Metrics a transport.Observer.
func (m *Metrics) Observe(r transport.Report) {
	result := resultOK
	switch {
	case r.Err == nil:
	case errors.Is(r.Err, transport.ErrTransportFailure):
		result = resultTransport
	default:
		result = resultRejected
	}
	m.commands.WithLabelValues(r.RequestType, result).Inc()

	if r.Err == nil {
		m.duration.WithLabelValues(r.RequestType).Observe(r.Duration.Seconds())
	}
	if r.Bytes > 0 {
		m.payload.WithLabelValues(r.RequestType).Observe(float64(r.Bytes))
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
