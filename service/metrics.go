package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "reactivemesh"

// Metrics holds the Prometheus collectors shared by the connection cache, the registry client and the SSE handler.
type Metrics struct {
	// ConnectionTransitions counts connection cache state transitions by service and state
	// (connecting, open, failed, evicted).
	ConnectionTransitions *prometheus.CounterVec
	// OpenConnections is the number of Open cached connections by service.
	OpenConnections *prometheus.GaugeVec

	// RegistryLookups counts registry lookups by service and result (ok, empty, error).
	RegistryLookups *prometheus.CounterVec

	// SSEConnections is the number of active SSE subscriptions by route.
	SSEConnections *prometheus.GaugeVec
	// SSEConnectionsTotal counts SSE subscriptions by route and outcome (established, rejected, completed, failed).
	SSEConnectionsTotal *prometheus.CounterVec
	// SSEEventsSent counts events written to SSE subscribers by route.
	SSEEventsSent *prometheus.CounterVec

	// RegistryOperations counts registry server operations by operation and result.
	RegistryOperations *prometheus.CounterVec
}

// NewMetrics creates and registers every collector on registerer. Panics (promauto) when a collector is registered
// twice on the same registerer, so tests pass a fresh prometheus.NewRegistry().
//
// Called from cmd mains with prometheus.DefaultRegisterer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		ConnectionTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "connection_transitions_total",
				Help:      "Total number of connection cache state transitions",
			},
			[]string{"service", "state"},
		),
		OpenConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "connections_open",
				Help:      "Number of open cached streaming connections",
			},
			[]string{"service"},
		),
		RegistryLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "registry_lookups_total",
				Help:      "Total number of registry lookups",
			},
			[]string{"service", "result"},
		),
		SSEConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "sse_connections",
				Help:      "Number of active SSE subscriptions",
			},
			[]string{"route"},
		),
		SSEConnectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "sse_connections_total",
				Help:      "Total number of SSE subscriptions",
			},
			[]string{"route", "outcome"},
		),
		SSEEventsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "sse_events_sent_total",
				Help:      "Total number of SSE events sent",
			},
			[]string{"route"},
		),
		RegistryOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "registry_operations_total",
				Help:      "Total number of registry server operations",
			},
			[]string{"operation", "result"},
		),
	}
}
