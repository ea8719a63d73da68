// Package metrics defines the Prometheus instrumentation, exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Todo mutation metrics
var (
	// TodoMutationsTotal tracks todo mutations by action and status.
	TodoMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_mutations_total",
			Help: "Total todo mutations by action (create/toggle/delete) and status (ok/invalid/not_found/error)",
		},
		[]string{"action", "status"},
	)

	// TodosCurrent tracks the current number of todo items.
	TodosCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "todos_current",
			Help: "Current number of todo items in the store",
		},
	)
)

// Broadcaster metrics
var (
	// BroadcasterConnectedClients tracks connected WebSocket clients.
	BroadcasterConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcaster_connected_clients",
			Help: "Number of connected WebSocket clients",
		},
	)

	// BroadcasterEventsTotal tracks broadcast events by event name.
	BroadcasterEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcaster_events_total",
			Help: "Total broadcast events by event name",
		},
		[]string{"event"},
	)

	// BroadcasterSlowClientsEvicted tracks clients dropped for full send buffers.
	BroadcasterSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcaster_slow_clients_evicted_total",
			Help: "Total clients disconnected because their send buffer was full",
		},
	)

	// WebSocketPingFailures tracks keepalive ping write failures.
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total WebSocket keepalive ping failures",
		},
	)
)
