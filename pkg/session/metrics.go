package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for monitoring an active Session. Package-level, like
// the teacher's internal/metrics vars: a process hosts one session's worth
// of these gauges/counter regardless of how many Session values are
// constructed (e.g. across tests), so registration happens exactly once.
var (
	connectedDevices = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "buttplug_session_connected_devices",
		Help: "Number of devices currently registered with the session.",
	})

	pendingRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "buttplug_session_pending_requests",
		Help: "Number of outstanding requests awaiting a server response.",
	})

	pingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buttplug_session_pings_total",
		Help: "Total keep-alive Ping messages sent to the server.",
	})
)
