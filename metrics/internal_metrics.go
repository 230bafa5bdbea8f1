package metrics

import "github.com/VictoriaMetrics/metrics"

var (
	sessionsCreated = metrics.NewCounter("sessions_created_total")
	sessionsEvicted = metrics.NewCounter("sessions_evicted_total")
)

func IncSessionCreated() {
	sessionsCreated.Inc()
}

func AddSessionsEvicted(n int) {
	sessionsEvicted.Add(n)
}
