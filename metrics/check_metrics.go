package metrics

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

var (
	sourceFetchErr   = metrics.NewCounter("source_fetch_error_total")
	noAddressesErr   = metrics.NewCounter("list_no_addresses_total")
	listCacheHit     = metrics.NewCounter("list_cache_hit_total")
	listCacheMiss    = metrics.NewCounter("list_cache_miss_total")
	staleResults     = metrics.NewCounter("check_stale_result_discarded_total")
	listSize         = metrics.NewGauge("list_size", nil)
	sourceFetchTimes = metrics.NewHistogram("source_fetch_duration_seconds")
)

func checkStatusKey(status string) string {
	return fmt.Sprintf(`checks_total{status="%s"}`, status)
}

// InitCheckStatusMetrics registers a zero-valued counter per terminal status.
func InitCheckStatusMetrics(statuses ...string) {
	for _, s := range statuses {
		metrics.GetOrCreateCounter(checkStatusKey(s))
	}
}

func IncCheckStatus(status string) {
	metrics.GetOrCreateCounter(checkStatusKey(status)).Inc()
}

func IncSourceFetchErr() {
	sourceFetchErr.Inc()
}

func IncNoAddressesAvailable() {
	noAddressesErr.Inc()
}

func IncListCacheHit() {
	listCacheHit.Inc()
}

func IncListCacheMiss() {
	listCacheMiss.Inc()
}

func IncStaleResultDiscarded() {
	staleResults.Inc()
}

func SetListSize(n int) {
	listSize.Set(float64(n))
}

func ObserveSourceFetch(start time.Time) {
	sourceFetchTimes.UpdateDuration(start)
}
