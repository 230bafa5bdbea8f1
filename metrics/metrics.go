package metrics

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// statuses the handlers answer with, registered up front so they export as zero
var knownHTTPStatuses = []int{200, 201, 202, 204, 400, 404, 405, 500, 503}

func init() {
	for _, code := range knownHTTPStatuses {
		metrics.GetOrCreateCounter(httpStatusKey(code))
	}
}

func httpStatusKey(code int) string {
	return fmt.Sprintf(`http_requests_total{status="%d"}`, code)
}

func IncHTTPStatus(code int) {
	metrics.GetOrCreateCounter(httpStatusKey(code)).Inc()
}

// HTTPStatusCount returns how many responses were sent with code.
func HTTPStatusCount(code int) uint64 {
	return metrics.GetOrCreateCounter(httpStatusKey(code)).Get()
}
