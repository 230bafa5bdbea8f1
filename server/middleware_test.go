package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/primitivehl/whitelist-checker/metrics"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareCountsActualStatus(t *testing.T) {
	for _, code := range []int{http.StatusAccepted, http.StatusNoContent, http.StatusServiceUnavailable} {
		h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		okBefore := metrics.HTTPStatusCount(http.StatusOK)
		errBefore := metrics.HTTPStatusCount(http.StatusInternalServerError)
		before := metrics.HTTPStatusCount(code)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, before+1, metrics.HTTPStatusCount(code), "status %d", code)
		require.Equal(t, okBefore, metrics.HTTPStatusCount(http.StatusOK), "status %d", code)
		require.Equal(t, errBefore, metrics.HTTPStatusCount(http.StatusInternalServerError), "status %d", code)
	}
}

func TestMetricsMiddlewareImplicitOK(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	before := metrics.HTTPStatusCount(http.StatusOK)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, before+1, metrics.HTTPStatusCount(http.StatusOK))
}
