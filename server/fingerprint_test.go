package server_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/primitivehl/whitelist-checker/server"
)

func TestFingerprintRotatesHourly(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.com", nil)
	require.NoError(t, err)

	req.Header.Set("X-Forwarded-For", "2600:8802:4700:bee:d13c:c7fb:8e0f:84ff, 172.70.210.100")
	fingerprint1, err := server.FingerprintFromRequest(req, time.Date(2022, 1, 1, 1, 2, 3, 4, time.UTC))
	require.NoError(t, err)

	fingerprint2, err := server.FingerprintFromRequest(req, time.Date(2022, 1, 1, 1, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, fingerprint1, fingerprint2)

	fingerprint3, err := server.FingerprintFromRequest(req, time.Date(2022, 1, 1, 2, 3, 4, 5, time.UTC))
	require.NoError(t, err)
	require.NotEqual(t, fingerprint1, fingerprint3)
}

func TestFingerprintSkipsPrivateForwardedIPs(t *testing.T) {
	at := time.Date(2022, 1, 1, 1, 2, 3, 4, time.UTC)

	req1, _ := http.NewRequest("GET", "http://example.com", nil)
	req1.Header.Set("X-Forwarded-For", "10.0.0.1, 8.8.8.8")
	req2, _ := http.NewRequest("GET", "http://example.com", nil)
	req2.Header.Set("X-Forwarded-For", "8.8.8.8")

	f1, err := server.FingerprintFromRequest(req1, at)
	require.NoError(t, err)
	f2, err := server.FingerprintFromRequest(req2, at)
	require.NoError(t, err)
	require.Equal(t, f1, f2)
}

func TestFingerprintFallsBackToRemoteAddr(t *testing.T) {
	at := time.Date(2022, 1, 1, 1, 2, 3, 4, time.UTC)
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	req.RemoteAddr = "8.8.4.4:53211"

	f, err := server.FingerprintFromRequest(req, at)
	require.NoError(t, err)
	require.NotZero(t, f)

	req.RemoteAddr = ""
	_, err = server.FingerprintFromRequest(req, at)
	require.Error(t, err)
	require.Equal(t, "", server.ClientHash(req))
}
