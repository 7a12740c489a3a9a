package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_RequestBudgetPerClientIP(t *testing.T) {
	a := newApp(t)
	_, token := a.register(t, "grinder")

	// registration and login already spent two requests from the default address
	const spent = 2

	get := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/phases", nil)
		req.RemoteAddr = remoteAddr
		req.Header.Set(HeaderAccessToken, token)
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)
		return rec.Code
	}

	// the address httptest.NewRequest assigns, shared with a.do
	busy := "192.0.2.1:1234"
	for i := spent; i < RateLimitRequests; i++ {
		require.Equal(t, http.StatusOK, get(busy), "request %d", i+1)
	}

	assert.Equal(t, http.StatusTooManyRequests, get(busy))
	assert.Equal(t, http.StatusOK, get("198.51.100.7:4321"), "other clients keep their own budget")
}

func TestSuspiciousActivityDetector_CountsPerIP(t *testing.T) {
	detector := NewSuspiciousActivityDetector()

	for i := 0; i < RateLimitRequests; i++ {
		require.True(t, detector.RecordRequest("10.0.0.1"))
	}
	assert.False(t, detector.RecordRequest("10.0.0.1"))
	assert.True(t, detector.RecordRequest("10.0.0.2"))

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, RateLimitRequests+1, detector.requestCountByIP["10.0.0.1"])
}
