package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"))

	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("1.1.1.1"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	h := NewRateLimiter(1, time.Minute).Middleware(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiterIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	h := NewRateLimiter(1, time.Minute).Middleware(http.HandlerFunc(ok))

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", spoofed)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterClientIPBehindTrustedProxy(t *testing.T) {
	l := NewRateLimiter(1, time.Minute)
	require.NoError(t, l.TrustProxies("10.0.0.0/8", "192.0.2.1"))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	req.Header.Set("X-Forwarded-For", "6.6.6.6, 9.9.9.9, 192.0.2.1")
	assert.Equal(t, "9.9.9.9", l.clientIP(req))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "10.1.2.3", l.clientIP(req))

	req.RemoteAddr = "198.51.100.1:5000"
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	assert.Equal(t, "198.51.100.1", l.clientIP(req))

	assert.Error(t, l.TrustProxies("not-an-ip"))
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(DefaultCORSOptions())(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "https://crm.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
}

func TestRecoveryReturns500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggerKeepsStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
