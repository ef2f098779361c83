package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = ip
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLimiter_BlocksAfterMax(t *testing.T) {
	handler := NewLimiter(2, time.Minute).Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1111").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1111").Code)

	rec := doRequest(handler, "1.2.3.4:1111")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"message":"Too many requests. Please try again later.","code":"RATE_LIMITED"}}`,
		rec.Body.String())
}

func TestLimiter_PerIP(t *testing.T) {
	handler := NewLimiter(1, time.Minute).Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "1.1.1.1:1111").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "1.1.1.1:1111").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "2.2.2.2:2222").Code)
}

func TestLimiter_WindowResets(t *testing.T) {
	handler := NewLimiter(1, 50*time.Millisecond).Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1111").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "1.2.3.4:1111").Code)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1111").Code)
}

func TestLimiter_HonorsForwardingHeaders(t *testing.T) {
	handler := NewLimiter(1, time.Minute).Handler(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = "10.0.0.1:1111"
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Same forwarded client, different socket: still the same bucket.
	req = httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = "10.0.0.2:2222"
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
