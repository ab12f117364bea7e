package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(2, time.Minute)(next)

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1:1000"); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := send("10.0.0.1:1000"); code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", code)
	}
	if code := send("10.0.0.1:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", code)
	}
	if code := send("10.0.0.2:1000"); code != http.StatusOK {
		t.Fatalf("other ip: expected 200, got %d", code)
	}
}

func TestClientIPForRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr with port", "192.0.2.10:1234", "", "192.0.2.10"},
		{"remote addr without port", "192.0.2.10", "", "192.0.2.10"},
		{"forwarded wins", "192.0.2.10:1234", "203.0.113.7", "203.0.113.7"},
		{"forwarded list takes first valid", "192.0.2.10:1234", "garbage, 203.0.113.7", "203.0.113.7"},
		{"ipv6", "[2001:db8::1]:443", "", "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIPForRateLimit(req); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
