package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d denied within limit", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request beyond limit allowed")
	}
	// A different IP has its own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Error("fresh IP denied")
	}
}

func TestRateLimiterRetryAfter(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")

	if got := rl.RetryAfter("1.2.3.4"); got <= 0 || got > 3601 {
		t.Errorf("RetryAfter = %d, want within (0, 3601]", got)
	}
	if got := rl.RetryAfter("9.9.9.9"); got != 0 {
		t.Errorf("RetryAfter for unseen IP = %d, want 0", got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	handler := RateLimitMiddleware(rl, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.RemoteAddr = "1.2.3.4:5000"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 without Retry-After header")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:44321"
	if got := clientIP(req); got != "10.0.0.1" {
		t.Errorf("clientIP = %q, want 10.0.0.1", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.7" {
		t.Errorf("clientIP with XFF = %q, want 203.0.113.7", got)
	}
}
