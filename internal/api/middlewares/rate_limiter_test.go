package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	mw "github.com/5w1tchy/book-catalog/internal/api/middlewares"
)

func TestLocalTokenBucket_AllowsBurstThenLimits(t *testing.T) {
	tb := mw.NewLocalTokenBucket(0.001, 2, mw.PerIPKey("tb"), zap.NewNop())
	handler := tb.Middleware(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest("GET", "/books", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Header().Get("X-RateLimit-Limit") != "2" {
			t.Errorf("Expected X-RateLimit-Limit 2, got %q", rec.Header().Get("X-RateLimit-Limit"))
		}
		if rec.Code == http.StatusTooManyRequests && rec.Header().Get("Retry-After") == "" {
			t.Error("Expected Retry-After on 429")
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: expected %d, got %d", i, want[i], codes[i])
		}
	}
}

func TestLocalTokenBucket_SeparateKeys(t *testing.T) {
	tb := mw.NewLocalTokenBucket(0.001, 1, mw.PerIPKey("tb"), zap.NewNop())
	handler := tb.Middleware(okHandler())

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest("GET", "/books", nil)
		req.RemoteAddr = ip
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", ip, rec.Code)
		}
	}
}

func TestPerIPKey_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := mw.PerIPKey("tb")(req); got != "tb:203.0.113.7" {
		t.Errorf("Expected tb:203.0.113.7, got %q", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := mw.PerIPKey("tb")(req); got != "tb:10.0.0.9" {
		t.Errorf("Expected tb:10.0.0.9, got %q", got)
	}
}

func TestRedisTokenBucket_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	var lim mw.Limiter = mw.NewRedisTokenBucket(rdb, 1, 1, mw.PerIPKey("tb"), zap.NewNop())
	rec := httptest.NewRecorder()
	lim.Middleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/books", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected request to pass when Redis is down, got %d", rec.Code)
	}
}
