package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FixedWindowLimiter is a small in-memory fixed-window rate limiter, keyed by
// client address. It guards the admin login endpoint against password
// guessing; a single-process storefront does not warrant a shared store.
type FixedWindowLimiter struct {
	mu       sync.Mutex
	clients  map[string]int
	limit    int
	window   time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewFixedWindowLimiter creates a limiter allowing limit requests per window
// per client. Call Stop when the limiter is no longer needed.
func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	rl := &FixedWindowLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *FixedWindowLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			rl.clients = make(map[string]int) // reset all
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop terminates the reset goroutine. Idempotent; Allow keeps working but
// windows no longer reset.
func (rl *FixedWindowLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Allow reports whether a request from client may proceed and how many
// requests remain in the current window.
func (rl *FixedWindowLimiter) Allow(client string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.clients[client] >= rl.limit {
		return false, 0
	}
	rl.clients[client]++
	return true, rl.limit - rl.clients[client]
}

// RateLimitMiddleware enforces the limiter, responding 429 with the usual
// rate-limit headers when a client exceeds its budget.
func RateLimitMiddleware(limiter *FixedWindowLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining := limiter.Allow(r.RemoteAddr)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("client", r.RemoteAddr),
					zap.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
				RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
