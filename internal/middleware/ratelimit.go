package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/devlink-network/devlink/internal/errors"
	"github.com/devlink-network/devlink/internal/httputil"
	"github.com/devlink-network/devlink/pkg/logger"
)

// RateLimiter throttles clients with per-key token buckets, keyed by the
// authenticated account id when present and the remote address otherwise.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	logger   *logger.Logger
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond sustained
// with the given burst.
func NewRateLimiter(requestsPerSecond, burst int, log *logger.Logger) *RateLimiter {
	if log == nil {
		log = logger.NewDefault("ratelimit")
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		logger:   log,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Handler returns the rate limiting middleware handler.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := GetAccountID(r.Context())
		if key == "" {
			key = r.RemoteAddr
		}

		if !rl.getLimiter(key).Allow() {
			rl.logger.WithContext(r.Context()).WithFields(map[string]interface{}{
				"key":    key,
				"path":   r.URL.Path,
				"method": r.Method,
			}).Warn("rate limit exceeded")

			se := errors.RateLimitExceeded(int(rl.rate), "1s")
			httputil.WriteErrorResponse(w, se.HTTPStatus, string(se.Code), se.Message, se.Details)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup drops accumulated limiters once the map grows past a bound.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) > 10000 {
		rl.limiters = make(map[string]*rate.Limiter)
	}
}

// StartCleanup periodically invokes Cleanup until the ticker is collected.
func (rl *RateLimiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			rl.Cleanup()
		}
	}()
}
