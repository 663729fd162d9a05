package api

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimiter gates optimize traffic, which rebuilds the full DP table on
// every request.
type rateLimiter interface {
	Allow() bool
}

type tokenBucket struct {
	bucket *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &tokenBucket{
		bucket: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (t *tokenBucket) Allow() bool {
	if t == nil || t.bucket == nil {
		return true
	}
	return t.bucket.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "Too many requests", "the optimizer is at capacity, please retry shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}
