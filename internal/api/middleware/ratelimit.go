package middleware

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/phrazzld/patient-api/internal/api/shared"
	"github.com/phrazzld/patient-api/internal/platform/logger"
	"golang.org/x/time/rate"
)

// ErrRateLimited is logged when a request is rejected by the rate limiter.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter rejects requests beyond a token bucket budget shared by all
// clients of the server.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond on average with
// bursts of up to burst requests. A non-positive rate returns nil, which
// Middleware treats as unlimited.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Middleware returns the HTTP middleware. Rejected requests get a 429 with a
// Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := rl.limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			retryAfter := int(math.Ceil(delay.Seconds()))
			logger.FromContext(r.Context()).Debug("request rate limited",
				slog.Duration("retry_after", delay))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
