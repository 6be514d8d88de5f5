package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Benjafo/iconstore/internal/ratelimit"
	"github.com/Benjafo/iconstore/pkg/clientip"
)

// RateLimitMiddleware keeps three per-IP buckets: a tight one for the
// credential endpoints, a medium one for token refresh, and a wide one for
// the rest of the API.
type RateLimitMiddleware struct {
	auth    *ratelimit.Limiter
	refresh *ratelimit.Limiter
	api     *ratelimit.Limiter
}

func NewRateLimitMiddleware(store ratelimit.Store, auth ratelimit.Limit, refresh ratelimit.Limit, api ratelimit.Limit) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		auth:    ratelimit.NewLimiter("auth", auth, store),
		refresh: ratelimit.NewLimiter("refresh", refresh, store),
		api:     ratelimit.NewLimiter("api", api, store),
	}
}

func (m *RateLimitMiddleware) Auth(next http.Handler) http.Handler {
	return m.handler(m.auth, next)
}

func (m *RateLimitMiddleware) Refresh(next http.Handler) http.Handler {
	return m.handler(m.refresh, next)
}

func (m *RateLimitMiddleware) API(next http.Handler) http.Handler {
	return m.handler(m.api, next)
}

func (m *RateLimitMiddleware) handler(limiter *ratelimit.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := limiter.Allow(r.Context(), clientip.FromRequest(r))
		if err != nil {
			// A broken counter store must not take the API down with it.
			slog.Warn("rate limit store unavailable, failing open",
				"path", r.URL.Path,
				"error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		setRateHeaders(w, res)

		if !res.Allowed {
			retryAfter := int64(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Kind:       "rate_limited",
				Message:    "Too many requests, slow down",
				RetryAfter: retryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func setRateHeaders(w http.ResponseWriter, res ratelimit.Result) {
	limit := strconv.FormatInt(res.Limit, 10)
	remaining := strconv.FormatInt(res.Remaining, 10)
	resetIn := int64(time.Until(res.ResetAt).Seconds())
	if resetIn < 0 {
		resetIn = 0
	}

	w.Header().Set("RateLimit-Limit", limit)
	w.Header().Set("RateLimit-Remaining", remaining)
	w.Header().Set("RateLimit-Reset", strconv.FormatInt(resetIn, 10))
	w.Header().Set("X-RateLimit-Limit", limit)
	w.Header().Set("X-RateLimit-Remaining", remaining)
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
}
