package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"rental/shared"
	"rental/shared/cache"
	"rental/shared/constant"
	"rental/transport/http/response"
	"strconv"
	"strings"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client address in a fixed window kept in
// Redis. Requests pass through untouched while Redis is unavailable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			count, ok := a.hit(r.Context(), shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r)), limits.MaxRequests, limits.WindowSeconds)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			if count > limits.MaxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(limits.MaxRequests-count))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			next.ServeHTTP(w, r)
		})
	}
}

// hit increments the counter under key. ok is false when the counter could not be read or written.
func (a *appMiddleware) hit(ctx context.Context, key string, limit, window int) (count int, ok bool) {
	err := a.cache.Get(ctx, key, &count)
	switch {
	case errors.Is(err, cache.Nil):
		count = 0
	case err != nil:
		return 0, false
	}

	count++
	if count > limit {
		return count, true
	}

	if err := a.cache.Save(ctx, key, count, window); err != nil {
		return 0, false
	}

	return count, true
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")

		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
