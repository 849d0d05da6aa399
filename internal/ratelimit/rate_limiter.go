package ratelimit

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/bornholm/submenu/internal/syncx"
	"github.com/bornholm/submenu/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client key.
type RateLimiter struct {
	rate    rate.Limit
	burst   int
	clients syncx.Map[string, *rate.Limiter]
}

type GetClientKeyFunc func(r *http.Request) (string, error)

func (l *RateLimiter) Allow(key string) bool {
	limiter, exists := l.clients.Load(key)
	if !exists {
		limiter, _ = l.clients.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	}

	return limiter.Allow()
}

func (l *RateLimiter) Middleware(getClientKey GetClientKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key, err := getClientKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve client key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(key) {
				slog.WarnContext(ctx, "rate limit exceeded", slog.String("client", key))
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RemoteAddr uses the client host as rate limiting key. The port is left out
// so that reconnecting does not grant a new bucket.
func RemoteAddr(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		var addrErr *net.AddrError
		if errors.As(err, &addrErr) && addrErr.Err == "missing port in address" {
			return r.RemoteAddr, nil
		}

		return "", errors.WithStack(err)
	}

	return host, nil
}

func New(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  limit,
		burst: burst,
	}
}
