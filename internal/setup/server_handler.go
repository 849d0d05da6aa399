package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/submenu/internal/access"
	"github.com/bornholm/submenu/internal/admin"
	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/config"
	"github.com/bornholm/submenu/internal/ratelimit"
	"github.com/bornholm/submenu/pkg/log"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

const requestIDHeader = "X-Request-Id"

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.NewWithConfig(slog.Default(), sloghttp.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		// Correlation ids are handled by withRequestID
		WithRequestID: false,
	})

	builder, err := NewBuilderFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	service, err := NewURLServiceFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.InfoContext(ctx, "serving admin surface", log.ScrubbedURL("baseUrl", service.Base().String()), slog.String("prefix", string(conf.HTTP.AdminPrefix)))

	adminHandler := admin.NewHandler(string(conf.HTTP.AdminPrefix), builder, access.NewChecker(), service)

	auth := NewAuthMiddlewareFromConfig(ctx, conf)

	rateLimiter := ratelimit.New(rate.Limit(conf.HTTP.RateLimit.Rate), int(conf.HTTP.RateLimit.Burst))
	rateLimiterMiddleware := rateLimiter.Middleware(rateLimitClientKey)

	mux.Handle("/api/", auth(rateLimiterMiddleware(adminHandler)))
	mux.Handle("/", auth(adminHandler))

	return withRequestID(slogMiddleware(mux)), nil
}

// rateLimitClientKey identifies authenticated users by provider and subject.
// Anonymous requests are identified by the client host.
func rateLimitClientKey(r *http.Request) (string, error) {
	user, err := authn.ContextUser(r.Context())
	if err != nil {
		return "", errors.WithStack(err)
	}

	if user == authn.Anonymous {
		host, err := ratelimit.RemoteAddr(r)
		if err != nil {
			return "", errors.WithStack(err)
		}

		return user.UserProvider() + "-" + host, nil
	}

	return user.UserProvider() + "-" + user.UserSubject(), nil
}

// withRequestID tags each request with a correlation id, reusing the one
// provided by an upstream proxy.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = xid.New().String()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := log.WithAttrs(r.Context(), slog.String("requestId", requestID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
