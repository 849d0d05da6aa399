package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/authn/basic"
	"github.com/bornholm/submenu/internal/config"
	"github.com/bornholm/submenu/pkg/log"
)

const authRealm = "submenu"

func NewUsersFromConfig(ctx context.Context, conf *config.Config) *basic.Users {
	users := make([]*basic.User, 0, len(conf.Auth.Users))
	for _, u := range conf.Auth.Users {
		if u.Name == "" || u.Password == "" {
			slog.WarnContext(ctx, "ignoring user without name or password", slog.String("name", string(u.Name)))
			continue
		}

		var roles []string
		if u.Roles != nil {
			roles = *u.Roles
		}

		users = append(users, basic.NewUser(string(u.Name), string(u.Password), roles...))
	}

	return basic.NewUsers(users...)
}

// NewAuthMiddlewareFromConfig protects the admin surface with basic
// authentication. Without any usable user, requests are served as the
// anonymous user.
func NewAuthMiddlewareFromConfig(ctx context.Context, conf *config.Config) func(http.Handler) http.Handler {
	users := NewUsersFromConfig(ctx, conf)

	if users.Len() == 0 {
		slog.WarnContext(ctx, "no user configured, admin surface is not authenticated")

		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := authn.WithContextUser(r.Context(), authn.Anonymous)
				ctx = log.WithAttrs(ctx, slog.String("user", authn.Anonymous.UserSubject()))
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
	}

	return authn.Chain(
		authn.WithAuthenticators(basic.NewAuthenticator(users, authRealm)),
	)
}
