package access

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/syncx"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/pkg/errors"
)

// Checker evaluates module access rules, compiling each distinct rule once.
type Checker struct {
	rules syncx.Map[string, *Rule]
}

func (c *Checker) rule(script string) *Rule {
	if rule, exists := c.rules.Load(script); exists {
		return rule
	}

	rule, _ := c.rules.LoadOrStore(script, NewRule(script))

	return rule
}

// Check reports whether the user can see the module. A module without rule
// is visible to everyone.
func (c *Checker) Check(ctx context.Context, user authn.User, m navigation.Module) (bool, error) {
	script := strings.TrimSpace(m.Access)
	if script == "" {
		return true, nil
	}

	if user == nil {
		user = authn.Anonymous
	}

	allowed, err := c.rule(script).Exec(Env(user, m))
	if err != nil {
		return false, errors.Wrapf(err, "could not evaluate access rule of module '%s'", m.Slug)
	}

	slog.DebugContext(ctx, "module access rule evaluated",
		slog.String("module", m.Slug),
		slog.String("rule", script),
		slog.Bool("allowed", allowed),
	)

	return allowed, nil
}

// AccessFunc binds the checker to a user.
func (c *Checker) AccessFunc(user authn.User) navigation.AccessFunc {
	return func(ctx context.Context, m navigation.Module) (bool, error) {
		return c.Check(ctx, user, m)
	}
}

func NewChecker() *Checker {
	return &Checker{}
}

// Env returns the variables available to access rules.
func Env(user authn.User, m navigation.Module) map[string]any {
	return map[string]any{
		"user": map[string]any{
			"name":     user.UserSubject(),
			"provider": user.UserProvider(),
			"roles":    user.UserRoles(),
		},
		"module": map[string]any{
			"slug":      m.Slug,
			"name":      m.Name,
			"namespace": m.Namespace,
			"rootMenu":  m.RootMenu,
		},
	}
}
