package navigation

import (
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// DashboardSlug is the module always listed first in a navigation tree.
const DashboardSlug = "dashboard"

// Module is the navigation relevant view of an installed module.
type Module struct {
	Slug      string `mapstructure:"slug" yaml:"slug" json:"slug"`
	Name      string `mapstructure:"name" yaml:"name" json:"name"`
	Title     string `mapstructure:"title" yaml:"title" json:"title"`
	Icon      string `mapstructure:"icon" yaml:"icon" json:"icon"`
	Namespace string `mapstructure:"namespace" yaml:"namespace" json:"namespace"`

	Enabled    bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Navigation bool `mapstructure:"navigation" yaml:"navigation" json:"navigation"`

	// RootMenu places the module in a custom group regardless of the
	// group assignment table.
	RootMenu     string `mapstructure:"rootMenu" yaml:"rootMenu" json:"rootMenu,omitempty"`
	RootMenuIcon string `mapstructure:"rootMenuIcon" yaml:"rootMenuIcon" json:"rootMenuIcon,omitempty"`

	// Access is an optional rule deciding whether the current actor can see
	// the module. An empty rule grants access.
	Access string `mapstructure:"access" yaml:"access" json:"access,omitempty"`

	Sections RawSections `mapstructure:"sections" yaml:"sections" json:"sections,omitempty"`
}

// NewModule returns a module that is enabled and exposes a navigation entry.
func NewModule(slug string) Module {
	return Module{
		Slug:       slug,
		Enabled:    true,
		Navigation: true,
	}
}

// Namespaced prefixes the given key with the module namespace.
func (m Module) Namespaced(key string) string {
	if m.Namespace == "" {
		return key
	}

	return m.Namespace + "." + key
}

// Registry gives access to the installed modules.
type Registry interface {
	Modules(ctx context.Context) ([]Module, error)
	Module(ctx context.Context, slug string) (Module, error)
}

// AccessFunc reports whether a module is accessible to the current actor.
type AccessFunc func(ctx context.Context, m Module) (bool, error)

// AllowAll grants access to every module.
func AllowAll(ctx context.Context, m Module) (bool, error) {
	return true, nil
}

// Collect returns the enabled, accessible modules exposing a navigation
// entry, one per slug, sorted by slug with the dashboard first.
func Collect(ctx context.Context, registry Registry, access AccessFunc) ([]Module, error) {
	all, err := registry.Modules(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if access == nil {
		access = AllowAll
	}

	bySlug := make(map[string]Module, len(all))
	for _, m := range all {
		if !m.Enabled || !m.Navigation {
			continue
		}

		allowed, err := access(ctx, m)
		if err != nil {
			return nil, errors.Wrapf(err, "could not check access to module '%s'", m.Slug)
		}

		if !allowed {
			continue
		}

		bySlug[m.Slug] = m
	}

	modules := make([]Module, 0, len(bySlug))
	for _, m := range bySlug {
		modules = append(modules, m)
	}

	slices.SortFunc(modules, func(a, b Module) int {
		return compareSlugs(a.Slug, b.Slug)
	})

	return modules, nil
}

// compareSlugs orders the dashboard first, then lexicographically.
func compareSlugs(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == DashboardSlug:
		return -1
	case b == DashboardSlug:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
