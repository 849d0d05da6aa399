package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/ui"
	"github.com/bornholm/submenu/pkg/log"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry"
	"github.com/pkg/errors"
)

// serveShell renders the admin page with the interactive menu and the
// section links of the current module.
func (h *Handler) serveShell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := contextUser(ctx)
	currentURL := h.currentURL(r)

	tree, err := h.builder.Build(ctx, currentURL, h.checker.AccessFunc(user))
	if err != nil {
		slog.ErrorContext(ctx, "could not build navigation tree", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := ShellTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Administration",
			BaseURL:   h.urls.Base().String(),
		},
		NavbarTemplateData: ui.NavbarTemplateData{
			Username: user.UserSubject(),
			NavbarItems: []ui.NavbarItem{
				ui.NavbarItemNavigationAPI("/api/navigation?url=" + currentURL),
			},
		},
		SidebarTemplateData: ui.SidebarTemplateData{
			Tree: tree,
		},
		CurrentURL:  currentURL,
		ModuleCount: countModules(tree),
	}

	if slug := h.moduleSlug(r); slug != "" {
		item, sections, err := h.moduleSections(ctx, user, slug, currentURL)
		if err != nil {
			slog.ErrorContext(ctx, "could not retrieve module sections", log.Error(errors.WithStack(err)), slog.String("module", slug))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		if item == nil {
			http.NotFound(w, r)
			return
		}

		data.PageTitle = item.Title + " - Administration"
		data.SectionsTemplateData = ui.SectionsTemplateData{
			Module:   item,
			Sections: sections,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := templates.ExecuteTemplate(w, "index", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// moduleSections returns the menu item and annotated sections of an
// accessible module, or a nil item when the module cannot be shown.
func (h *Handler) moduleSections(ctx context.Context, user authn.User, slug, currentURL string) (*navigation.MenuItem, []*navigation.Section, error) {
	m, err := h.builder.Module(ctx, slug)
	if errors.Is(err, registry.ErrNotFound) {
		return nil, nil, nil
	}

	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	if !m.Enabled {
		return nil, nil, nil
	}

	allowed, err := h.checker.Check(ctx, user, m)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	if !allowed {
		return nil, nil, nil
	}

	item := h.builder.MenuItem(m)

	return item, navigation.AnnotateSections(item.Sections, currentURL), nil
}

// moduleSlug extracts the module slug from a path below the admin prefix.
func (h *Handler) moduleSlug(r *http.Request) string {
	rest := strings.TrimPrefix(r.URL.Path, h.prefix)
	rest = strings.Trim(rest, "/")

	slug, _, _ := strings.Cut(rest, "/")

	return slug
}

func (h *Handler) currentURL(r *http.Request) string {
	u := h.urls.Base()
	u.Path = r.URL.Path
	u.RawQuery = r.URL.RawQuery

	return u.String()
}

func contextUser(ctx context.Context) authn.User {
	user, err := authn.ContextUser(ctx)
	if err != nil {
		return authn.Anonymous
	}

	return user
}

func countModules(tree *navigation.Tree) int {
	count := 0
	for _, g := range tree.Groups {
		if g.Collapsed() {
			count++
			continue
		}

		count += len(g.Addons)
	}

	return count
}
