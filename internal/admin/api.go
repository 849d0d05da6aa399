package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/submenu/pkg/log"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/pkg/errors"
)

type navigationResponse struct {
	URL  string           `json:"url"`
	Tree *navigation.Tree `json:"tree"`
}

type sectionsResponse struct {
	URL      string                `json:"url"`
	Module   string                `json:"module"`
	Sections []*navigation.Section `json:"sections"`
}

// serveNavigation returns the navigation tree annotated for the url given
// in query, or for the referer when absent.
func (h *Handler) serveNavigation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	currentURL := h.requestedURL(r)

	tree, err := h.builder.Build(ctx, currentURL, h.checker.AccessFunc(contextUser(ctx)))
	if err != nil {
		slog.ErrorContext(ctx, "could not build navigation tree", log.Error(errors.WithStack(err)))
		writeJSONError(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, navigationResponse{
		URL:  currentURL,
		Tree: tree,
	})
}

func (h *Handler) serveSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := r.PathValue("slug")
	currentURL := h.requestedURL(r)

	item, sections, err := h.moduleSections(ctx, contextUser(ctx), slug, currentURL)
	if err != nil {
		slog.ErrorContext(ctx, "could not retrieve module sections", log.Error(errors.WithStack(err)), slog.String("module", slug))
		writeJSONError(w, http.StatusInternalServerError)
		return
	}

	if item == nil {
		writeJSONError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, sectionsResponse{
		URL:      currentURL,
		Module:   item.Slug,
		Sections: sections,
	})
}

func (h *Handler) requestedURL(r *http.Request) string {
	if u := r.URL.Query().Get("url"); u != "" {
		return u
	}

	return r.Referer()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", log.Error(errors.WithStack(err)))
	}
}

func writeJSONError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": http.StatusText(status),
	})
}
