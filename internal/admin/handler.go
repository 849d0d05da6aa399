package admin

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bornholm/submenu/internal/access"
	"github.com/bornholm/submenu/internal/urls"
	"github.com/bornholm/submenu/pkg/navigation"
)

// Handler serves the admin shell and the navigation API.
type Handler struct {
	prefix  string
	builder *navigation.Builder
	checker *access.Checker
	urls    *urls.Service
	mux     *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, builder *navigation.Builder, checker *access.Checker, urls *urls.Service) *Handler {
	prefix = "/" + strings.Trim(prefix, "/")

	handler := &Handler{
		prefix:  prefix,
		builder: builder,
		checker: checker,
		urls:    urls,
		mux:     &http.ServeMux{},
	}

	// Admin shell
	handler.mux.HandleFunc(fmt.Sprintf("GET %s", prefix), handler.serveShell)
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/", prefix), handler.serveShell)

	// Navigation API
	handler.mux.HandleFunc("GET /api/navigation", handler.serveNavigation)
	handler.mux.HandleFunc("GET /api/modules/{slug}/sections", handler.serveSections)

	return handler
}

var _ http.Handler = &Handler{}
