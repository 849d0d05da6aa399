package icon

import (
	"fmt"
	"html"
	"path"
	"slices"
	"strings"

	"github.com/bornholm/submenu/internal/urls"
	"github.com/bornholm/submenu/pkg/navigation"
)

var imageExtensions = []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp"}

// Resolver renders module icon identifiers as HTML markup.
type Resolver struct {
	urls navigation.URLResolver
}

// Icon implements navigation.IconResolver.
func (r *Resolver) Icon(identifier string) string {
	identifier = strings.TrimSpace(identifier)

	switch {
	case identifier == "":
		return ""
	case IsImage(identifier):
		src := identifier
		if r.urls != nil && !urls.IsAbsolute(identifier) {
			src = r.urls.To(identifier)
		}
		return fmt.Sprintf(`<img class="icon" src="%s" alt="">`, html.EscapeString(src))
	case strings.HasPrefix(identifier, "fa-"):
		return fmt.Sprintf(`<i class="fa %s"></i>`, html.EscapeString(identifier))
	default:
		return fmt.Sprintf(`<i class="%s"></i>`, html.EscapeString(identifier))
	}
}

var _ navigation.IconResolver = &Resolver{}

func NewResolver(urls navigation.URLResolver) *Resolver {
	return &Resolver{urls: urls}
}

// IsImage reports whether the identifier points to an image asset.
func IsImage(identifier string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(path.Ext(identifier)))
}
