package ui

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"maps"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
	"github.com/laher/mergefs"
	"github.com/pkg/errors"
)

//go:embed templates/**
var commonFs embed.FS

var commonFuncs = template.FuncMap{
	"humanizeInt": func(n int) string {
		return humanize.Comma(int64(n))
	},
	// icon marks resolved icon markup as safe. Resolvers escape identifiers.
	"icon": func(markup string) template.HTML {
		return template.HTML(markup)
	},
	"attrs": renderAttributes,
}

var (
	attributeName = regexp.MustCompile(`^[a-zA-Z_:][-a-zA-Z0-9_:.]*$`)
	urlAttributes = []string{"href", "src", "action", "formaction", "cite", "poster"}
	urlSchemes    = []string{"http", "https", "mailto"}
)

// unsafeURL replaces rejected URLs, as html/template does.
const unsafeURL = "#ZgotmplZ"

// renderAttributes renders module supplied attributes, sorted by name.
// Event handlers and invalid names are dropped, URL attributes with a
// scheme other than http, https or mailto are neutralized. The given
// classes are merged with the "class" attribute, which comes last.
func renderAttributes(attributes map[string]any, classes ...string) template.HTMLAttr {
	keys := slices.Sorted(maps.Keys(attributes))

	parts := make([]string, 0, len(keys)+1)
	class := make([]string, 0, len(classes)+1)

	for _, k := range keys {
		name := strings.ToLower(k)

		if !attributeName.MatchString(name) || strings.HasPrefix(name, "on") {
			continue
		}

		value := fmt.Sprint(attributes[k])

		if name == "class" {
			class = append(class, value)
			continue
		}

		if slices.Contains(urlAttributes, name) && !isSafeURL(value) {
			value = unsafeURL
		}

		parts = append(parts, fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value)))
	}

	class = append(class, classes...)
	if merged := strings.Join(strings.Fields(strings.Join(class, " ")), " "); merged != "" {
		parts = append(parts, fmt.Sprintf(`class="%s"`, html.EscapeString(merged)))
	}

	return template.HTMLAttr(strings.Join(parts, " "))
}

func isSafeURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}

	return u.Scheme == "" || slices.Contains(urlSchemes, strings.ToLower(u.Scheme))
}

func Templates(funcs template.FuncMap, filesystems ...fs.FS) (*template.Template, error) {
	filesystems = append([]fs.FS{commonFs}, filesystems...)
	merged := mergefs.Merge(filesystems...)

	views, err := fs.Glob(merged, "**/views/*.gohtml")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	layouts, err := fs.Glob(merged, "**/layouts/*.gohtml")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	templates := append(views, layouts...)

	tmpl := template.New("").Funcs(sprig.FuncMap()).Funcs(commonFuncs)

	if funcs != nil {
		tmpl = tmpl.Funcs(funcs)
	}

	tmpl, err = tmpl.ParseFS(merged, templates...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tmpl, nil
}

type HeadTemplateData struct {
	PageTitle string
	BaseURL   string
}
