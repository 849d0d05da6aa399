package translate

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/goccy/go-yaml"
	"github.com/laher/mergefs"
	"github.com/pkg/errors"
)

// FallbackLocale provides the messages missing from other locales.
const FallbackLocale = "en"

//go:embed catalogs/**
var catalogsFs embed.FS

// Catalog holds the flattened messages of a locale.
type Catalog struct {
	locale   string
	messages map[string]string
}

func (c *Catalog) Locale() string {
	return c.locale
}

// Has implements navigation.Translator.
func (c *Catalog) Has(key string) bool {
	_, exists := c.messages[key]
	return exists
}

// Translate implements navigation.Translator. Unknown keys are returned as is.
func (c *Catalog) Translate(key string) string {
	if message, exists := c.messages[key]; exists {
		return message
	}

	return key
}

func (c *Catalog) Len() int {
	return len(c.messages)
}

var _ navigation.Translator = &Catalog{}

// Load reads the catalogs of the given locale, layered over the fallback
// locale. Each overlay filesystem is laid out as <locale>/*.yml and its files
// replace the embedded files with the same name.
func Load(locale string, overlays ...fs.FS) (*Catalog, error) {
	embedded, err := fs.Sub(catalogsFs, "catalogs")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	filesystems := append(append([]fs.FS{}, overlays...), embedded)
	merged := mergefs.Merge(filesystems...)

	messages := map[string]string{}

	locales := []string{FallbackLocale}
	if locale != "" && locale != FallbackLocale {
		locales = append(locales, locale)
	}

	for _, l := range locales {
		if err := loadLocale(merged, l, messages); err != nil {
			return nil, errors.Wrapf(err, "could not load locale '%s'", l)
		}
	}

	slog.Debug("translations loaded", slog.String("locale", locale), slog.Int("messages", len(messages)))

	return &Catalog{
		locale:   locale,
		messages: messages,
	}, nil
}

func loadLocale(fsys fs.FS, locale string, messages map[string]string) error {
	files, err := fs.Glob(fsys, path.Join(locale, "*.yml"))
	if err != nil {
		return errors.WithStack(err)
	}

	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return errors.WithStack(err)
		}

		var document map[string]any
		if err := yaml.Unmarshal(data, &document); err != nil {
			return errors.Wrapf(err, "could not parse catalog '%s'", f)
		}

		flatten("", document, messages)
	}

	return nil
}

func flatten(prefix string, value any, messages map[string]string) {
	switch typ := value.(type) {
	case map[string]any:
		for k, v := range typ {
			flatten(join(prefix, k), v, messages)
		}
	case map[any]any:
		for k, v := range typ {
			flatten(join(prefix, fmt.Sprint(k)), v, messages)
		}
	case nil:
	default:
		if prefix != "" {
			messages[prefix] = fmt.Sprint(typ)
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
