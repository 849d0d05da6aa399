package navigation

import (
	"strings"
)

// Translator resolves localized strings by key.
type Translator interface {
	Has(key string) bool
	Translate(key string) string
}

// URLResolver turns application relative paths into absolute URLs.
type URLResolver interface {
	To(path string) string
}

// IconResolver turns an icon identifier into renderable markup.
type IconResolver interface {
	Icon(identifier string) string
}

const DefaultAdminPath = "admin"

// Context carries the collaborators shared by every stage of a build.
type Context struct {
	URLs       URLResolver
	Translator Translator
	Icons      IconResolver

	// AdminPath is the path segment under which module pages live.
	AdminPath string

	// LazyTitles enables humanized section titles when no translation exists.
	LazyTitles bool
}

func (c Context) adminPath() string {
	if c.AdminPath == "" {
		return DefaultAdminPath
	}

	return strings.Trim(c.AdminPath, "/")
}

func (c Context) to(path string) string {
	if c.URLs == nil {
		return "/" + strings.TrimLeft(path, "/")
	}

	return c.URLs.To(path)
}

func (c Context) has(key string) bool {
	if c.Translator == nil {
		return false
	}

	return c.Translator.Has(key)
}

func (c Context) translate(key string) string {
	if c.Translator == nil || !c.Translator.Has(key) {
		return key
	}

	return c.Translator.Translate(key)
}

func (c Context) icon(identifier string) string {
	if c.Icons == nil || identifier == "" {
		return identifier
	}

	return c.Icons.Icon(identifier)
}

type TranslatorFunc func(key string) (string, bool)

func (fn TranslatorFunc) Has(key string) bool {
	_, ok := fn(key)
	return ok
}

func (fn TranslatorFunc) Translate(key string) string {
	value, ok := fn(key)
	if !ok {
		return key
	}

	return value
}

var _ Translator = TranslatorFunc(nil)

type URLResolverFunc func(path string) string

func (fn URLResolverFunc) To(path string) string {
	return fn(path)
}

var _ URLResolver = URLResolverFunc(nil)
