package navigation

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

const testBaseURL = "http://localhost"

var testURLs = URLResolverFunc(func(path string) string {
	return testBaseURL + "/" + strings.TrimLeft(path, "/")
})

type stubRegistry struct {
	modules []Module
	err     error
}

func (r *stubRegistry) Modules(ctx context.Context) ([]Module, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.modules, nil
}

func (r *stubRegistry) Module(ctx context.Context, slug string) (Module, error) {
	for _, m := range r.modules {
		if m.Slug == slug {
			return m, nil
		}
	}
	return Module{}, errors.Errorf("module '%s' not found", slug)
}

var _ Registry = &stubRegistry{}

func newTestModule(slug string, sections ...any) Module {
	m := NewModule(slug)
	m.Title = strings.ToUpper(slug[:1]) + slug[1:]
	m.Namespace = "test.module." + slug
	if len(sections) > 0 {
		m.Sections = Positional(sections...)
	}
	return m
}

func newTestContext() Context {
	return Context{
		URLs:      testURLs,
		AdminPath: DefaultAdminPath,
	}
}
