package navigation

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

type Options struct {
	Context Context
	Groups  GroupConfig
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Context: Context{
			AdminPath: DefaultAdminPath,
		},
		Groups: GroupConfig{
			Assignments:  map[string]string{},
			Labels:       map[string]string{},
			DefaultGroup: DefaultGroup,
			IconPattern:  DefaultGroupIcon,
		},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithURLResolver(urls URLResolver) OptionFunc {
	return func(opts *Options) {
		opts.Context.URLs = urls
	}
}

func WithTranslator(translator Translator) OptionFunc {
	return func(opts *Options) {
		opts.Context.Translator = translator
	}
}

func WithIconResolver(icons IconResolver) OptionFunc {
	return func(opts *Options) {
		opts.Context.Icons = icons
	}
}

func WithAdminPath(path string) OptionFunc {
	return func(opts *Options) {
		opts.Context.AdminPath = path
	}
}

func WithLazyTitles(enabled bool) OptionFunc {
	return func(opts *Options) {
		opts.Context.LazyTitles = enabled
	}
}

func WithGroupConfig(groups GroupConfig) OptionFunc {
	return func(opts *Options) {
		opts.Groups = groups
	}
}

// Builder assembles navigation trees. It holds no per request state and
// can be shared between goroutines as long as its collaborators can.
type Builder struct {
	registry   Registry
	context    Context
	normalizer *Normalizer
	grouper    *Grouper
}

func NewBuilder(registry Registry, funcs ...OptionFunc) *Builder {
	opts := NewOptions(funcs...)

	return &Builder{
		registry:   registry,
		context:    opts.Context,
		normalizer: &Normalizer{Context: opts.Context},
		grouper:    &Grouper{Config: opts.Groups, Context: opts.Context},
	}
}

// Build collects the modules accessible through the given predicate and
// returns the grouped navigation tree annotated for the current URL.
func (b *Builder) Build(ctx context.Context, currentURL string, access AccessFunc) (*Tree, error) {
	modules, err := Collect(ctx, b.registry, access)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	items := make([]*MenuItem, 0, len(modules))
	for _, m := range modules {
		items = append(items, b.MenuItem(m))
	}

	tree := b.grouper.Group(items)

	slog.DebugContext(ctx, "navigation tree built",
		slog.Int("modules", len(modules)),
		slog.Any("groups", tree.Keys()),
	)

	return Annotate(tree, currentURL), nil
}

// Sections returns the annotated sections of a single module.
func (b *Builder) Sections(ctx context.Context, slug string, currentURL string) ([]*Section, error) {
	m, err := b.Module(ctx, slug)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return AnnotateSections(b.normalizer.Normalize(m), currentURL), nil
}

// MenuItem builds the navigation entry of a module.
func (b *Builder) MenuItem(m Module) *MenuItem {
	return &MenuItem{
		Slug:         m.Slug,
		Breadcrumb:   b.context.translate(m.Name),
		Icon:         b.context.icon(m.Icon),
		Title:        b.title(m),
		Namespace:    m.Namespace,
		Href:         b.context.to(b.context.adminPath() + "/" + m.Slug),
		RootMenu:     m.RootMenu,
		RootMenuIcon: m.RootMenuIcon,
		Sections:     b.normalizer.Normalize(m),
	}
}

func (b *Builder) title(m Module) string {
	for _, candidate := range []string{m.Title, m.Name} {
		if title := b.context.translate(candidate); title != "" {
			return title
		}
	}

	return Humanize(m.Slug)
}

// Module returns a single module from the registry.
func (b *Builder) Module(ctx context.Context, slug string) (Module, error) {
	m, err := b.registry.Module(ctx, slug)
	if err != nil {
		return Module{}, errors.WithStack(err)
	}

	return m, nil
}
