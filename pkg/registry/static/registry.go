package static

import (
	"context"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Registry serves an in-memory list of modules.
type Registry struct {
	modules []navigation.Module
	mutex   sync.RWMutex
}

// Modules implements navigation.Registry.
func (r *Registry) Modules(ctx context.Context) ([]navigation.Module, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return slices.Clone(r.modules), nil
}

// Module implements navigation.Registry.
func (r *Registry) Module(ctx context.Context, slug string) (navigation.Module, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	// Later declarations override earlier ones
	for i := len(r.modules) - 1; i >= 0; i-- {
		if r.modules[i].Slug == slug {
			return r.modules[i], nil
		}
	}

	return navigation.Module{}, errors.Wrapf(registry.ErrNotFound, "could not find module '%s'", slug)
}

// Save implements registry.Writer.
func (r *Registry) Save(ctx context.Context, m navigation.Module) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.modules = slices.DeleteFunc(r.modules, func(existing navigation.Module) bool {
		return existing.Slug == m.Slug
	})

	r.modules = append(r.modules, m)

	return nil
}

// Delete implements registry.Writer.
func (r *Registry) Delete(ctx context.Context, slug string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.modules = slices.DeleteFunc(r.modules, func(existing navigation.Module) bool {
		return existing.Slug == slug
	})

	return nil
}

func New(modules ...navigation.Module) *Registry {
	return &Registry{
		modules: modules,
	}
}

var (
	_ navigation.Registry = &Registry{}
	_ registry.Writer     = &Registry{}
)

type fileModule navigation.Module

func (m *fileModule) UnmarshalYAML(unmarshal func(any) error) error {
	module := navigation.NewModule("")
	if err := unmarshal(&module); err != nil {
		return errors.WithStack(err)
	}

	*m = fileModule(module)

	return nil
}

type file struct {
	Modules []fileModule `yaml:"modules"`
}

// Load reads a modules YAML document. Sections declared as a mapping keep
// their declaration order.
func Load(r io.Reader) ([]navigation.Module, error) {
	var f file

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithStack(err)
	}

	modules := make([]navigation.Module, 0, len(f.Modules))
	for idx, m := range f.Modules {
		if m.Slug == "" {
			return nil, errors.Errorf("module #%d has no slug", idx)
		}

		modules = append(modules, navigation.Module(m))
	}

	return modules, nil
}

func LoadFile(path string) ([]navigation.Module, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer file.Close()

	modules, err := Load(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load modules from '%s'", path)
	}

	return modules, nil
}
