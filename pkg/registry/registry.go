package registry

import (
	"context"
	"slices"
	"sync"

	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnknownType = errors.New("unknown registry type")
)

type Type string

// Writer is implemented by registries accepting module updates.
type Writer interface {
	Save(ctx context.Context, m navigation.Module) error
	Delete(ctx context.Context, slug string) error
}

type Factory func(options any) (navigation.Registry, error)

var (
	factories = map[Type]Factory{}
	mutex     sync.RWMutex
)

func Register(registryType Type, factory Factory) {
	mutex.Lock()
	defer mutex.Unlock()

	factories[registryType] = factory
}

func Registered() []Type {
	mutex.RLock()
	defer mutex.RUnlock()

	types := make([]Type, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

func New(registryType Type, options any) (navigation.Registry, error) {
	mutex.RLock()
	factory, exists := factories[registryType]
	mutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrUnknownType, "could not find registry '%s'", registryType)
	}

	registry, err := factory(options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create registry '%s'", registryType)
	}

	return registry, nil
}

// Decode maps loosely typed options onto the given output, converting
// section declarations into navigation.RawSections.
func Decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			navigation.RawSectionsHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := decoder.Decode(input); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DecodeModules decodes raw module declarations. Fields left out keep the
// navigation.NewModule defaults.
func DecodeModules(raw []map[string]any) ([]navigation.Module, error) {
	modules := make([]navigation.Module, 0, len(raw))
	for idx, r := range raw {
		m := navigation.NewModule("")
		if err := Decode(r, &m); err != nil {
			return nil, errors.Wrapf(err, "could not decode module #%d", idx)
		}

		if m.Slug == "" {
			return nil, errors.Errorf("module #%d has no slug", idx)
		}

		modules = append(modules, m)
	}

	return modules, nil
}
