package static

import (
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry"
	"github.com/pkg/errors"
)

const Type registry.Type = "static"

func init() {
	registry.Register(Type, CreateRegistryFromOptions)
}

type Options struct {
	// File is an optional YAML document listing modules. Its modules are
	// declared after the inline ones.
	File    string           `mapstructure:"file" yaml:"file"`
	Modules []map[string]any `mapstructure:"modules" yaml:"modules"`
}

func CreateRegistryFromOptions(options any) (navigation.Registry, error) {
	opts := Options{}

	if err := registry.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' registry options", Type)
	}

	modules, err := registry.DecodeModules(opts.Modules)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if opts.File != "" {
		fromFile, err := LoadFile(opts.File)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		modules = append(modules, fromFile...)
	}

	return New(modules...), nil
}
