package sqlite

import (
	"context"
	"log/slog"

	"github.com/bornholm/submenu/pkg/log"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

const Type registry.Type = "sqlite"

func init() {
	registry.Register(Type, CreateRegistryFromOptions)
}

type Options struct {
	Path string `mapstructure:"path" yaml:"path"`
	// Seed lists modules saved when the registry is created, replacing
	// stored modules with the same slug.
	Seed []map[string]any `mapstructure:"seed" yaml:"seed,omitempty"`
}

func CreateRegistryFromOptions(options any) (navigation.Registry, error) {
	opts := Options{}

	if err := registry.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' registry options", Type)
	}

	if opts.Path == "" {
		return nil, errors.Errorf("'%s' registry requires a database path", Type)
	}

	seed, err := registry.DecodeModules(opts.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode seed modules")
	}

	pool := sqlitemigration.NewPool(opts.Path, schema, sqlitemigration.Options{
		Flags: sqlite.OpenCreate | sqlite.OpenReadWrite | sqlite.OpenWAL,
		PrepareConn: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = on", nil)
		},
		OnError: func(err error) {
			slog.Error("registry database error", log.Error(errors.WithStack(err)))
		},
	})

	reg := NewRegistry(pool)

	ctx := context.Background()
	for _, m := range seed {
		if err := reg.Save(ctx, m); err != nil {
			return nil, errors.Wrapf(err, "could not seed module '%s'", m.Slug)
		}
	}

	return reg, nil
}
