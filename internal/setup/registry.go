package setup

import (
	"context"
	"log/slog"

	"github.com/bornholm/submenu/internal/config"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry"
	"github.com/pkg/errors"

	_ "github.com/bornholm/submenu/pkg/registry/sqlite"
	_ "github.com/bornholm/submenu/pkg/registry/static"
)

var NewRegistryFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (navigation.Registry, error) {
	var options any
	if conf.Registry.Options != nil {
		options = conf.Registry.Options.Data
	}

	reg, err := registry.New(registry.Type(conf.Registry.Type), options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "module registry ready", slog.String("type", string(conf.Registry.Type)))

	return reg, nil
})
