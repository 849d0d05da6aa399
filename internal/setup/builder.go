package setup

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/bornholm/submenu/internal/config"
	"github.com/bornholm/submenu/internal/icon"
	"github.com/bornholm/submenu/internal/translate"
	"github.com/bornholm/submenu/internal/urls"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/pkg/errors"
)

var NewURLServiceFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*urls.Service, error) {
	service, err := urls.New(string(conf.HTTP.BaseURL))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return service, nil
})

var NewCatalogFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*translate.Catalog, error) {
	overlays := make([]fs.FS, 0, len(conf.Translations.Dirs))
	for _, dir := range conf.Translations.Dirs {
		overlays = append(overlays, os.DirFS(dir))
	}

	catalog, err := translate.Load(string(conf.Translations.Locale), overlays...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return catalog, nil
})

var NewBuilderFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*navigation.Builder, error) {
	reg, err := NewRegistryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	service, err := NewURLServiceFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	catalog, err := NewCatalogFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	builder := navigation.NewBuilder(reg,
		navigation.WithURLResolver(service),
		navigation.WithTranslator(catalog),
		navigation.WithIconResolver(icon.NewResolver(service)),
		navigation.WithAdminPath(strings.Trim(string(conf.HTTP.AdminPrefix), "/")),
		navigation.WithLazyTitles(bool(conf.Navigation.LazyTitles)),
		navigation.WithGroupConfig(navigation.GroupConfig{
			Assignments:  conf.Navigation.Groups,
			Labels:       conf.Navigation.Labels,
			DefaultGroup: string(conf.Navigation.DefaultGroup),
			IconPattern:  string(conf.Navigation.GroupIcon),
		}),
	)

	return builder, nil
})
