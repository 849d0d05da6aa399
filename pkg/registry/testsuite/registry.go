package testsuite

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry"
	"github.com/pkg/errors"
)

type writableRegistry interface {
	navigation.Registry
	registry.Writer
}

type registryTestCase struct {
	Name string
	Run  func(ctx context.Context, reg writableRegistry) error
}

var registryTestCases = []registryTestCase{
	{
		Name: "SaveAndGet",
		Run:  SaveAndGet,
	},
	{
		Name: "SaveOverrides",
		Run:  SaveOverrides,
	},
	{
		Name: "Delete",
		Run:  Delete,
	},
	{
		Name: "NotFound",
		Run:  NotFound,
	},
	{
		Name: "SectionsRoundTrip",
		Run:  SectionsRoundTrip,
	},
}

func TestRegistry(t *testing.T, registryType registry.Type, opts any) {
	t.Logf("Using registry '%s'", registryType)

	reg, err := registry.New(registryType, opts)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	writable, ok := reg.(writableRegistry)
	if !ok {
		t.Fatalf("registry '%s' does not accept writes", registryType)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, tc := range registryTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := tc.Run(ctx, writable); err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}

func SaveAndGet(ctx context.Context, reg writableRegistry) error {
	m := navigation.NewModule("files")
	m.Title = "Files"
	m.Icon = "fa-folder"
	m.Namespace = "anomaly.module.files"
	m.RootMenu = "Content"

	if err := reg.Save(ctx, m); err != nil {
		return errors.WithStack(err)
	}

	stored, err := reg.Module(ctx, "files")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := m.Title, stored.Title; e != g {
		return errors.Errorf("stored.Title: expected '%v', got '%v'", e, g)
	}

	if e, g := m.RootMenu, stored.RootMenu; e != g {
		return errors.Errorf("stored.RootMenu: expected '%v', got '%v'", e, g)
	}

	if !stored.Enabled || !stored.Navigation {
		return errors.Errorf("stored: expected module to be enabled with navigation, got '%+v'", stored)
	}

	modules, err := reg.Modules(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	if !containsSlug(modules, "files") {
		return errors.New("modules: expected 'files' to be listed")
	}

	return nil
}

func SaveOverrides(ctx context.Context, reg writableRegistry) error {
	m := navigation.NewModule("forms")
	m.Title = "Forms"

	if err := reg.Save(ctx, m); err != nil {
		return errors.WithStack(err)
	}

	m.Title = "Form builder"
	m.Enabled = false

	if err := reg.Save(ctx, m); err != nil {
		return errors.WithStack(err)
	}

	stored, err := reg.Module(ctx, "forms")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := "Form builder", stored.Title; e != g {
		return errors.Errorf("stored.Title: expected '%v', got '%v'", e, g)
	}

	if stored.Enabled {
		return errors.New("stored.Enabled: expected false")
	}

	modules, err := reg.Modules(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	count := 0
	for _, m := range modules {
		if m.Slug == "forms" {
			count++
		}
	}

	if e, g := 1, count; e != g {
		return errors.Errorf("modules: expected '%v' entry for 'forms', got '%v'", e, g)
	}

	return nil
}

func Delete(ctx context.Context, reg writableRegistry) error {
	if err := reg.Save(ctx, navigation.NewModule("redirects")); err != nil {
		return errors.WithStack(err)
	}

	if err := reg.Delete(ctx, "redirects"); err != nil {
		return errors.WithStack(err)
	}

	if _, err := reg.Module(ctx, "redirects"); !errors.Is(err, registry.ErrNotFound) {
		return errors.Errorf("err: expected '%v', got '%v'", registry.ErrNotFound, err)
	}

	modules, err := reg.Modules(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	if containsSlug(modules, "redirects") {
		return errors.New("modules: expected 'redirects' to be removed")
	}

	return nil
}

func NotFound(ctx context.Context, reg writableRegistry) error {
	if _, err := reg.Module(ctx, "does-not-exist"); !errors.Is(err, registry.ErrNotFound) {
		return errors.Errorf("err: expected '%v', got '%v'", registry.ErrNotFound, err)
	}

	return nil
}

func SectionsRoundTrip(ctx context.Context, reg writableRegistry) error {
	m := navigation.NewModule("settings")
	m.Sections = navigation.RawSections{
		{Key: "settings", Section: navigation.RawRecord{"data-toggle": "collapse", "href": "custom/path"}},
		{Key: "fields", Section: navigation.RawSlug("fields")},
		{Section: navigation.RawRecord{"slug": "advanced", "title": "Advanced"}},
	}

	if err := reg.Save(ctx, m); err != nil {
		return errors.WithStack(err)
	}

	stored, err := reg.Module(ctx, "settings")
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := m.Sections, stored.Sections; !reflect.DeepEqual(e, g) {
		return errors.Errorf("stored.Sections: expected '%+v', got '%+v'", e, g)
	}

	return nil
}

func containsSlug(modules []navigation.Module, slug string) bool {
	for _, m := range modules {
		if m.Slug == slug {
			return true
		}
	}

	return false
}
