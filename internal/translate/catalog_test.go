package translate

import (
	"fmt"
	"io/fs"
	"os"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
)

func TestLoad(t *testing.T) {
	type testCase struct {
		Locale   string
		Overlays []fs.FS
		Expected map[string]string
		Missing  []string
	}

	testCases := []testCase{
		{
			Locale: "en",
			Expected: map[string]string{
				"submenu.group.apps":    "Applications",
				"submenu.group.content": "Content",
			},
			Missing: []string{"submenu.group", "anomaly.module.pages.addon.name"},
		},
		{
			Locale: "fr",
			Expected: map[string]string{
				"submenu.group.content": "Contenu",
				"submenu.group.apps":    "Applications",
			},
		},
		{
			Locale:   "en",
			Overlays: []fs.FS{os.DirFS("testdata/overlay")},
			Expected: map[string]string{
				"submenu.group.content":                    "Editorial",
				"anomaly.module.pages.addon.name":          "Pages",
				"anomaly.module.pages.section.index.title": "All pages",
				"anomaly.module.pages.addon.section.types": "Page types",
			},
			Missing: []string{"submenu.group.apps"},
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			catalog, err := Load(tc.Locale, tc.Overlays...)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			for key, e := range tc.Expected {
				if !catalog.Has(key) {
					t.Errorf("catalog.Has(%q): expected true", key)
				}

				if g := catalog.Translate(key); e != g {
					t.Errorf("catalog.Translate(%q): expected '%v', got '%v'", key, e, g)
				}
			}

			for _, key := range tc.Missing {
				if catalog.Has(key) {
					t.Errorf("catalog.Has(%q): expected false", key)
				}

				if e, g := key, catalog.Translate(key); e != g {
					t.Errorf("catalog.Translate(%q): expected key back, got '%v'", key, g)
				}
			}
		})
	}
}

func TestLoadFallback(t *testing.T) {
	overlay := fstest.MapFS{
		"de/submenu.yml": &fstest.MapFile{Data: []byte("submenu:\n  group:\n    content: Inhalt\n")},
	}

	catalog, err := Load("de", overlay)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Inhalt", catalog.Translate("submenu.group.content"); e != g {
		t.Errorf("content: expected '%v', got '%v'", e, g)
	}

	if e, g := "Builders", catalog.Translate("submenu.group.builders"); e != g {
		t.Errorf("builders: expected fallback '%v', got '%v'", e, g)
	}
}

func TestLoadInvalidCatalog(t *testing.T) {
	overlay := fstest.MapFS{
		"en/broken.yml": &fstest.MapFile{Data: []byte("submenu: [unclosed\n")},
	}

	if _, err := Load("en", overlay); err == nil {
		t.Errorf("err: expected parse error")
	}
}
