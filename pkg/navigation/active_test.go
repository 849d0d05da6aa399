package navigation

import (
	"fmt"
	"testing"
)

func TestAnnotateIsPure(t *testing.T) {
	ctx := newTestContext()

	items := buildItems(t, ctx, newTestModule("pages", "index", "create"))
	tree := (&Grouper{Context: ctx}).Group(items)

	annotated := Annotate(tree, "http://localhost/admin/pages/create")

	group, _ := tree.Group(DefaultGroup)
	if group.Active {
		t.Errorf("group.Active: expected input tree to stay inactive")
	}

	for _, s := range group.Sections {
		if s.Active || s.Exact {
			t.Errorf("section %q: expected input tree to stay inactive", s.Slug)
		}
	}

	group, _ = annotated.Group(DefaultGroup)
	if !group.Active {
		t.Errorf("group.Active: expected annotated group to be active")
	}

	reset := Annotate(annotated, "http://localhost/admin/users")

	group, _ = reset.Group(DefaultGroup)
	if group.Active {
		t.Errorf("group.Active: expected annotation to be recomputed from scratch")
	}
}

func TestAnnotateSubstringMatching(t *testing.T) {
	ctx := newTestContext()

	items := buildItems(t, ctx,
		newTestModule("page"),
		newTestModule("pages", "index", "create"),
	)
	tree := (&Grouper{Context: ctx}).Group(items)

	annotated := Annotate(tree, "http://localhost/admin/pages/5")

	group, _ := annotated.Group(DefaultGroup)

	page, _ := group.Addon("page")
	if !page.Active() {
		t.Errorf("page.Active(): expected substring match to activate 'page'")
	}

	if page.Link.Exact {
		t.Errorf("page.Link.Exact: expected false")
	}

	pages, _ := group.Addon("pages")
	if !pages.Active() {
		t.Errorf("pages.Active(): expected own href to activate 'pages'")
	}

	for _, s := range pages.Item.Sections {
		if s.Active {
			t.Errorf("section %q: expected inactive", s.Slug)
		}
	}
}

func TestAnnotatePropagation(t *testing.T) {
	ctx := newTestContext()

	tools := newTestModule("backup", "backup", "restore")
	tools.RootMenu = "Tools"

	items := buildItems(t, ctx,
		newTestModule("dashboard"),
		tools,
		newTestModule("files"),
		newTestModule("pages", "index", "create"),
		newTestModule("users", "users", "roles", "permissions"),
	)

	grouper := &Grouper{
		Config: GroupConfig{
			Assignments: map[string]string{"users": "identity"},
		},
		Context: ctx,
	}

	tree := grouper.Group(items)

	urls := []string{
		"http://localhost/admin/dashboard",
		"http://localhost/admin/backup/restore",
		"http://localhost/admin/files",
		"http://localhost/admin/pages/create",
		"http://localhost/admin/users/roles",
		"http://localhost/admin/unknown",
		"http://elsewhere.test/",
	}

	for idx, currentURL := range urls {
		t.Run(fmt.Sprintf("Case #%d: %s", idx, currentURL), func(t *testing.T) {
			annotated := Annotate(tree, currentURL)

			for _, group := range annotated.Groups {
				descendantActive := false

				for _, s := range group.Sections {
					descendantActive = descendantActive || s.Active
				}

				for _, a := range group.Addons {
					if a.Link != nil {
						descendantActive = descendantActive || a.Link.Active
						continue
					}

					sectionActive := false
					for _, s := range a.Item.Sections {
						sectionActive = sectionActive || s.Active
					}

					if sectionActive && !a.Item.Active {
						t.Errorf("addon %q: expected active section to activate the addon", a.Slug)
					}

					descendantActive = descendantActive || a.Item.Active
				}

				if e, g := descendantActive, group.Active; e != g {
					t.Errorf("group %q active: expected '%v', got '%v'", group.Key, e, g)
				}
			}
		})
	}
}

func TestAnnotateSections(t *testing.T) {
	normalizer := &Normalizer{Context: newTestContext()}
	sections := normalizer.Normalize(newTestModule("users", "users", "roles"))

	annotated := AnnotateSections(sections, "http://localhost/admin/users/roles")

	if !annotated[0].Active || annotated[0].Exact {
		t.Errorf("annotated[0]: expected active but not exact, got '%+v'", annotated[0])
	}

	if !annotated[1].Active || !annotated[1].Exact {
		t.Errorf("annotated[1]: expected active and exact, got '%+v'", annotated[1])
	}

	if sections[1].Active {
		t.Errorf("sections[1].Active: expected input to stay untouched")
	}
}
