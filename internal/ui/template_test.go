package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/pkg/errors"
)

func TestRenderAttributes(t *testing.T) {
	type testCase struct {
		Attributes map[string]any
		Classes    []string
		Expected   string
	}

	testCases := []testCase{
		{
			Attributes: map[string]any{"href": "http://localhost/admin/pages", "data-toggle": "modal"},
			Expected:   `data-toggle="modal" href="http://localhost/admin/pages"`,
		},
		{
			Attributes: map[string]any{"href": "javascript:alert(1)"},
			Expected:   `href="#ZgotmplZ"`,
		},
		{
			Attributes: map[string]any{"href": " JavaScript:alert(1)", "src": "data:text/html,x"},
			Expected:   `href="#ZgotmplZ" src="#ZgotmplZ"`,
		},
		{
			Attributes: map[string]any{"href": "mailto:admin@example.org", "data-href": "pages/legacy"},
			Expected:   `data-href="pages/legacy" href="mailto:admin@example.org"`,
		},
		{
			Attributes: map[string]any{"href": "/admin", "class": "btn  btn-primary"},
			Classes:    []string{"is-active"},
			Expected:   `href="/admin" class="btn btn-primary is-active"`,
		},
		{
			Attributes: map[string]any{"href": "/admin"},
			Classes:    []string{""},
			Expected:   `href="/admin"`,
		},
		{
			Attributes: map[string]any{"onclick": "alert(1)", `x" onload="y`: "z", "title": `a "quoted" <b>`},
			Expected:   `title="a &#34;quoted&#34; &lt;b&gt;"`,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if e, g := tc.Expected, string(renderAttributes(tc.Attributes, tc.Classes...)); e != g {
				t.Errorf("renderAttributes(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestSectionLinkTemplate(t *testing.T) {
	tmpl, err := Templates(nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	section := &navigation.Section{
		Slug:  "edit",
		Title: "Edit",
		Href:  "http://localhost/admin/pages/edit",
		Attributes: map[string]any{
			"href":  "http://localhost/admin/pages/edit",
			"class": "btn",
		},
		Active: true,
		Exact:  true,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "section_link", section); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	e := `<a href="http://localhost/admin/pages/edit" class="btn is-active" data-active="true">Edit</a>`
	if g := buf.String(); !strings.Contains(g, e) {
		t.Errorf("section_link: expected to contain '%s', got '%s'", e, g)
	}

	if g := strings.Count(buf.String(), "class="); g != 1 {
		t.Errorf("section_link: expected a single class attribute, got %d", g)
	}
}
