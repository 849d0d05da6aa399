package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/bornholm/submenu/internal/access"
	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/authn/basic"
	"github.com/bornholm/submenu/internal/icon"
	"github.com/bornholm/submenu/internal/urls"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/bornholm/submenu/pkg/registry/static"
	"github.com/pkg/errors"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	service, err := urls.New("http://localhost")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	dashboard := navigation.NewModule("dashboard")
	dashboard.Title = "Dashboard"
	dashboard.Icon = "fa-dashboard"

	pages := navigation.NewModule("pages")
	pages.Title = "Pages"
	pages.Sections = navigation.Positional("index", map[string]any{"slug": "create", "title": "New Page"})

	users := navigation.NewModule("users")
	users.Title = "Users"
	users.Access = `"admin" in user.roles`

	registry := static.New(dashboard, pages, users)

	builder := navigation.NewBuilder(registry,
		navigation.WithURLResolver(service),
		navigation.WithIconResolver(icon.NewResolver(service)),
		navigation.WithLazyTitles(true),
	)

	return NewHandler("/admin", builder, access.NewChecker(), service)
}

func withUser(user authn.User, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(authn.WithContextUser(r.Context(), user)))
	})
}

func TestServeShell(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/pages/create", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	body := res.Body.String()

	expected := []string{
		`data-group="dashboard"`,
		`data-group="apps"`,
		`<a href="http://localhost/admin/pages/create" class="is-active" data-active="true">New Page</a>`,
		`data-sections="pages"`,
		`<img class="icon" src="http://localhost/images/groups/apps.svg" alt="">`,
	}

	for _, e := range expected {
		if !strings.Contains(body, e) {
			t.Errorf("body: expected to contain '%s'", e)
		}
	}

	if strings.Contains(body, `data-group="users"`) || strings.Contains(body, "admin/users") {
		t.Errorf("body: expected restricted module to be hidden")
	}
}

func TestServeShellUnknownModule(t *testing.T) {
	handler := newTestHandler(t)

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/admin/unknown", nil))

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected restricted module to be hidden, got '%v'", g)
	}
}

func TestServeNavigation(t *testing.T) {
	handler := newTestHandler(t)

	type testCase struct {
		User         authn.User
		ExpectedKeys []string
	}

	testCases := []testCase{
		{User: authn.Anonymous, ExpectedKeys: []string{"dashboard", "apps"}},
		{User: basic.NewUser("admin", "admin", "admin"), ExpectedKeys: []string{"dashboard", "apps"}},
	}

	for _, tc := range testCases {
		t.Run(tc.User.UserSubject(), func(t *testing.T) {
			query := url.Values{"url": []string{"http://localhost/admin/pages/create"}}
			req := httptest.NewRequest(http.MethodGet, "/api/navigation?"+query.Encode(), nil)
			res := httptest.NewRecorder()

			withUser(tc.User, handler).ServeHTTP(res, req)

			if e, g := http.StatusOK, res.Code; e != g {
				t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
			}

			var payload navigationResponse
			if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedKeys, payload.Tree.Keys(); !reflect.DeepEqual(e, g) {
				t.Fatalf("tree.Keys(): expected '%v', got '%v'", e, g)
			}

			apps, _ := payload.Tree.Group("apps")
			if !apps.Active {
				t.Errorf("apps.Active: expected true")
			}

			pages, exists := apps.Addon("pages")

			switch tc.User.UserSubject() {
			case "admin":
				// users joins pages in the apps group
				if !exists || !pages.Active() {
					t.Errorf("pages addon: expected active addon, got '%+v'", pages)
				}

				if _, exists := apps.Addon("users"); !exists {
					t.Errorf("users addon: expected admin to see it")
				}
			default:
				if !apps.Collapsed() {
					t.Errorf("apps.Collapsed(): expected single module group to be collapsed")
				}
			}
		})
	}
}

func TestServeSections(t *testing.T) {
	handler := newTestHandler(t)

	query := url.Values{"url": []string{"http://localhost/admin/pages/create"}}
	req := httptest.NewRequest(http.MethodGet, "/api/modules/pages/sections?"+query.Encode(), nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	var payload sectionsResponse
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(payload.Sections); e != g {
		t.Fatalf("len(payload.Sections): expected '%v', got '%v'", e, g)
	}

	if payload.Sections[0].Active {
		t.Errorf("index: expected inactive")
	}

	if !payload.Sections[1].Exact {
		t.Errorf("create: expected exact match")
	}

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/modules/users/sections", nil))

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}
}
