package access

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/authn/basic"
	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/pkg/errors"
)

func TestCheck(t *testing.T) {
	type testCase struct {
		Rule     string
		User     authn.User
		Expected bool
	}

	admin := basic.NewUser("admin", "admin", "admin")
	editor := basic.NewUser("jdoe", "secret", "editor")

	testCases := []testCase{
		{Rule: "", User: nil, Expected: true},
		{Rule: "true", User: editor, Expected: true},
		{Rule: `"admin" in user.roles`, User: admin, Expected: true},
		{Rule: `"admin" in user.roles`, User: editor, Expected: false},
		{Rule: `hasRole(user.roles, "editor")`, User: editor, Expected: true},
		{Rule: `hasRole(user.roles, "editor")`, User: nil, Expected: false},
		{Rule: `user.name == "jdoe" && module.slug == "pages"`, User: editor, Expected: true},
		{Rule: `module.namespace startsWith "anomaly.module."`, User: admin, Expected: true},
	}

	checker := NewChecker()

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d: %s", idx, tc.Rule), func(t *testing.T) {
			m := navigation.NewModule("pages")
			m.Namespace = "anomaly.module.pages"
			m.Access = tc.Rule

			allowed, err := checker.Check(context.Background(), tc.User, m)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, allowed; e != g {
				t.Errorf("allowed: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestCheckInvalidRule(t *testing.T) {
	checker := NewChecker()

	m := navigation.NewModule("pages")
	m.Access = "user.roles +"

	if _, err := checker.Check(context.Background(), authn.Anonymous, m); err == nil {
		t.Errorf("err: expected compilation error")
	}
}

func TestAccessFuncWithCollect(t *testing.T) {
	users := navigation.NewModule("users")
	users.Access = `"admin" in user.roles`

	registry := &stubRegistry{modules: []navigation.Module{
		navigation.NewModule("dashboard"),
		navigation.NewModule("pages"),
		users,
	}}

	checker := NewChecker()

	type testCase struct {
		User     authn.User
		Expected []string
	}

	testCases := []testCase{
		{User: basic.NewUser("admin", "admin", "admin"), Expected: []string{"dashboard", "pages", "users"}},
		{User: basic.NewUser("jdoe", "secret", "editor"), Expected: []string{"dashboard", "pages"}},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			modules, err := navigation.Collect(context.Background(), registry, checker.AccessFunc(tc.User))
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			slugs := make([]string, 0, len(modules))
			for _, m := range modules {
				slugs = append(slugs, m.Slug)
			}

			if e, g := tc.Expected, slugs; !reflect.DeepEqual(e, g) {
				t.Errorf("slugs: expected '%v', got '%v'", e, g)
			}
		})
	}
}

type stubRegistry struct {
	modules []navigation.Module
}

func (r *stubRegistry) Modules(ctx context.Context) ([]navigation.Module, error) {
	return r.modules, nil
}

func (r *stubRegistry) Module(ctx context.Context, slug string) (navigation.Module, error) {
	return navigation.Module{}, errors.New("not implemented")
}
