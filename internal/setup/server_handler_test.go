package setup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/submenu/internal/authn"
	"github.com/bornholm/submenu/internal/authn/basic"
	"github.com/bornholm/submenu/internal/config"
	"github.com/pkg/errors"
)

func TestNewHandlerFromConfig(t *testing.T) {
	conf := config.NewDefaultConfig()

	if err := config.LoadFile("testdata/config.yml", conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := config.Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	handler, err := NewHandlerFromConfig(context.Background(), conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	type testCase struct {
		Path           string
		Username       string
		Password       string
		ExpectedStatus int
		ExpectedBody   []string
	}

	testCases := []testCase{
		{
			Path:           "/backend/pages",
			ExpectedStatus: http.StatusUnauthorized,
		},
		{
			Path:           "/backend/pages",
			Username:       "editor",
			Password:       "editor",
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   []string{`data-group="content"`, "Editorial pages"},
		},
		{
			Path:           "/api/navigation?url=http://cms.example.org/backend/forms",
			Username:       "editor",
			Password:       "editor",
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   []string{`"key": "builders"`, `"title": "Form builders"`},
		},
		{
			Path:           "/api/modules/users/sections",
			Username:       "editor",
			Password:       "editor",
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Path:           "/api/modules/users/sections",
			Username:       "admin",
			Password:       "admin",
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   []string{`"href": "http://cms.example.org/backend/users/roles"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
			if tc.Username != "" {
				req.SetBasicAuth(tc.Username, tc.Password)
			}

			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			if e, g := tc.ExpectedStatus, res.Code; e != g {
				t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
			}

			if res.Header().Get(requestIDHeader) == "" {
				t.Errorf("res.Header(): expected request id")
			}

			body := res.Body.String()
			for _, e := range tc.ExpectedBody {
				if !strings.Contains(body, e) {
					t.Errorf("body: expected to contain '%s', got '%s'", e, body)
				}
			}
		})
	}
}

func TestNewHandlerFromConfigRateLimit(t *testing.T) {
	conf := config.NewDefaultConfig()

	if err := config.LoadFile("testdata/config.yml", conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := config.Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf.Auth.Users = nil
	conf.HTTP.RateLimit.Rate = 0.001
	conf.HTTP.RateLimit.Burst = 1

	handler, err := NewHandlerFromConfig(context.Background(), conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	type testCase struct {
		RemoteAddr     string
		ExpectedStatus int
	}

	testCases := []testCase{
		{RemoteAddr: "10.0.0.1:1000", ExpectedStatus: http.StatusOK},
		{RemoteAddr: "10.0.0.1:1001", ExpectedStatus: http.StatusTooManyRequests},
		{RemoteAddr: "10.0.0.1:1002", ExpectedStatus: http.StatusTooManyRequests},
		{RemoteAddr: "10.0.0.2:2000", ExpectedStatus: http.StatusOK},
		{RemoteAddr: "10.0.0.2:2001", ExpectedStatus: http.StatusTooManyRequests},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d: %s", idx, tc.RemoteAddr), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/navigation?url=http://cms.example.org/backend/pages", nil)
			req.RemoteAddr = tc.RemoteAddr

			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			if e, g := tc.ExpectedStatus, res.Code; e != g {
				t.Errorf("res.Code: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestRateLimitClientKey(t *testing.T) {
	type testCase struct {
		User        authn.User
		RemoteAddr  string
		ExpectedKey string
	}

	testCases := []testCase{
		{User: authn.Anonymous, RemoteAddr: "10.0.0.1:1000", ExpectedKey: "none-10.0.0.1"},
		{User: authn.Anonymous, RemoteAddr: "10.0.0.1:1001", ExpectedKey: "none-10.0.0.1"},
		{User: basic.NewUser("editor", "editor"), RemoteAddr: "10.0.0.1:1000", ExpectedKey: "basic-editor"},
		{User: basic.NewUser("editor", "editor"), RemoteAddr: "10.0.0.9:4000", ExpectedKey: "basic-editor"},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
			req.RemoteAddr = tc.RemoteAddr
			req = req.WithContext(authn.WithContextUser(req.Context(), tc.User))

			key, err := rateLimitClientKey(req)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedKey, key; e != g {
				t.Errorf("key: expected '%v', got '%v'", e, g)
			}
		})
	}

	if _, err := rateLimitClientKey(httptest.NewRequest(http.MethodGet, "/", nil)); !errors.Is(err, authn.ErrUnauthenticated) {
		t.Errorf("err: expected '%v', got '%v'", authn.ErrUnauthenticated, err)
	}
}
