package urls

import (
	"net/url"
	"strings"

	"github.com/bornholm/submenu/pkg/navigation"
	"github.com/pkg/errors"
)

// Service resolves paths against the public base URL.
type Service struct {
	base *url.URL
}

// To implements navigation.URLResolver.
func (s *Service) To(path string) string {
	if IsAbsolute(path) {
		return path
	}

	return strings.TrimRight(s.base.String(), "/") + "/" + strings.TrimLeft(path, "/")
}

// Path returns the path component of the resolved URL.
func (s *Service) Path(path string) string {
	return strings.TrimRight(s.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
}

func (s *Service) Base() *url.URL {
	clone := *s.base
	return &clone
}

var _ navigation.URLResolver = &Service{}

func New(baseURL string) (*Service, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse base url '%s'", baseURL)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("base url '%s' must be absolute", baseURL)
	}

	base.RawQuery = ""
	base.Fragment = ""

	return &Service{base: base}, nil
}

// IsAbsolute reports whether the given link carries its own scheme.
func IsAbsolute(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") || strings.HasPrefix(link, "//")
}
