package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address     InterpolatedString    `yaml:"address"`
	BaseURL     InterpolatedString    `yaml:"baseUrl"`
	AdminPrefix InterpolatedString    `yaml:"adminPrefix"`
	ReadTimeout *InterpolatedDuration `yaml:"readTimeout"`
	RateLimit   RateLimit             `yaml:"rateLimit"`
}

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address:     "${SUBMENU_HTTP_ADDRESS:-:8080}",
		BaseURL:     "${SUBMENU_HTTP_BASE_URL:-http://localhost:8080}",
		AdminPrefix: "${SUBMENU_HTTP_ADMIN_PREFIX:-/admin}",
		ReadTimeout: NewInterpolatedDuration(10 * time.Second),
		RateLimit: RateLimit{
			Rate:  10,
			Burst: 20,
		},
	}
}

func NewInterpolatedDuration(d time.Duration) *InterpolatedDuration {
	id := InterpolatedDuration(d)
	return &id
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                 []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":         []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":         []*yaml.Comment{yaml.HeadComment(" Public base URL, used to make navigation links absolute")},
		".adminPrefix":     []*yaml.Comment{yaml.HeadComment(" Path prefix of the admin panel", " Module pages live under <baseUrl><adminPrefix>/<module>")},
		".readTimeout":     []*yaml.Comment{yaml.HeadComment(" Maximum duration for reading a request header")},
		".rateLimit":       []*yaml.Comment{yaml.HeadComment(" Navigation API rate limiting, per authenticated user")},
		".rateLimit.rate":  []*yaml.Comment{yaml.HeadComment(" Allowed requests per second")},
		".rateLimit.burst": []*yaml.Comment{yaml.HeadComment(" Maximum burst size")},
	}
}
