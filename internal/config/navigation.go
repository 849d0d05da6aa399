package config

import (
	"github.com/goccy/go-yaml"
)

type Navigation struct {
	LazyTitles   InterpolatedBool      `yaml:"lazyTitles"`
	DefaultGroup InterpolatedString    `yaml:"defaultGroup"`
	GroupIcon    InterpolatedString    `yaml:"groupIcon"`
	Groups       InterpolatedStringMap `yaml:"groups"`
	Labels       InterpolatedStringMap `yaml:"labels"`
}

func NewDefaultNavigationConfig() Navigation {
	return Navigation{
		LazyTitles:   true,
		DefaultGroup: "${SUBMENU_NAVIGATION_DEFAULT_GROUP:-apps}",
		GroupIcon:    "images/groups/%s.svg",
		Groups: InterpolatedStringMap{
			"dashboard":     "dashboard",
			"pages":         "content",
			"posts":         "content",
			"files":         "content",
			"navigation":    "content",
			"forms":         "builders",
			"repeaters":     "builders",
			"users":         "users",
			"settings":      "settings",
			"addons":        "settings",
			"redirects":     "settings",
			"notifications": "settings",
		},
		Labels: InterpolatedStringMap{},
	}
}

func NewNavigationConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":              []*yaml.Comment{yaml.HeadComment(" Navigation tree configuration")},
		".lazyTitles":   []*yaml.Comment{yaml.HeadComment(" Humanize section slugs when no translation is found")},
		".defaultGroup": []*yaml.Comment{yaml.HeadComment(" Group receiving the modules absent from the 'groups' table")},
		".groupIcon":    []*yaml.Comment{yaml.HeadComment(" Group icon asset path, '%s' is replaced by the group key")},
		".groups":       []*yaml.Comment{yaml.HeadComment(" Module slug to group key assignments")},
		".labels":       []*yaml.Comment{yaml.HeadComment(" Group key to label (or translation key) overrides")},
	}
}
