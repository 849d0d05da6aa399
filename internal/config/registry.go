package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bornholm/submenu/pkg/registry"
	"github.com/bornholm/submenu/pkg/registry/sqlite"
	"github.com/bornholm/submenu/pkg/registry/static"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Registry struct {
	Type    InterpolatedString `yaml:"type"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultRegistryConfig() Registry {
	return Registry{
		Type: InterpolatedString(fmt.Sprintf("${SUBMENU_REGISTRY_TYPE:-%s}", static.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"file": "${SUBMENU_REGISTRY_FILE:-}",
				"modules": []any{
					map[string]any{
						"slug":      "dashboard",
						"title":     "Dashboard",
						"icon":      "fa-dashboard",
						"namespace": "anomaly.module.dashboard",
					},
				},
			},
		},
	}
}

func NewRegistryConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Module registry configuration")},
		".type": []*yaml.Comment{yaml.HeadComment(" Registry type", fmt.Sprintf(" Available: %v", registry.Registered()))},
		".options": []*yaml.Comment{
			yaml.HeadComment(" Registry options"),
			getRegistryOptionComment("SQLite registry", sqlite.Options{Path: "modules.db"}),
		},
	}
}

func getRegistryOptionComment(message string, opts any) *yaml.Comment {
	rawOpts, err := yaml.Marshal(opts)
	if err != nil {
		panic(errors.WithStack(err))
	}

	comments := []string{message, "options:"}
	comments = append(comments, slices.Collect(func(yield func(string) bool) {
		for _, str := range strings.Split(strings.TrimSpace(string(rawOpts)), "\n") {
			if !yield("  " + str) {
				return
			}
		}
	})...)

	return yaml.FootComment(comments...)
}
