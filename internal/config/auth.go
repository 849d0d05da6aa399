package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Users []User `yaml:"users"`
}

type User struct {
	Name     InterpolatedString       `yaml:"name"`
	Password InterpolatedString       `yaml:"password"`
	Roles    *InterpolatedStringSlice `yaml:"roles"`
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Users: []User{
			{
				Name:     "${SUBMENU_ADMIN_USERNAME:-admin}",
				Password: "${SUBMENU_ADMIN_PASSWORD:-}",
				Roles: &InterpolatedStringSlice{
					"admin",
				},
			},
		},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                   []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".users":             []*yaml.Comment{yaml.HeadComment(" Admin panel users (HTTP basic authentication)", " Users without password are ignored, no usable user disables authentication")},
		".users[0].password": []*yaml.Comment{yaml.HeadComment(" Plain text or bcrypt hash ($2a$...)")},
		".users[0].roles":    []*yaml.Comment{yaml.HeadComment(" Roles exposed to module access rules as 'user.roles'")},
	}
}
