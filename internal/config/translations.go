package config

import "github.com/goccy/go-yaml"

type Translations struct {
	Locale InterpolatedString      `yaml:"locale"`
	Dirs   InterpolatedStringSlice `yaml:"dirs"`
}

func NewDefaultTranslationsConfig() Translations {
	return Translations{
		Locale: "${SUBMENU_LOCALE:-en}",
		Dirs:   InterpolatedStringSlice{},
	}
}

func NewTranslationsConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":        []*yaml.Comment{yaml.HeadComment(" Translations configuration")},
		".locale": []*yaml.Comment{yaml.HeadComment(" Locale used to resolve titles and labels")},
		".dirs":   []*yaml.Comment{yaml.HeadComment(" Additional catalog directories, laid out as <dir>/<locale>/*.yml", " Their keys override the embedded catalogs")},
	}
}
