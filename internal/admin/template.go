package admin

import (
	"embed"
	"html/template"

	"github.com/bornholm/submenu/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// ShellTemplateData contains the data needed to render the admin shell
type ShellTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	ui.SidebarTemplateData
	ui.SectionsTemplateData
	CurrentURL  string
	ModuleCount int
}
