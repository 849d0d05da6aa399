package ui

import "github.com/bornholm/submenu/pkg/navigation"

type NavbarItem struct {
	Label    string
	URL      string
	Icon     string
	Position string // "left" or "right"
}

type NavbarTemplateData struct {
	Username    string
	NavbarItems []NavbarItem
}

func NavbarItemNavigationAPI(url string) NavbarItem {
	return NavbarItem{
		Label:    "Navigation API",
		URL:      url,
		Icon:     "fa-code",
		Position: "right",
	}
}

// SidebarTemplateData renders the interactive menu.
type SidebarTemplateData struct {
	Tree *navigation.Tree
}

// SectionsTemplateData renders the section links of the current module.
type SectionsTemplateData struct {
	Module   *navigation.MenuItem
	Sections []*navigation.Section
}
