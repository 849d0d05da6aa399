package navigation

import "strings"

// Annotate returns a copy of the tree with activity flags computed for the
// given URL. A node is active when the URL contains its href and a section
// is exact when the URL equals its href. Activity propagates to the
// enclosing addon and group.
func Annotate(tree *Tree, currentURL string) *Tree {
	annotated := tree.Clone()

	for _, group := range annotated.Groups {
		group.Active = false

		for _, section := range group.Sections {
			markSection(section, currentURL)
			group.Active = group.Active || section.Active
		}

		for _, addon := range group.Addons {
			if addon.Link != nil {
				markSection(addon.Link, currentURL)
				group.Active = group.Active || addon.Link.Active
				continue
			}

			item := addon.Item
			item.Active = contains(currentURL, item.Href)

			for _, section := range item.Sections {
				markSection(section, currentURL)
				item.Active = item.Active || section.Active
			}

			group.Active = group.Active || item.Active
		}
	}

	return annotated
}

// AnnotateSections returns copies of the sections with activity flags
// computed for the given URL.
func AnnotateSections(sections []*Section, currentURL string) []*Section {
	annotated := cloneSections(sections)
	for _, s := range annotated {
		markSection(s, currentURL)
	}
	return annotated
}

func markSection(section *Section, currentURL string) {
	section.Active = contains(currentURL, section.Href)
	section.Exact = section.Href != "" && currentURL == section.Href
}

// contains matches by substring, not by path segment: "/admin/page" is
// active for "/admin/pages/5".
func contains(currentURL, href string) bool {
	if href == "" {
		return false
	}

	return strings.Contains(currentURL, href)
}
