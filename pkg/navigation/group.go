package navigation

import (
	"fmt"
	"slices"
	"strings"
)

const (
	DefaultGroup        = "apps"
	DefaultGroupIcon    = "images/groups/%s.svg"
	GroupLabelKeyPrefix = "submenu.group."
)

// MenuItem is the top level navigation entry of one module.
type MenuItem struct {
	Slug         string     `json:"slug" yaml:"slug"`
	Breadcrumb   string     `json:"breadcrumb" yaml:"breadcrumb"`
	Icon         string     `json:"icon" yaml:"icon"`
	Title        string     `json:"title" yaml:"title"`
	Namespace    string     `json:"namespace" yaml:"namespace"`
	Href         string     `json:"href" yaml:"href"`
	Active       bool       `json:"active" yaml:"active"`
	RootMenu     string     `json:"rootMenu,omitempty" yaml:"rootMenu,omitempty"`
	RootMenuIcon string     `json:"rootMenuIcon,omitempty" yaml:"rootMenuIcon,omitempty"`
	Sections     []*Section `json:"sections" yaml:"sections"`
}

func (i *MenuItem) clone() *MenuItem {
	c := *i
	c.Sections = cloneSections(i.Sections)
	return &c
}

// Addon is the entry of a module inside a group holding several modules.
// A module with fewer than two sections is reduced to its single Link.
type Addon struct {
	Slug string    `json:"slug" yaml:"slug"`
	Item *MenuItem `json:"item,omitempty" yaml:"item,omitempty"`
	Link *Section  `json:"link,omitempty" yaml:"link,omitempty"`
}

func (a *Addon) Collapsed() bool {
	return a.Link != nil
}

func (a *Addon) Title() string {
	if a.Link != nil {
		return a.Link.Title
	}
	return a.Item.Title
}

func (a *Addon) Href() string {
	if a.Link != nil {
		return a.Link.Href
	}
	return a.Item.Href
}

func (a *Addon) Active() bool {
	if a.Link != nil {
		return a.Link.Active
	}
	return a.Item.Active
}

func (a *Addon) clone() *Addon {
	c := &Addon{Slug: a.Slug}
	if a.Item != nil {
		c.Item = a.Item.clone()
	}
	if a.Link != nil {
		c.Link = a.Link.clone()
	}
	return c
}

// Group is a top level bucket of the navigation tree. A group holding a
// single module is collapsed: Addons is empty and Sections holds the
// module sections.
type Group struct {
	Key      string     `json:"key" yaml:"key"`
	Title    string     `json:"title" yaml:"title"`
	Icon     string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Active   bool       `json:"active" yaml:"active"`
	Addons   []*Addon   `json:"addons,omitempty" yaml:"addons,omitempty"`
	Sections []*Section `json:"sections,omitempty" yaml:"sections,omitempty"`

	items []*MenuItem
}

func (g *Group) Collapsed() bool {
	return len(g.Addons) == 0
}

// Addon returns the entry of the given module slug.
func (g *Group) Addon(slug string) (*Addon, bool) {
	for _, a := range g.Addons {
		if a.Slug == slug {
			return a, true
		}
	}
	return nil, false
}

func (g *Group) clone() *Group {
	c := &Group{
		Key:      g.Key,
		Title:    g.Title,
		Icon:     g.Icon,
		Active:   g.Active,
		Sections: cloneSections(g.Sections),
	}

	if g.Addons != nil {
		c.Addons = make([]*Addon, 0, len(g.Addons))
		for _, a := range g.Addons {
			c.Addons = append(c.Addons, a.clone())
		}
	}

	return c
}

// Tree is the ordered list of navigation groups.
type Tree struct {
	Groups []*Group `json:"groups" yaml:"groups"`
}

func (t *Tree) Keys() []string {
	keys := make([]string, 0, len(t.Groups))
	for _, g := range t.Groups {
		keys = append(keys, g.Key)
	}
	return keys
}

func (t *Tree) Group(key string) (*Group, bool) {
	for _, g := range t.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return nil, false
}

func (t *Tree) Clone() *Tree {
	c := &Tree{Groups: make([]*Group, 0, len(t.Groups))}
	for _, g := range t.Groups {
		c.Groups = append(c.Groups, g.clone())
	}
	return c
}

// GroupConfig is the static group assignment configuration.
type GroupConfig struct {
	// Assignments maps module slugs to group keys.
	Assignments map[string]string
	// Labels maps group keys to a translation key or a literal label.
	Labels map[string]string
	// DefaultGroup receives modules absent from Assignments.
	DefaultGroup string
	// IconPattern is formatted with the group key to obtain the group icon.
	IconPattern string
}

// Grouper buckets menu items into groups.
type Grouper struct {
	Config  GroupConfig
	Context Context
}

// Group buckets the items, in the given order, and collapses single
// entry groups and single section modules.
func (g *Grouper) Group(items []*MenuItem) *Tree {
	groups := make(map[string]*Group)
	order := make([]string, 0)
	dashboardGroup := ""

	get := func(key string) *Group {
		group, exists := groups[key]
		if !exists {
			group = &Group{Key: key}
			groups[key] = group
			order = append(order, key)
		}
		return group
	}

	for _, item := range items {
		var group *Group

		if item.RootMenu != "" {
			group = get(strings.ToLower(item.RootMenu))
			group.Title = item.RootMenu
			if group.Icon == "" {
				group.Icon = g.Context.icon(item.RootMenuIcon)
			}
		} else {
			key := g.assignment(item.Slug)
			group = get(key)
			group.Title = g.label(key)
			group.Icon = g.Context.icon(fmt.Sprintf(g.iconPattern(), key))
		}

		group.items = append(group.items, item)

		if item.Slug == DashboardSlug {
			dashboardGroup = group.Key
		}
	}

	slices.SortFunc(order, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == dashboardGroup:
			return -1
		case b == dashboardGroup:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	tree := &Tree{Groups: make([]*Group, 0, len(order))}
	for _, key := range order {
		group := groups[key]
		collapse(group)
		tree.Groups = append(tree.Groups, group)
	}

	return tree
}

func collapse(group *Group) {
	items := group.items
	group.items = nil

	if len(items) < 2 {
		group.Sections = cloneSections(items[0].Sections)
		return
	}

	group.Addons = make([]*Addon, 0, len(items))
	for _, item := range items {
		addon := &Addon{Slug: item.Slug}

		switch {
		case len(item.Sections) >= 2:
			addon.Item = item
		case len(item.Sections) == 1:
			addon.Link = item.Sections[0].clone()
			addon.Link.Title = item.Title
		default:
			addon.Link = &Section{
				Slug:       item.Slug,
				Title:      item.Title,
				Href:       item.Href,
				Attributes: map[string]any{"href": item.Href},
			}
		}

		group.Addons = append(group.Addons, addon)
	}
}

func (g *Grouper) assignment(slug string) string {
	if key, exists := g.Config.Assignments[slug]; exists && key != "" {
		return strings.ToLower(key)
	}

	if slug == DashboardSlug {
		return DashboardSlug
	}

	if g.Config.DefaultGroup != "" {
		return strings.ToLower(g.Config.DefaultGroup)
	}

	return DefaultGroup
}

func (g *Grouper) label(key string) string {
	label := g.Config.Labels[key]
	literal := label != ""
	if !literal {
		label = GroupLabelKeyPrefix + key
	}

	if g.Context.has(label) {
		return g.Context.translate(label)
	}

	if literal {
		return label
	}

	return Humanize(key)
}

func (g *Grouper) iconPattern() string {
	if g.Config.IconPattern == "" {
		return DefaultGroupIcon
	}
	return g.Config.IconPattern
}

func cloneSections(sections []*Section) []*Section {
	if sections == nil {
		return nil
	}

	cloned := make([]*Section, 0, len(sections))
	for _, s := range sections {
		cloned = append(cloned, s.clone())
	}
	return cloned
}
