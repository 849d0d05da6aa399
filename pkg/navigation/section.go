package navigation

import (
	"maps"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is a normalized link of a module navigation entry.
type Section struct {
	Slug       string         `mapstructure:"slug" json:"slug" yaml:"slug"`
	Title      string         `mapstructure:"title" json:"title" yaml:"title"`
	Href       string         `mapstructure:"-" json:"href" yaml:"href"`
	Permalink  string         `mapstructure:"permalink" json:"permalink,omitempty" yaml:"permalink,omitempty"`
	Attributes map[string]any `mapstructure:"attributes" json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Extra holds the descriptor keys the normalizer does not know about.
	Extra map[string]any `mapstructure:",remain" json:"extra,omitempty" yaml:"extra,omitempty"`

	// Active is set when the current URL contains Href.
	Active bool `mapstructure:"-" json:"active" yaml:"active"`
	// Exact is set when the current URL equals Href.
	Exact bool `mapstructure:"-" json:"exact" yaml:"exact"`
}

// Attribute returns the string value of the given attribute.
func (s *Section) Attribute(name string) string {
	value, _ := s.Attributes[name].(string)
	return value
}

// Raw converts the section back into a descriptor. Normalizing the result
// yields the same section.
func (s *Section) Raw() RawRecord {
	record := RawRecord{}
	for k, v := range s.Extra {
		record[k] = v
	}

	record["slug"] = s.Slug
	record["title"] = s.Title

	attributes := maps.Clone(s.Attributes)
	if attributes == nil {
		attributes = map[string]any{}
	}
	attributes["href"] = s.Href
	record["attributes"] = attributes

	if s.Permalink != "" {
		record["permalink"] = s.Permalink
	}

	return record
}

func (s *Section) clone() *Section {
	c := *s
	c.Attributes = maps.Clone(s.Attributes)
	c.Extra = maps.Clone(s.Extra)
	return &c
}

// Normalizer converts module descriptors into sections.
type Normalizer struct {
	Context Context
}

// Normalize returns one section per descriptor of the module, in declaration
// order. A module without descriptors gets a single section pointing at its
// root page.
func (n *Normalizer) Normalize(m Module) []*Section {
	raw := m.Sections
	if len(raw) == 0 {
		raw = RawSections{{Section: RawSlug(m.Slug)}}
	}

	sections := make([]*Section, 0, len(raw))
	for index, entry := range raw {
		record := n.normalizeEntry(index, entry)
		sections = append(sections, decodeSection(record))
	}

	n.guessHref(m, sections)
	n.guessTitle(m, sections)

	return sections
}

func (n *Normalizer) normalizeEntry(index int, entry RawEntry) map[string]any {
	var record map[string]any

	switch typ := entry.Section.(type) {
	case RawSlug:
		record = map[string]any{"slug": string(typ)}
	case RawRecord:
		record = maps.Clone(map[string]any(typ))
	}

	if record == nil {
		record = map[string]any{}
	}

	if toString(record["slug"]) == "" {
		if !entry.Positional() {
			record["slug"] = entry.Key
		} else {
			record["slug"] = strconv.Itoa(index)
		}
	}

	attributes := map[string]any{}
	switch typ := record["attributes"].(type) {
	case map[string]any:
		attributes = maps.Clone(typ)
	case RawRecord:
		attributes = maps.Clone(map[string]any(typ))
	case map[any]any:
		for k, v := range typ {
			attributes[toString(k)] = v
		}
	}
	record["attributes"] = attributes

	if href, exists := record["href"]; exists {
		attributes["href"] = href
		delete(record, "href")
	}

	for key, value := range record {
		if strings.HasPrefix(key, "data-") {
			attributes[key] = value
			delete(record, key)
		}
	}

	// Deprecated: data-href used to carry the permalink.
	if _, exists := record["permalink"]; !exists {
		if dataHref, exists := attributes["data-href"]; exists {
			record["permalink"] = dataHref
			delete(attributes, "data-href")
		}
	}

	if href, ok := attributes["href"].(string); ok && !strings.HasPrefix(href, "http") {
		attributes["href"] = n.Context.to(href)
	}

	if permalink, ok := record["permalink"].(string); ok && !strings.HasPrefix(permalink, "http") {
		record["permalink"] = n.Context.to(permalink)
	}

	return record
}

func decodeSection(record map[string]any) *Section {
	section := &Section{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           section,
	})
	if err != nil || decoder.Decode(record) != nil {
		section = decodeSectionFields(record)
	}

	if section.Attributes == nil {
		section.Attributes = map[string]any{}
	}

	if len(section.Extra) == 0 {
		section.Extra = nil
	}

	section.Href, _ = section.Attributes["href"].(string)

	return section
}

// decodeSectionFields decodes the known keys one at a time. A malformed key
// is dropped, the attributes and the remaining keys are kept.
func decodeSectionFields(record map[string]any) *Section {
	section := &Section{
		Slug:      toString(record["slug"]),
		Title:     toString(record["title"]),
		Permalink: toString(record["permalink"]),
		Extra:     map[string]any{},
	}

	section.Attributes, _ = record["attributes"].(map[string]any)

	for key, value := range record {
		switch key {
		case "slug", "title", "permalink", "attributes":
		default:
			section.Extra[key] = value
		}
	}

	return section
}

func (n *Normalizer) guessHref(m Module, sections []*Section) {
	for index, section := range sections {
		if section.Href != "" {
			continue
		}

		href := n.Context.adminPath() + "/" + m.Slug

		if !(index == 0 && section.Slug == m.Slug) {
			href += "/" + section.Slug
		}

		section.Href = n.Context.to(href)
		section.Attributes["href"] = section.Href
	}
}

func (n *Normalizer) guessTitle(m Module, sections []*Section) {
	for _, section := range sections {
		if section.Title != "" {
			continue
		}

		key := m.Namespaced("section." + section.Slug + ".title")
		if n.Context.has(key) {
			section.Title = n.Context.translate(key)
			continue
		}

		key = m.Namespaced("addon.section." + section.Slug)
		if n.Context.has(key) {
			section.Title = n.Context.translate(key)
			continue
		}

		if n.Context.LazyTitles {
			section.Title = Humanize(section.Slug)
			continue
		}

		section.Title = key
	}
}

// Humanize turns a slug such as "content_types" into "Content Types".
func Humanize(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	return cases.Title(language.Und, cases.NoLower).String(strings.Join(words, " "))
}

func toString(value any) string {
	switch typ := value.(type) {
	case nil:
		return ""
	case string:
		return typ
	case int:
		return strconv.Itoa(typ)
	default:
		var str string
		if err := mapstructure.WeakDecode(value, &str); err != nil {
			return ""
		}
		return str
	}
}
