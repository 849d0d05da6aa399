package navigation

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// RawSection is a section descriptor as authored by a module: either a bare
// slug or a partial record.
type RawSection interface {
	rawSection()
}

// RawSlug is a bare string descriptor, interpreted as the section slug.
type RawSlug string

func (RawSlug) rawSection() {}

// RawRecord is a partial descriptor. Known keys are slug, title, href,
// permalink and attributes; any data-* key is treated as an attribute.
type RawRecord map[string]any

func (RawRecord) rawSection() {}

// NewRawSection converts a loosely typed value into a RawSection.
// Values that are neither strings nor mappings become empty records.
func NewRawSection(value any) RawSection {
	switch typ := value.(type) {
	case RawSection:
		return typ
	case string:
		return RawSlug(typ)
	case map[string]any:
		return RawRecord(maps.Clone(typ))
	case map[any]any:
		record := RawRecord{}
		for k, v := range typ {
			record[fmt.Sprint(k)] = v
		}
		return record
	case yaml.MapSlice:
		record := RawRecord{}
		for _, item := range typ {
			record[fmt.Sprint(item.Key)] = item.Value
		}
		return record
	default:
		return RawRecord{}
	}
}

// RawEntry is a descriptor with the key it was declared under.
// An empty or numeric key marks a positional entry.
type RawEntry struct {
	Key     string
	Section RawSection
}

func (e RawEntry) Positional() bool {
	if e.Key == "" {
		return true
	}

	return numericKey.MatchString(strings.TrimSpace(e.Key))
}

var numericKey = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// RawSections is the ordered list of descriptors declared by a module.
// In YAML it is either a sequence (positional entries) or a mapping (named
// entries, declaration order preserved).
type RawSections []RawEntry

func Positional(values ...any) RawSections {
	sections := make(RawSections, 0, len(values))
	for _, v := range values {
		sections = append(sections, RawEntry{Section: NewRawSection(v)})
	}
	return sections
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (s *RawSections) UnmarshalYAML(unmarshal func(any) error) error {
	var list []any
	if err := unmarshal(&list); err == nil {
		*s = Positional(list...)
		return nil
	}

	var mapping yaml.MapSlice
	if err := unmarshal(&mapping); err != nil {
		return errors.Wrap(err, "sections must be a sequence or a mapping")
	}

	sections := make(RawSections, 0, len(mapping))
	for _, item := range mapping {
		sections = append(sections, RawEntry{
			Key:     fmt.Sprint(item.Key),
			Section: NewRawSection(item.Value),
		})
	}

	*s = sections

	return nil
}

var _ yaml.InterfaceUnmarshaler = new(RawSections)

type jsonEntry struct {
	Key   string `json:"key,omitempty"`
	Value any    `json:"value"`
}

// MarshalJSON encodes the sections as an array of {key, value} pairs so that
// both ordering and named keys survive a round trip.
func (s RawSections) MarshalJSON() ([]byte, error) {
	entries := make([]jsonEntry, 0, len(s))
	for _, e := range s {
		var value any
		switch typ := e.Section.(type) {
		case RawSlug:
			value = string(typ)
		case RawRecord:
			value = map[string]any(typ)
		default:
			value = map[string]any{}
		}

		entries = append(entries, jsonEntry{Key: e.Key, Value: value})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

func (s *RawSections) UnmarshalJSON(data []byte) error {
	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return errors.WithStack(err)
	}

	sections := make(RawSections, 0, len(entries))
	for _, e := range entries {
		sections = append(sections, RawEntry{Key: e.Key, Section: NewRawSection(e.Value)})
	}

	*s = sections

	return nil
}

// RawSectionsHookFunc decodes sequences and mappings into RawSections when
// used as a mapstructure decode hook. Mapping keys are sorted since Go maps
// carry no declaration order.
func RawSectionsHookFunc() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(RawSections{})

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}

		switch typ := data.(type) {
		case RawSections:
			return typ, nil
		case []any:
			return Positional(typ...), nil
		case []string:
			values := make([]any, 0, len(typ))
			for _, v := range typ {
				values = append(values, v)
			}
			return Positional(values...), nil
		case map[string]any:
			keys := slices.Sorted(maps.Keys(typ))
			sections := make(RawSections, 0, len(keys))
			for _, k := range keys {
				sections = append(sections, RawEntry{Key: k, Section: NewRawSection(typ[k])})
			}
			return sections, nil
		case nil:
			return RawSections{}, nil
		default:
			return nil, errors.Errorf("unexpected sections type '%T'", data)
		}
	}
}
