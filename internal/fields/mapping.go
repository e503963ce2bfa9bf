// Package fields maps arbitrary input field names onto canonical field keys.
//
// The mapping is a static lookup table built once at startup from a YAML
// field table. Lookups fold names with Fold, so matching ignores case,
// accents and separator style.
package fields

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

//go:embed default_fields.yaml
var defaultTable []byte

// fieldTable is the YAML layout of a field mapping file.
type fieldTable struct {
	Fields []struct {
		Key      string   `yaml:"key"`
		Kind     string   `yaml:"kind"`
		Label    string   `yaml:"label"`
		Synonyms []string `yaml:"synonyms"`
	} `yaml:"fields"`
}

// match is the resolution of one folded name.
type match struct {
	key string
	// rank orders competing names for one key: 0 is the canonical key
	// itself, then synonyms in declaration order.
	rank int
}

// Mapping is the immutable canonical key -> synonyms table.
type Mapping struct {
	defs  map[string]domain.FieldDefinition
	order []string
	index map[string]match
}

// NewMapping builds a mapping from field definitions.
// A folded name claimed by two different keys is rejected.
func NewMapping(defs []domain.FieldDefinition) (*Mapping, error) {
	m := &Mapping{
		defs:  make(map[string]domain.FieldDefinition, len(defs)),
		order: make([]string, 0, len(defs)),
		index: make(map[string]match),
	}

	for _, def := range defs {
		key := strings.TrimSpace(def.Key)
		if key == "" {
			return nil, fmt.Errorf("%w: field definition without key", domain.ErrInvalidInput)
		}
		if _, dup := m.defs[key]; dup {
			return nil, fmt.Errorf("%w: duplicate field key %q", domain.ErrInvalidInput, key)
		}
		if def.Kind == "" {
			def.Kind = domain.FieldKindText
		}
		if !def.Kind.IsValid() {
			return nil, fmt.Errorf("%w: field %q has unknown kind %q", domain.ErrInvalidInput, key, def.Kind)
		}
		def.Key = key

		names := append([]string{key}, def.Synonyms...)
		for rank, name := range names {
			folded := Fold(name)
			if folded == "" {
				continue
			}
			if existing, ok := m.index[folded]; ok {
				if existing.key != key {
					return nil, fmt.Errorf("%w: name %q maps to both %q and %q",
						domain.ErrInvalidInput, name, existing.key, key)
				}
				continue
			}
			m.index[folded] = match{key: key, rank: rank}
		}

		m.defs[key] = def
		m.order = append(m.order, key)
	}

	return m, nil
}

// ParseMapping builds a mapping from a YAML field table.
func ParseMapping(data []byte) (*Mapping, error) {
	var table fieldTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing field table: %w", err)
	}

	defs := make([]domain.FieldDefinition, 0, len(table.Fields))
	for _, f := range table.Fields {
		defs = append(defs, domain.FieldDefinition{
			Key:      f.Key,
			Kind:     domain.FieldKind(strings.ToLower(strings.TrimSpace(f.Kind))),
			Label:    f.Label,
			Synonyms: f.Synonyms,
		})
	}
	return NewMapping(defs)
}

// DefaultMapping returns the built-in field table.
func DefaultMapping() (*Mapping, error) {
	return ParseMapping(defaultTable)
}

// LoadMapping reads a YAML field table from path.
// An empty path selects the built-in table.
func LoadMapping(path string) (*Mapping, error) {
	if path == "" {
		return DefaultMapping()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field table: %w", err)
	}
	return ParseMapping(data)
}

// Resolve returns the canonical key for a raw field name.
func (m *Mapping) Resolve(name string) (string, bool) {
	hit, ok := m.index[Fold(name)]
	return hit.key, ok
}

// Has returns true if key is a canonical key.
func (m *Mapping) Has(key string) bool {
	_, ok := m.defs[key]
	return ok
}

// Keys returns canonical keys in declaration order.
func (m *Mapping) Keys() []string {
	return append([]string(nil), m.order...)
}

// Definition returns the definition of a canonical key.
func (m *Mapping) Definition(key string) (domain.FieldDefinition, bool) {
	def, ok := m.defs[key]
	return def, ok
}

// Definitions returns all definitions in declaration order.
func (m *Mapping) Definitions() []domain.FieldDefinition {
	defs := make([]domain.FieldDefinition, 0, len(m.order))
	for _, key := range m.order {
		defs = append(defs, m.defs[key])
	}
	return defs
}

// Normalise maps raw input fields to canonical keys.
//
// When several raw names resolve to the same key, the first match wins:
// the canonical key itself beats its synonyms, and synonyms win in
// declaration order. Blank values and names matching no key are dropped;
// the latter are listed in Unmapped.
func (m *Mapping) Normalise(in domain.InputRecord) domain.NormalisedRecord {
	out := domain.NormalisedRecord{
		Fields: make(map[string]domain.NormalisedField, len(in.Fields)),
	}

	names := make([]string, 0, len(in.Fields))
	for name := range in.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	ranks := make(map[string]int, len(names))
	for _, name := range names {
		raw := in.Fields[name]
		hit, ok := m.index[Fold(name)]
		if !ok {
			out.Unmapped = append(out.Unmapped, name)
			continue
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if best, seen := ranks[hit.key]; seen && best <= hit.rank {
			continue
		}
		ranks[hit.key] = hit.rank
		out.Fields[hit.key] = domain.NormalisedField{
			Key:        hit.key,
			Source:     name,
			Raw:        raw,
			Confidence: in.ConfidenceFor(name),
		}
	}

	return out
}
