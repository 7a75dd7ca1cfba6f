// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a schema catalog fixture, grounded on
// the teacher's internal/fields.FieldDefinition YAML-tagged structs.
type catalogFile struct {
	Schemata []Definition `yaml:"schemata"`
}

// LoadCatalogFile reads a YAML schema catalog from disk and builds a
// Catalog from it. This is the shape a CLI front-end (out of scope here)
// would use to bootstrap the FtM schema catalog from a vendored model file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema catalog %s: %w", path, err)
	}
	return LoadCatalogBytes(data)
}

// LoadCatalogBytes parses YAML bytes into a Catalog.
func LoadCatalogBytes(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing schema catalog: %w", err)
	}
	return NewCatalog(file.Schemata)
}
