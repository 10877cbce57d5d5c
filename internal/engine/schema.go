package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpecSchema lists the spec names known for each component group. It is
// supplied by configuration, not hard-coded, and classifies rules whose
// spec name no option in the group would ever carry. A group with no entry
// is open: any spec name passes.
type SpecSchema struct {
	groups map[string]map[string]struct{}
}

type specSchemaFile struct {
	ComponentGroups map[string][]string `yaml:"componentGroups"`
}

// LoadSpecSchema reads the schema file. A missing file yields an empty,
// fully-open schema rather than an error, so deployments without a curated
// schema accept every spec name.
func LoadSpecSchema(path string) (*SpecSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SpecSchema{}, nil
		}
		return nil, fmt.Errorf("failed to read spec schema: %w", err)
	}
	return ParseSpecSchema(data)
}

// ParseSpecSchema decodes a YAML schema document.
func ParseSpecSchema(data []byte) (*SpecSchema, error) {
	var file specSchemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse spec schema: %w", err)
	}

	schema := &SpecSchema{groups: make(map[string]map[string]struct{}, len(file.ComponentGroups))}
	for group, specs := range file.ComponentGroups {
		names := make(map[string]struct{}, len(specs))
		for _, s := range specs {
			names[s] = struct{}{}
		}
		schema.groups[group] = names
	}
	return schema, nil
}

// Knows reports whether specName is valid for the component group.
func (s *SpecSchema) Knows(componentGroup, specName string) bool {
	if s == nil || s.groups == nil {
		return true
	}
	names, ok := s.groups[componentGroup]
	if !ok {
		return true
	}
	_, ok = names[specName]
	return ok
}
