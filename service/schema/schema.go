// Package schema resolves index schema metadata for record pipelines, most
// importantly the name of the unique-key field a pipeline writes to.
package schema

import (
	"context"
	"fmt"

	"github.com/viant/morph/service/meta"
)

// Field describes a single schema field.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	MultiValued bool   `json:"multiValued,omitempty" yaml:"multiValued,omitempty"`
}

// Schema describes an index schema.
type Schema struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// UniqueKey names the field holding the document unique key; empty when
	// the schema defines none.
	UniqueKey string `json:"uniqueKey,omitempty" yaml:"uniqueKey,omitempty"`

	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// UniqueKeyField returns the unique-key field name, empty when undefined.
func (s *Schema) UniqueKeyField() string {
	return s.UniqueKey
}

// Field returns the named field definition, or nil.
func (s *Schema) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Validate verifies structural soundness; the returned slice is empty when
// the schema is valid.
func (s *Schema) Validate() []error {
	var issues []error
	seen := map[string]bool{}
	for i, field := range s.Fields {
		if field.Name == "" {
			issues = append(issues, fmt.Errorf("field %d has no name", i))
			continue
		}
		if seen[field.Name] {
			issues = append(issues, fmt.Errorf("duplicate field %s", field.Name))
		}
		seen[field.Name] = true
	}
	if s.UniqueKey != "" && !seen[s.UniqueKey] {
		issues = append(issues, fmt.Errorf("uniqueKey %s is not a declared field", s.UniqueKey))
	}
	return issues
}

// Service loads index schemas through the meta service.
type Service struct {
	metaService *meta.Service
}

// New creates a schema service.
func New(metaService *meta.Service) *Service {
	return &Service{metaService: metaService}
}

// Load loads and validates the schema at the specified URL.
func (s *Service) Load(ctx context.Context, URL string) (*Schema, error) {
	schema := &Schema{}
	if err := s.metaService.Load(ctx, URL, schema); err != nil {
		return nil, fmt.Errorf("failed to load schema from %s: %w", URL, err)
	}
	if issues := schema.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	return schema, nil
}
