package validate

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaSet loads named JSON Schema documents from a file system and compiles each one once.
type SchemaSet struct {
	source   fs.FS
	compiled map[string]*gojsonschema.Schema
	lock     sync.Mutex
}

// NewSchemaSet creates a SchemaSet reading documents from source.
func NewSchemaSet(source fs.FS) *SchemaSet {
	return &SchemaSet{source: source, compiled: make(map[string]*gojsonschema.Schema)}
}

// Load returns the compiled schema with the given file name.
func (s *SchemaSet) Load(name string) (*gojsonschema.Schema, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if schema, ok := s.compiled[name]; ok {
		return schema, nil
	}
	data, err := fs.ReadFile(s.source, name)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	s.compiled[name] = schema
	return schema, nil
}

// Check validates document against the named schema and returns one Violation per schema
// error. An error is returned only if the schema itself cannot be used.
func (s *SchemaSet) Check(name string, document []byte) ([]Violation, error) {
	schema, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validating against schema %s: %w", name, err)
	}
	if result.Valid() {
		return nil, nil
	}
	var violations []Violation
	for _, e := range result.Errors() {
		violations = append(violations, Violation{
			Assertion: "schema",
			Path:      e.Field(),
			Expected:  name,
			Actual:    e.Description(),
		})
	}
	return violations, nil
}
