// Package graphql serves the engine through a field-selecting query protocol.
//
// The schema is fixed and embedded; handlers register per-field resolver
// functions and the executor parses, validates, dispatches, and projects
// each request's selection set over the resolved data.
package graphql

import (
	_ "embed"
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

// Schema wraps the parsed SDL with the lookups the executor needs.
type Schema struct {
	ast    *ast.Schema
	source string
}

// ParseSchema parses a GraphQL SDL string.
func ParseSchema(sdl string) (*Schema, error) {
	source := &ast.Source{Name: "schema", Input: sdl}
	schema, err := gqlparser.LoadSchema(source)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return &Schema{ast: schema, source: sdl}, nil
}

// MustSchema returns the embedded engine schema. The SDL ships with the
// binary, so a parse failure is a build defect.
func MustSchema() *Schema {
	s, err := ParseSchema(schemaSDL)
	if err != nil {
		panic(err)
	}
	return s
}

// AST returns the underlying gqlparser schema.
func (s *Schema) AST() *ast.Schema {
	return s.ast
}

// Source returns the SDL source string.
func (s *Schema) Source() string {
	return s.source
}

// GetType returns a type definition by name, or nil.
func (s *Schema) GetType(name string) *ast.Definition {
	return s.ast.Types[name]
}

// GetField returns a field definition on a type, or nil.
func (s *Schema) GetField(typeName, fieldName string) *ast.FieldDefinition {
	def := s.GetType(typeName)
	if def == nil {
		return nil
	}
	for _, field := range def.Fields {
		if field.Name == fieldName {
			return field
		}
	}
	return nil
}

// UnionHas reports whether the named union or interface covers the concrete
// type.
func (s *Schema) UnionHas(abstract, concrete string) bool {
	def := s.GetType(abstract)
	if def == nil {
		return false
	}
	switch def.Kind {
	case ast.Union:
		for _, member := range def.Types {
			if member == concrete {
				return true
			}
		}
	case ast.Interface:
		impl := s.GetType(concrete)
		if impl == nil {
			return false
		}
		for _, iface := range impl.Interfaces {
			if iface == abstract {
				return true
			}
		}
	}
	return false
}
