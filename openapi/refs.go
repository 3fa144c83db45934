package openapi

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vitalvas/apidoc/schema"
)

// ErrSchemaNameCollision is returned when two distinct schemas resolve to
// the same component name.
var ErrSchemaNameCollision = errors.New("schema name collision")

// resolver assigns component names to schemas and collects their
// definitions for the components section. Schemas are keyed by identity:
// the same schema value always resolves to the same name, and a nested or
// self-referential use resolves to a reference instead of an inline copy.
type resolver struct {
	base    string
	schemas map[string]*Schema
	visited map[schema.Schema]bool
	names   map[schema.Schema]string // schema -> chosen name
	owners  map[string]schema.Schema // name -> schema that claimed it
}

func newResolver(base string) *resolver {
	return &resolver{
		base:    base,
		schemas: make(map[string]*Schema),
		visited: make(map[schema.Schema]bool),
		names:   make(map[schema.Schema]string),
		owners:  make(map[string]schema.Schema),
	}
}

// definitions returns the collected component definitions.
func (rs *resolver) definitions() map[string]*Schema {
	return rs.schemas
}

// ref resolves a schema to a $ref fragment, registering its definition on
// first use. Two schema values with the same name must either be the same
// value or describe the same fields; otherwise the name is ambiguous and
// generation fails.
func (rs *resolver) ref(c *Converter, s schema.Schema) (*Schema, error) {
	name := s.SchemaName()
	if name == "" {
		return nil, fmt.Errorf("schema %T has no name", s)
	}

	if _, ok := rs.names[s]; !ok {
		if owner, taken := rs.owners[name]; taken {
			if !sameSchema(owner, s) {
				return nil, fmt.Errorf("%w: %q", ErrSchemaNameCollision, name)
			}
			// Equivalent schema instance: collapse onto the existing entry.
			rs.names[s] = name
			rs.visited[s] = true
			return &Schema{Ref: rs.base + "/" + name}, nil
		}
		rs.names[s] = name
		rs.owners[name] = s
	}

	if !rs.visited[s] {
		// Mark before defining so self-referential schemas resolve to a
		// reference instead of expanding forever.
		rs.visited[s] = true
		def, err := rs.define(c, s)
		if err != nil {
			return nil, err
		}
		rs.schemas[name] = def
	}

	return &Schema{Ref: rs.base + "/" + name}, nil
}

// define builds the object definition for a schema from its fields.
func (rs *resolver) define(c *Converter, s schema.Schema) (*Schema, error) {
	def := &Schema{
		Type:       TypeString("object"),
		Properties: make(map[string]*Schema),
	}
	if doc := s.SchemaDoc(); doc != "" {
		def.Description = doc
	}

	for _, f := range s.SchemaFields() {
		prop, err := c.Convert(f)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.SchemaName(), err)
		}
		def.Properties[f.Name] = prop
		if f.Required {
			def.Required = append(def.Required, f.Name)
		}
	}

	if len(def.Properties) == 0 {
		def.Properties = nil
	}

	return def, nil
}

// sameSchema reports whether two schema values describe the same component:
// same name, same documentation, same field descriptors.
func sameSchema(a, b schema.Schema) bool {
	return a.SchemaName() == b.SchemaName() &&
		a.SchemaDoc() == b.SchemaDoc() &&
		reflect.DeepEqual(a.SchemaFields(), b.SchemaFields())
}
