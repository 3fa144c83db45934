package openapi

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vitalvas/apidoc/schema"
)

// ErrUnknownFieldKind is returned when a schema field uses a kind no
// converter is registered for.
var ErrUnknownFieldKind = errors.New("no converter registered for field kind")

// ConverterFunc converts a single schema field descriptor into a JSON
// Schema fragment. The Converter gives access to the registry (for list
// elements) and to the reference resolver (for nested schemas).
type ConverterFunc func(c *Converter, f schema.Field) (*Schema, error)

// ConverterRegistry maps field kinds to converter functions. Each request
// role (query string, request body, headers, responses) gets its own
// registry instance on the generator; there is no process-wide registry.
type ConverterRegistry struct {
	converters map[schema.Kind]ConverterFunc
}

// NewConverterRegistry creates an empty converter registry.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{
		converters: make(map[schema.Kind]ConverterFunc),
	}
}

// DefaultConverters creates a converter registry with the built-in
// converters for every schema.Kind.
func DefaultConverters() *ConverterRegistry {
	r := NewConverterRegistry()
	r.Register(schema.KindAny, convertAny)
	r.Register(schema.KindBool, convertBool)
	r.Register(schema.KindInteger, convertInteger)
	r.Register(schema.KindNumber, convertNumber)
	r.Register(schema.KindString, convertString)
	r.Register(schema.KindUUID, convertUUID)
	r.Register(schema.KindDate, convertDate)
	r.Register(schema.KindDateTime, convertDateTime)
	r.Register(schema.KindEnum, convertEnum)
	r.Register(schema.KindList, convertList)
	r.Register(schema.KindNested, convertNested)
	r.Register(schema.KindMap, convertMap)
	return r
}

// Register sets the converter for a field kind, replacing any existing one.
func (r *ConverterRegistry) Register(kind schema.Kind, fn ConverterFunc) {
	r.converters[kind] = fn
}

// Converter binds a converter registry to the reference resolver of one
// generation pass. Converter functions receive it so list and nested
// conversions stay within the same role registry and the same component
// name space.
type Converter struct {
	registry *ConverterRegistry
	refs     *resolver
}

// Convert dispatches the field to the converter registered for its kind and
// applies the field-level metadata (description, default, nullability) to
// the resulting fragment. Fragments that are references stay untouched.
func (c *Converter) Convert(f schema.Field) (*Schema, error) {
	fn, ok := c.registry.converters[f.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s (field %q)", ErrUnknownFieldKind, f.Kind, f.Name)
	}

	s, err := fn(c, f)
	if err != nil {
		return nil, err
	}

	if s.Ref == "" {
		if f.Doc != "" {
			s.Description = f.Doc
		}
		if f.HasDefault {
			s.Default = renderDefault(f.Default)
		}
		if f.AllowNone {
			applyNullable(s)
		}
	}

	return s, nil
}

// Ref resolves a schema into a component reference, registering its
// definition on first use.
func (c *Converter) Ref(s schema.Schema) (*Schema, error) {
	return c.refs.ref(c, s)
}

func convertAny(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{}, nil
}

func convertBool(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{Type: TypeString("boolean")}, nil
}

func convertInteger(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{Type: TypeString("integer")}, nil
}

func convertNumber(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{Type: TypeString("number")}, nil
}

func convertString(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{Type: TypeString("string")}, nil
}

func convertUUID(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{Type: TypeString("string"), Format: "uuid"}, nil
}

func convertDate(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{Type: TypeString("string"), Format: "date"}, nil
}

func convertDateTime(_ *Converter, _ schema.Field) (*Schema, error) {
	return &Schema{Type: TypeString("string"), Format: "date-time"}, nil
}

func convertEnum(_ *Converter, f schema.Field) (*Schema, error) {
	values := make([]any, len(f.Enum))
	for i, v := range f.Enum {
		values[i] = v
	}
	return &Schema{Type: TypeString("string"), Enum: values}, nil
}

func convertList(c *Converter, f schema.Field) (*Schema, error) {
	var (
		items *Schema
		err   error
	)
	switch {
	case f.Item != nil:
		items, err = c.Convert(*f.Item)
	case f.Nested != nil:
		items, err = c.Ref(f.Nested)
	default:
		return nil, fmt.Errorf("list field %q has neither an item descriptor nor a nested schema", f.Name)
	}
	if err != nil {
		return nil, err
	}
	return &Schema{Type: TypeString("array"), Items: items}, nil
}

func convertNested(c *Converter, f schema.Field) (*Schema, error) {
	if f.Nested == nil {
		return nil, fmt.Errorf("nested field %q has no schema", f.Name)
	}
	return c.Ref(f.Nested)
}

func convertMap(c *Converter, f schema.Field) (*Schema, error) {
	s := &Schema{Type: TypeString("object")}
	if f.Item != nil {
		ap, err := c.Convert(*f.Item)
		if err != nil {
			return nil, err
		}
		s.AdditionalProperties = ap
	}
	return s, nil
}

// renderDefault converts a field default to its serialized form.
func renderDefault(v any) any {
	if id, ok := v.(uuid.UUID); ok {
		return id.String()
	}
	return v
}

// applyNullable modifies a schema to allow null values by converting the
// type to an array (e.g., "string" becomes ["string", "null"]). In JSON
// Schema Draft 2020-12, nullable is expressed via type arrays rather than
// the OpenAPI 3.0 "nullable" keyword.
func applyNullable(s *Schema) {
	types := s.Type.Values()
	if len(types) > 0 {
		s.Type = TypeArray(append(types, "null")...)
	}
}
