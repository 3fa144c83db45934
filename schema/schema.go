package schema

// Kind identifies the wire type of a single schema field.
type Kind int

const (
	KindAny Kind = iota
	KindBool
	KindInteger
	KindNumber
	KindString
	KindUUID
	KindDate
	KindDateTime
	KindEnum
	KindList
	KindNested
	KindMap
)

var kindNames = map[Kind]string{
	KindAny:      "any",
	KindBool:     "bool",
	KindInteger:  "integer",
	KindNumber:   "number",
	KindString:   "string",
	KindUUID:     "uuid",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindEnum:     "enum",
	KindList:     "list",
	KindNested:   "nested",
	KindMap:      "map",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Field describes a single declared field of a schema: its serialized name,
// wire type, required flag, and optional metadata. Fields are plain values;
// a Schema exposes them in declaration order.
type Field struct {
	// Name is the serialized (external) field name.
	Name string

	// Kind selects the field converter during document generation.
	Kind Kind

	Required bool

	// Doc is a human-readable description of the field.
	Doc string

	// Default is the field's default value. HasDefault distinguishes an
	// explicit default from the absence of one, so a zero-valued default
	// is still emitted.
	Default    any
	HasDefault bool

	// AllowNone marks the field as nullable.
	AllowNone bool

	// Enum lists the allowed values for KindEnum fields.
	Enum []string

	// Item describes the element of KindList fields and the value of
	// KindMap fields.
	Item *Field

	// Nested references another schema for KindNested fields.
	Nested Schema
}

// Schema is the contract a validation-schema object must present to the
// generator: a stable name, field descriptors, and an optional description.
//
// Implementations must be pointer types. The generator keys schemas by
// identity when de-duplicating component definitions, so the same schema
// value must be shared wherever the same component is meant.
type Schema interface {
	SchemaName() string
	SchemaFields() []Field
	SchemaDoc() string
}

// Object is a declarative object schema. It is the reference implementation
// of the Schema contract used by callers, tests, and the default error
// schema.
type Object struct {
	name   string
	doc    string
	fields []Field
}

// NewObject creates a named object schema with the given fields.
func NewObject(name string, fields ...Field) *Object {
	return &Object{name: name, fields: fields}
}

// SetDoc sets the schema description and returns the schema for chaining.
func (o *Object) SetDoc(doc string) *Object {
	o.doc = doc
	return o
}

// Append adds fields after construction. This is how self-referential
// schemas are built:
//
//	node := schema.NewObject("Node", schema.Field{Name: "id", Kind: schema.KindInteger, Required: true})
//	node.Append(schema.Field{Name: "parent", Kind: schema.KindNested, Nested: node})
func (o *Object) Append(fields ...Field) *Object {
	o.fields = append(o.fields, fields...)
	return o
}

func (o *Object) SchemaName() string    { return o.name }
func (o *Object) SchemaFields() []Field { return o.fields }
func (o *Object) SchemaDoc() string     { return o.doc }

// DefaultError is the error schema used for the fallback response of every
// generated operation unless the generator is configured with another one.
var DefaultError = NewObject("Error",
	Field{Name: "message", Kind: KindString, Required: true},
	Field{Name: "errors", Kind: KindMap},
)
