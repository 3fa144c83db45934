package openapi

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/apidoc/schema"
)

func newTestConverter() *Converter {
	return &Converter{
		registry: DefaultConverters(),
		refs:     newResolver(refBase),
	}
}

func TestConvertKinds(t *testing.T) {
	tests := []struct {
		name   string
		field  schema.Field
		typ    SchemaType
		format string
	}{
		{name: "bool", field: schema.Field{Kind: schema.KindBool}, typ: TypeString("boolean")},
		{name: "integer", field: schema.Field{Kind: schema.KindInteger}, typ: TypeString("integer")},
		{name: "number", field: schema.Field{Kind: schema.KindNumber}, typ: TypeString("number")},
		{name: "string", field: schema.Field{Kind: schema.KindString}, typ: TypeString("string")},
		{name: "uuid", field: schema.Field{Kind: schema.KindUUID}, typ: TypeString("string"), format: "uuid"},
		{name: "date", field: schema.Field{Kind: schema.KindDate}, typ: TypeString("string"), format: "date"},
		{name: "datetime", field: schema.Field{Kind: schema.KindDateTime}, typ: TypeString("string"), format: "date-time"},
	}

	c := newTestConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := c.Convert(tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, s.Type)
			assert.Equal(t, tt.format, s.Format)
		})
	}
}

func TestConvertMetadata(t *testing.T) {
	c := newTestConverter()

	t.Run("description from doc", func(t *testing.T) {
		s, err := c.Convert(schema.Field{Kind: schema.KindString, Doc: "Search query."})
		require.NoError(t, err)
		assert.Equal(t, "Search query.", s.Description)
	})

	t.Run("default value", func(t *testing.T) {
		s, err := c.Convert(schema.Field{Kind: schema.KindInteger, Default: 10, HasDefault: true})
		require.NoError(t, err)
		assert.Equal(t, 10, s.Default)
	})

	t.Run("zero default still emitted", func(t *testing.T) {
		s, err := c.Convert(schema.Field{Kind: schema.KindInteger, Default: 0, HasDefault: true})
		require.NoError(t, err)
		assert.Equal(t, 0, s.Default)
	})

	t.Run("default without marker omitted", func(t *testing.T) {
		s, err := c.Convert(schema.Field{Kind: schema.KindInteger})
		require.NoError(t, err)
		assert.Nil(t, s.Default)
	})

	t.Run("uuid default rendered as string", func(t *testing.T) {
		id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
		s, err := c.Convert(schema.Field{Kind: schema.KindUUID, Default: id, HasDefault: true})
		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", s.Default)
	})

	t.Run("nullable type array", func(t *testing.T) {
		s, err := c.Convert(schema.Field{Kind: schema.KindString, AllowNone: true})
		require.NoError(t, err)
		assert.Equal(t, TypeArray("string", "null"), s.Type)
	})
}

func TestConvertEnum(t *testing.T) {
	c := newTestConverter()
	s, err := c.Convert(schema.Field{Kind: schema.KindEnum, Enum: []string{"red", "green"}})
	require.NoError(t, err)
	assert.Equal(t, TypeString("string"), s.Type)
	assert.Equal(t, []any{"red", "green"}, s.Enum)
}

func TestConvertList(t *testing.T) {
	c := newTestConverter()

	t.Run("list of primitives", func(t *testing.T) {
		s, err := c.Convert(schema.Field{
			Kind: schema.KindList,
			Item: &schema.Field{Kind: schema.KindString},
		})
		require.NoError(t, err)
		assert.Equal(t, TypeString("array"), s.Type)
		require.NotNil(t, s.Items)
		assert.Equal(t, TypeString("string"), s.Items.Type)
	})

	t.Run("list of nested schemas", func(t *testing.T) {
		widget := schema.NewObject("Widget", schema.Field{Name: "id", Kind: schema.KindInteger})
		s, err := c.Convert(schema.Field{Kind: schema.KindList, Nested: widget})
		require.NoError(t, err)
		require.NotNil(t, s.Items)
		assert.Equal(t, "#/components/schemas/Widget", s.Items.Ref)
	})

	t.Run("list without element", func(t *testing.T) {
		_, err := c.Convert(schema.Field{Name: "tags", Kind: schema.KindList})
		assert.Error(t, err)
	})
}

func TestConvertNested(t *testing.T) {
	c := newTestConverter()

	t.Run("nested emits ref", func(t *testing.T) {
		widget := schema.NewObject("Widget", schema.Field{Name: "id", Kind: schema.KindInteger})
		s, err := c.Convert(schema.Field{Kind: schema.KindNested, Nested: widget})
		require.NoError(t, err)
		assert.Equal(t, "#/components/schemas/Widget", s.Ref)
	})

	t.Run("ref ignores field metadata", func(t *testing.T) {
		widget := schema.NewObject("Widget")
		s, err := c.Convert(schema.Field{Kind: schema.KindNested, Nested: widget, Doc: "ignored"})
		require.NoError(t, err)
		assert.Empty(t, s.Description)
	})

	t.Run("nested without schema", func(t *testing.T) {
		_, err := c.Convert(schema.Field{Name: "owner", Kind: schema.KindNested})
		assert.Error(t, err)
	})
}

func TestConvertMap(t *testing.T) {
	c := newTestConverter()

	t.Run("free-form map", func(t *testing.T) {
		s, err := c.Convert(schema.Field{Kind: schema.KindMap})
		require.NoError(t, err)
		assert.Equal(t, TypeString("object"), s.Type)
		assert.Nil(t, s.AdditionalProperties)
	})

	t.Run("typed values", func(t *testing.T) {
		s, err := c.Convert(schema.Field{
			Kind: schema.KindMap,
			Item: &schema.Field{Kind: schema.KindInteger},
		})
		require.NoError(t, err)
		require.NotNil(t, s.AdditionalProperties)
		assert.Equal(t, TypeString("integer"), s.AdditionalProperties.Type)
	})
}

func TestConverterRegistry(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		c := &Converter{registry: NewConverterRegistry(), refs: newResolver(refBase)}
		_, err := c.Convert(schema.Field{Name: "x", Kind: schema.KindString})
		assert.ErrorIs(t, err, ErrUnknownFieldKind)
	})

	t.Run("register overrides", func(t *testing.T) {
		reg := DefaultConverters()
		reg.Register(schema.KindString, func(_ *Converter, _ schema.Field) (*Schema, error) {
			return &Schema{Type: TypeString("string"), Format: "custom"}, nil
		})

		c := &Converter{registry: reg, refs: newResolver(refBase)}
		s, err := c.Convert(schema.Field{Kind: schema.KindString})
		require.NoError(t, err)
		assert.Equal(t, "custom", s.Format)
	})
}
