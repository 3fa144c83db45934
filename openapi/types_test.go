package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSchemaTypeJSON(t *testing.T) {
	t.Run("single type as string", func(t *testing.T) {
		out, err := json.Marshal(TypeString("string"))
		require.NoError(t, err)
		assert.Equal(t, `"string"`, string(out))
	})

	t.Run("multiple types as array", func(t *testing.T) {
		out, err := json.Marshal(TypeArray("string", "null"))
		require.NoError(t, err)
		assert.Equal(t, `["string","null"]`, string(out))
	})

	t.Run("unmarshal string", func(t *testing.T) {
		var st SchemaType
		require.NoError(t, json.Unmarshal([]byte(`"integer"`), &st))
		assert.Equal(t, []string{"integer"}, st.Values())
	})

	t.Run("unmarshal array", func(t *testing.T) {
		var st SchemaType
		require.NoError(t, json.Unmarshal([]byte(`["string","null"]`), &st))
		assert.Equal(t, []string{"string", "null"}, st.Values())
	})

	t.Run("zero type omitted from schema", func(t *testing.T) {
		out, err := json.Marshal(&Schema{Ref: "#/components/schemas/Widget"})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "type")
	})
}

func TestSchemaTypeYAML(t *testing.T) {
	t.Run("single type as scalar", func(t *testing.T) {
		out, err := yaml.Marshal(map[string]SchemaType{"type": TypeString("string")})
		require.NoError(t, err)
		assert.Equal(t, "type: string\n", string(out))
	})

	t.Run("unmarshal scalar", func(t *testing.T) {
		var v struct {
			Type SchemaType `yaml:"type"`
		}
		require.NoError(t, yaml.Unmarshal([]byte("type: string\n"), &v))
		assert.Equal(t, []string{"string"}, v.Type.Values())
	})

	t.Run("unmarshal sequence", func(t *testing.T) {
		var v struct {
			Type SchemaType `yaml:"type"`
		}
		require.NoError(t, yaml.Unmarshal([]byte("type: [string, \"null\"]\n"), &v))
		assert.Equal(t, []string{"string", "null"}, v.Type.Values())
	})
}

func TestSchemaTypeIsZero(t *testing.T) {
	assert.True(t, SchemaType{}.IsZero())
	assert.False(t, TypeString("string").IsZero())
}
