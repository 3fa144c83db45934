package registry

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/apidoc/schema"
)

func TestRegistryAdd(t *testing.T) {
	t.Run("registers definition", func(t *testing.T) {
		reg := New()
		def := &PathDefinition{Endpoint: "getWidget"}

		require.NoError(t, reg.Add("/widgets/{id:int}", http.MethodGet, def))
		assert.Same(t, def, reg.Definition("/widgets/{id:int}", http.MethodGet))
	})

	t.Run("normalizes method case", func(t *testing.T) {
		reg := New()
		require.NoError(t, reg.Add("/widgets", "get", &PathDefinition{}))

		assert.NotNil(t, reg.Definition("/widgets", "GET"))
		assert.NotNil(t, reg.Definition("/widgets", "get"))
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		reg := New()
		require.NoError(t, reg.Add("/widgets", http.MethodGet, &PathDefinition{}))

		err := reg.Add("/widgets", http.MethodGet, &PathDefinition{})
		assert.ErrorIs(t, err, ErrDuplicateHandler)
	})

	t.Run("rejects unsupported method", func(t *testing.T) {
		err := New().Add("/widgets", "CONNECT", &PathDefinition{})
		assert.ErrorIs(t, err, ErrUnsupportedMethod)
	})
}

func TestRegistryIteration(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Add("/b", http.MethodGet, &PathDefinition{}))
	require.NoError(t, reg.Add("/a", http.MethodPost, &PathDefinition{}))
	require.NoError(t, reg.Add("/a", http.MethodGet, &PathDefinition{}))

	assert.Equal(t, []string{"/a", "/b"}, reg.Paths())
	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, reg.Methods("/a"))
	assert.Nil(t, reg.Definition("/a", http.MethodDelete))
}

func TestHeadersOption(t *testing.T) {
	headers := schema.NewObject("Headers")

	t.Run("explicit schema", func(t *testing.T) {
		opt := Headers(headers)
		assert.False(t, opt.IsDefault())
		assert.Same(t, headers, opt.Schema().(*schema.Object))
	})

	t.Run("registry default", func(t *testing.T) {
		opt := DefaultHeaders()
		assert.True(t, opt.IsDefault())
		assert.Nil(t, opt.Schema())
	})

	t.Run("zero value means none", func(t *testing.T) {
		var opt HeadersOption
		assert.False(t, opt.IsDefault())
		assert.Nil(t, opt.Schema())
	})
}

func TestAuthOption(t *testing.T) {
	key := NewHeaderAPIKey("X-API-Key", "sharedSecret")

	t.Run("concrete authenticator", func(t *testing.T) {
		opt := Auth(key)
		assert.False(t, opt.IsDefault())
		assert.Same(t, key, opt.Authenticator().(*HeaderAPIKey))
	})

	t.Run("registry default", func(t *testing.T) {
		opt := DefaultAuth()
		assert.True(t, opt.IsDefault())
		assert.Nil(t, opt.Authenticator())
	})
}

func TestHeaderAPIKey(t *testing.T) {
	key := NewHeaderAPIKey("X-API-Key", "sharedSecret")
	assert.Equal(t, "sharedSecret", key.AuthenticatorName())
	assert.Equal(t, "X-API-Key", key.Header)
}
