package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/apidoc/registry"
)

type bearerAuth struct {
	name string
}

func (a *bearerAuth) AuthenticatorName() string { return a.name }

type bearerConverter struct{}

func (bearerConverter) SecuritySchemes(a registry.Authenticator) map[string]*SecurityScheme {
	return map[string]*SecurityScheme{
		a.AuthenticatorName(): {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
}

func (bearerConverter) SecurityRequirements(a registry.Authenticator) []SecurityRequirement {
	return []SecurityRequirement{{a.AuthenticatorName(): {}}}
}

func TestHeaderAPIKeyConverter(t *testing.T) {
	key := registry.NewHeaderAPIKey("X-API-Key", "sharedSecret")
	reg := NewAuthConverterRegistry()

	t.Run("security scheme", func(t *testing.T) {
		schemes, err := reg.SecuritySchemes(key)
		require.NoError(t, err)
		require.Contains(t, schemes, "sharedSecret")
		assert.Equal(t, "apiKey", schemes["sharedSecret"].Type)
		assert.Equal(t, "header", schemes["sharedSecret"].In)
		assert.Equal(t, "X-API-Key", schemes["sharedSecret"].Name)
	})

	t.Run("security requirement", func(t *testing.T) {
		reqs, err := reg.SecurityRequirements(key)
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		scopes, ok := reqs[0]["sharedSecret"]
		require.True(t, ok)
		assert.Empty(t, scopes)
	})
}

func TestAuthConverterRegistry(t *testing.T) {
	t.Run("unknown authenticator type", func(t *testing.T) {
		reg := NewAuthConverterRegistry()
		_, err := reg.SecuritySchemes(&bearerAuth{name: "bearer"})
		assert.ErrorIs(t, err, ErrUnknownAuthenticator)
		_, err = reg.SecurityRequirements(&bearerAuth{name: "bearer"})
		assert.ErrorIs(t, err, ErrUnknownAuthenticator)
	})

	t.Run("custom converter registration", func(t *testing.T) {
		reg := NewAuthConverterRegistry()
		reg.Register(&bearerAuth{}, bearerConverter{})

		schemes, err := reg.SecuritySchemes(&bearerAuth{name: "bearer"})
		require.NoError(t, err)
		require.Contains(t, schemes, "bearer")
		assert.Equal(t, "http", schemes["bearer"].Type)
	})

	t.Run("register replaces existing converter", func(t *testing.T) {
		reg := NewAuthConverterRegistry()
		reg.Register(&registry.HeaderAPIKey{}, bearerConverter{})

		schemes, err := reg.SecuritySchemes(registry.NewHeaderAPIKey("X-API-Key", "k"))
		require.NoError(t, err)
		require.Contains(t, schemes, "k")
		assert.Equal(t, "http", schemes["k"].Type)
	})
}
