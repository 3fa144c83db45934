package openapi

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vitalvas/apidoc/registry"
)

// ErrUnknownAuthenticator is returned when no converter is registered for
// an authenticator's dynamic type.
var ErrUnknownAuthenticator = errors.New("no converter registered for authenticator type")

// AuthConverter maps one kind of authenticator to its document fragments:
// the security scheme definitions it publishes and the security
// requirements an operation using it carries.
type AuthConverter interface {
	SecuritySchemes(a registry.Authenticator) map[string]*SecurityScheme
	SecurityRequirements(a registry.Authenticator) []SecurityRequirement
}

// AuthConverterRegistry dispatches authenticators to converters by dynamic
// type.
type AuthConverterRegistry struct {
	converters map[reflect.Type]AuthConverter
}

// NewAuthConverterRegistry creates a registry with the built-in converter
// for registry.HeaderAPIKey. Additional authenticator types are added with
// Register.
func NewAuthConverterRegistry() *AuthConverterRegistry {
	r := &AuthConverterRegistry{
		converters: make(map[reflect.Type]AuthConverter),
	}
	r.Register(&registry.HeaderAPIKey{}, HeaderAPIKeyConverter{})
	return r
}

// Register sets the converter for the dynamic type of proto, replacing any
// existing one.
func (r *AuthConverterRegistry) Register(proto registry.Authenticator, conv AuthConverter) {
	r.converters[reflect.TypeOf(proto)] = conv
}

func (r *AuthConverterRegistry) converterFor(a registry.Authenticator) (AuthConverter, error) {
	conv, ok := r.converters[reflect.TypeOf(a)]
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownAuthenticator, a)
	}
	return conv, nil
}

// SecuritySchemes returns the security scheme definitions for an
// authenticator.
func (r *AuthConverterRegistry) SecuritySchemes(a registry.Authenticator) (map[string]*SecurityScheme, error) {
	conv, err := r.converterFor(a)
	if err != nil {
		return nil, err
	}
	return conv.SecuritySchemes(a), nil
}

// SecurityRequirements returns the security requirements for an
// authenticator.
func (r *AuthConverterRegistry) SecurityRequirements(a registry.Authenticator) ([]SecurityRequirement, error) {
	conv, err := r.converterFor(a)
	if err != nil {
		return nil, err
	}
	return conv.SecurityRequirements(a), nil
}

// HeaderAPIKeyConverter renders registry.HeaderAPIKey authenticators as
// apiKey security schemes.
type HeaderAPIKeyConverter struct{}

func (HeaderAPIKeyConverter) SecuritySchemes(a registry.Authenticator) map[string]*SecurityScheme {
	key := a.(*registry.HeaderAPIKey)
	return map[string]*SecurityScheme{
		key.Name: {
			Type: "apiKey",
			In:   "header",
			Name: key.Header,
		},
	}
}

func (HeaderAPIKeyConverter) SecurityRequirements(a registry.Authenticator) []SecurityRequirement {
	key := a.(*registry.HeaderAPIKey)
	return []SecurityRequirement{{key.Name: {}}}
}
