package registry

import "github.com/vitalvas/apidoc/schema"

// HeadersOption is a tagged choice for a handler's headers schema:
// an explicit schema, the registry default, or none (the zero value).
// The explicit variants keep "no headers schema" distinguishable from
// "use the registry default".
type HeadersOption struct {
	schema     schema.Schema
	useDefault bool
}

// Headers selects an explicit headers schema for a handler.
func Headers(s schema.Schema) HeadersOption {
	return HeadersOption{schema: s}
}

// DefaultHeaders selects the registry's default headers schema.
func DefaultHeaders() HeadersOption {
	return HeadersOption{useDefault: true}
}

// IsDefault reports whether the option defers to the registry default.
func (o HeadersOption) IsDefault() bool { return o.useDefault }

// Schema returns the explicit headers schema, or nil for the default and
// zero variants.
func (o HeadersOption) Schema() schema.Schema { return o.schema }

// AuthOption is a tagged choice for one entry of a handler's authenticator
// list: a concrete authenticator or a marker meaning "substitute the
// registry defaults here".
type AuthOption struct {
	auth       Authenticator
	useDefault bool
}

// Auth wraps a concrete authenticator.
func Auth(a Authenticator) AuthOption {
	return AuthOption{auth: a}
}

// DefaultAuth selects the registry's default authenticators.
func DefaultAuth() AuthOption {
	return AuthOption{useDefault: true}
}

// IsDefault reports whether the entry defers to the registry defaults.
func (o AuthOption) IsDefault() bool { return o.useDefault }

// Authenticator returns the concrete authenticator, or nil for the default
// variant.
func (o AuthOption) Authenticator() Authenticator { return o.auth }
