package registry

// Authenticator marks an authentication mechanism attached to handlers.
// The registry and generator treat authenticators as opaque: two
// authenticators are the same mechanism only when they are the same value.
// How an authenticator renders into the generated document is decided by
// the converter registered for its dynamic type.
type Authenticator interface {
	// AuthenticatorName returns the security scheme name the
	// authenticator is published under.
	AuthenticatorName() string
}

// HeaderAPIKey authenticates requests with a shared secret passed in a
// request header.
type HeaderAPIKey struct {
	// Header is the request header carrying the key.
	Header string

	// Name is the security scheme name.
	Name string
}

// NewHeaderAPIKey creates a header API key authenticator publishing itself
// under the given scheme name.
func NewHeaderAPIKey(header, name string) *HeaderAPIKey {
	return &HeaderAPIKey{Header: header, Name: name}
}

func (a *HeaderAPIKey) AuthenticatorName() string { return a.Name }
