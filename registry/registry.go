package registry

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/vitalvas/apidoc/schema"
)

// ErrDuplicateHandler is returned by Add when a (path, method) pair is
// registered twice.
var ErrDuplicateHandler = fmt.Errorf("duplicate handler registration")

// ErrUnsupportedMethod is returned by Add for HTTP methods that cannot
// appear in an OpenAPI path item.
var ErrUnsupportedMethod = fmt.Errorf("unsupported HTTP method")

// supportedMethods are the HTTP methods an OpenAPI path item can describe.
var supportedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPut:     true,
	http.MethodPost:    true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodHead:    true,
	http.MethodPatch:   true,
	http.MethodTrace:   true,
}

// PathDefinition describes one (path, method) handler: the schemas attached
// to each request/response role, its authenticators, and its documentation
// metadata. A nil schema means the role is absent; the Responses map uses a
// nil value to mean "this status code explicitly has no body", which is
// distinct from the status code being unmapped.
type PathDefinition struct {
	// QueryStringSchema describes the query-string parameters.
	QueryStringSchema schema.Schema

	// HeadersSchema describes the request headers. Use Headers to set an
	// explicit schema, DefaultHeaders to inherit the registry default, or
	// leave the zero value for no header parameters.
	HeadersSchema HeadersOption

	// RequestBodySchema describes the JSON request body.
	RequestBodySchema schema.Schema

	// Responses maps status codes to response body schemas. A nil value
	// marks a response with no body.
	Responses map[int]schema.Schema

	// Authenticators lists the authentication mechanisms of the handler.
	// An empty list means the handler is explicitly unauthenticated.
	// Use DefaultAuth entries to substitute the registry defaults.
	Authenticators []AuthOption

	// Hidden excludes the handler from generated documents unless the
	// generator is configured to include hidden handlers.
	Hidden bool

	Tags    []string
	Summary string

	// Endpoint is the handler name, used as the operation ID.
	Endpoint string

	// Description is the long-form handler documentation.
	Description string
}

// Registry is the caller-built collection of handler definitions and
// defaults that a generator reads. It is assembled up front and treated as
// read-only during generation.
type Registry struct {
	paths map[string]map[string]*PathDefinition

	// DefaultHeadersSchema is substituted for handlers whose headers
	// option is DefaultHeaders.
	DefaultHeadersSchema schema.Schema

	// DefaultAuthenticators apply to handlers whose authenticator list
	// contains DefaultAuth entries, and form the document-level security.
	DefaultAuthenticators []Authenticator
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		paths: make(map[string]map[string]*PathDefinition),
	}
}

// Add registers a path definition for the given path template and HTTP
// method. The method is normalized to upper case. Registering the same
// (path, method) pair twice is an error.
func (r *Registry) Add(path, method string, def *PathDefinition) error {
	method = strings.ToUpper(method)
	if !supportedMethods[method] {
		return fmt.Errorf("%w: %s %s", ErrUnsupportedMethod, method, path)
	}

	methods, ok := r.paths[path]
	if !ok {
		methods = make(map[string]*PathDefinition)
		r.paths[path] = methods
	}

	if _, exists := methods[method]; exists {
		return fmt.Errorf("%w: %s %s", ErrDuplicateHandler, method, path)
	}

	methods[method] = def
	return nil
}

// Paths returns the registered path templates in sorted order.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.paths))
	for path := range r.paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Methods returns the registered HTTP methods for a path template in
// sorted order.
func (r *Registry) Methods(path string) []string {
	methods := make([]string, 0, len(r.paths[path]))
	for method := range r.paths[path] {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// Definition returns the path definition for a (path, method) pair, or nil
// when none is registered.
func (r *Registry) Definition(path, method string) *PathDefinition {
	return r.paths[path][strings.ToUpper(method)]
}
