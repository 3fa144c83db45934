package openapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/vitalvas/apidoc/registry"
	"github.com/vitalvas/apidoc/schema"
)

const (
	openAPIVersion  = "3.1.0"
	refBase         = "#/components/schemas"
	contentTypeJSON = "application/json"
)

// Config configures a Generator. The zero value is usable: every field has
// a default.
type Config struct {
	// Version, Title, and Description fill the info block. Version
	// defaults to "1.0.0" and Title to "My API".
	Version     string
	Title       string
	Description string

	// Role converter registries. Each nil registry defaults to
	// DefaultConverters().
	QueryStringConverters *ConverterRegistry
	RequestBodyConverters *ConverterRegistry
	HeadersConverters     *ConverterRegistry
	ResponseConverters    *ConverterRegistry

	// AuthConverters maps authenticators to security fragments. Defaults
	// to NewAuthConverterRegistry().
	AuthConverters *AuthConverterRegistry

	// Tags and Servers are emitted as document-level metadata when
	// non-empty.
	Tags    []Tag
	Servers []Server

	// DefaultResponseSchema is the schema of the fallback "default"
	// response attached to every operation. Defaults to
	// schema.DefaultError.
	DefaultResponseSchema schema.Schema

	// IncludeHidden includes handlers marked Hidden in the output.
	IncludeHidden bool
}

// Generator converts a handler registry into an OpenAPI v3.1.0 Document.
// Generation reads the registry and its schemas without mutating them, so a
// generator is safe for concurrent use on the same registry snapshot.
type Generator struct {
	cfg Config
}

// NewGenerator creates a generator with defaults applied to cfg.
func NewGenerator(cfg Config) *Generator {
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.Title == "" {
		cfg.Title = "My API"
	}
	if cfg.QueryStringConverters == nil {
		cfg.QueryStringConverters = DefaultConverters()
	}
	if cfg.RequestBodyConverters == nil {
		cfg.RequestBodyConverters = DefaultConverters()
	}
	if cfg.HeadersConverters == nil {
		cfg.HeadersConverters = DefaultConverters()
	}
	if cfg.ResponseConverters == nil {
		cfg.ResponseConverters = DefaultConverters()
	}
	if cfg.AuthConverters == nil {
		cfg.AuthConverters = NewAuthConverterRegistry()
	}
	if cfg.DefaultResponseSchema == nil {
		cfg.DefaultResponseSchema = schema.DefaultError
	}
	return &Generator{cfg: cfg}
}

// roleConverters bundles the per-role converters of one generation pass.
// All four share a single resolver so every schema lands in one component
// name space.
type roleConverters struct {
	query    *Converter
	headers  *Converter
	body     *Converter
	response *Converter
}

// Generate assembles the document for a registry. host, when non-empty, is
// appended to the configured servers. Any configuration conflict (parameter
// mismatch, schema name collision, unknown converter or authenticator)
// aborts generation; no partial document is returned.
func (g *Generator) Generate(reg *registry.Registry, host string) (*Document, error) {
	rs := newResolver(refBase)
	conv := roleConverters{
		query:    &Converter{registry: g.cfg.QueryStringConverters, refs: rs},
		headers:  &Converter{registry: g.cfg.HeadersConverters, refs: rs},
		body:     &Converter{registry: g.cfg.RequestBodyConverters, refs: rs},
		response: &Converter{registry: g.cfg.ResponseConverters, refs: rs},
	}

	var defaultSecurity []SecurityRequirement
	for _, a := range reg.DefaultAuthenticators {
		reqs, err := g.cfg.AuthConverters.SecurityRequirements(a)
		if err != nil {
			return nil, err
		}
		defaultSecurity = append(defaultSecurity, reqs...)
	}

	paths, err := g.buildPaths(reg, conv, defaultSecurity)
	if err != nil {
		return nil, err
	}

	components, err := g.buildComponents(reg, rs)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:       g.cfg.Title,
			Version:     g.cfg.Version,
			Description: g.cfg.Description,
		},
		Paths:      paths,
		Components: components,
	}

	if len(defaultSecurity) > 0 {
		doc.Security = defaultSecurity
	}
	if len(g.cfg.Tags) > 0 {
		doc.Tags = g.cfg.Tags
	}

	servers := append([]Server(nil), g.cfg.Servers...)
	if host != "" {
		servers = append(servers, Server{URL: host})
	}
	if len(servers) > 0 {
		doc.Servers = servers
	}

	return doc, nil
}

// buildPaths walks the registry in sorted order and assembles the paths
// section. Registry templates that normalize to the same document path
// share one path item; their parameter lists must agree.
func (g *Generator) buildPaths(reg *registry.Registry, conv roleConverters, defaultSecurity []SecurityRequirement) (map[string]*PathItem, error) {
	paths := make(map[string]*PathItem)

	for _, rawPath := range reg.Paths() {
		methods := reg.Methods(rawPath)
		if !g.cfg.IncludeHidden && allHidden(reg, rawPath, methods) {
			continue
		}

		docPath, pathParams, err := formatPath(rawPath)
		if err != nil {
			return nil, err
		}

		item, ok := paths[docPath]
		if !ok {
			item = &PathItem{}
			paths[docPath] = item
		}

		if len(pathParams) > 0 {
			if item.Parameters != nil {
				if err := verifyParametersMatch(item.Parameters, pathParams); err != nil {
					return nil, fmt.Errorf("path %s: %w", docPath, err)
				}
			}
			item.Parameters = pathParams
		}

		for _, method := range methods {
			d := reg.Definition(rawPath, method)
			if d.Hidden && !g.cfg.IncludeHidden {
				continue
			}

			op, err := g.buildOperation(reg, d, conv, defaultSecurity)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, rawPath, err)
			}
			assignOperation(item, method, op)
		}
	}

	return paths, nil
}

// buildOperation assembles a single operation object from a path
// definition.
func (g *Generator) buildOperation(reg *registry.Registry, d *registry.PathDefinition, conv roleConverters, defaultSecurity []SecurityRequirement) (*Operation, error) {
	responses := make(map[string]*Response)

	// Every operation carries a fallback response using the default
	// response schema.
	fallback, err := g.responseDefinition(conv.response, g.cfg.DefaultResponseSchema)
	if err != nil {
		return nil, err
	}
	responses["default"] = fallback

	for _, code := range sortedCodes(d.Responses) {
		s := d.Responses[code]
		if s == nil {
			// Explicit no-body response, distinct from an unmapped code.
			responses[strconv.Itoa(code)] = &Response{Description: "No response body."}
			continue
		}
		resp, err := g.responseDefinition(conv.response, s)
		if err != nil {
			return nil, err
		}
		responses[strconv.Itoa(code)] = resp
	}

	var params []*Parameter

	if d.QueryStringSchema != nil {
		qs, err := flattenParameters(conv.query, d.QueryStringSchema, "query")
		if err != nil {
			return nil, err
		}
		params = append(params, qs...)
	}

	headersSchema := d.HeadersSchema.Schema()
	if d.HeadersSchema.IsDefault() {
		headersSchema = reg.DefaultHeadersSchema
	}
	if headersSchema != nil {
		hs, err := flattenParameters(conv.headers, headersSchema, "header")
		if err != nil {
			return nil, err
		}
		params = append(params, hs...)
	}

	var body *RequestBody
	if d.RequestBodySchema != nil {
		ref, err := conv.body.Ref(d.RequestBodySchema)
		if err != nil {
			return nil, err
		}
		body = &RequestBody{
			Required: true,
			Content:  map[string]*MediaType{contentTypeJSON: {Schema: ref}},
		}
	}

	op := &Operation{
		OperationID: d.Endpoint,
		Summary:     d.Summary,
		Description: d.Description,
		Tags:        d.Tags,
		Parameters:  params,
		RequestBody: body,
		Responses:   responses,
	}

	if err := applySecurity(op, d, g.cfg.AuthConverters, defaultSecurity); err != nil {
		return nil, err
	}

	return op, nil
}

// applySecurity sets the operation security list. No authenticators means
// explicitly unauthenticated (emitted as an empty list). When any concrete
// authenticator is present, the merged list is emitted, with DefaultAuth
// entries substituted by the registry defaults. When every entry is
// DefaultAuth, the operation inherits the document-level security silently.
func applySecurity(op *Operation, d *registry.PathDefinition, auth *AuthConverterRegistry, defaultSecurity []SecurityRequirement) error {
	if len(d.Authenticators) == 0 {
		op.Security = []SecurityRequirement{}
		return nil
	}

	var (
		security   []SecurityRequirement
		nonDefault bool
	)
	for _, opt := range d.Authenticators {
		if opt.IsDefault() {
			security = append(security, defaultSecurity...)
			continue
		}
		reqs, err := auth.SecurityRequirements(opt.Authenticator())
		if err != nil {
			return err
		}
		security = append(security, reqs...)
		nonDefault = true
	}

	if nonDefault {
		if security == nil {
			security = []SecurityRequirement{}
		}
		op.Security = security
	}
	return nil
}

// responseDefinition builds a response object referencing the schema.
func (g *Generator) responseDefinition(c *Converter, s schema.Schema) (*Response, error) {
	ref, err := c.Ref(s)
	if err != nil {
		return nil, err
	}
	desc := s.SchemaDoc()
	if desc == "" {
		desc = s.SchemaName()
	}
	return &Response{
		Description: desc,
		Content:     map[string]*MediaType{contentTypeJSON: {Schema: ref}},
	}, nil
}

// buildComponents assembles the components section: collected schema
// definitions plus the security schemes of every authenticator in use.
func (g *Generator) buildComponents(reg *registry.Registry, rs *resolver) (*Components, error) {
	schemes := make(map[string]*SecurityScheme)
	for _, a := range uniqueAuthenticators(reg) {
		m, err := g.cfg.AuthConverters.SecuritySchemes(a)
		if err != nil {
			return nil, err
		}
		// Later authenticators overwrite same-named schemes. Equivalence
		// is not checked; see AuthConverterRegistry.
		for name, scheme := range m {
			schemes[name] = scheme
		}
	}

	defs := rs.definitions()
	if len(defs) == 0 && len(schemes) == 0 {
		return nil, nil
	}

	comp := &Components{}
	if len(defs) > 0 {
		comp.Schemas = defs
	}
	if len(schemes) > 0 {
		comp.SecuritySchemes = schemes
	}
	return comp, nil
}

// uniqueAuthenticators collects every authenticator the registry uses,
// de-duplicated by identity: the registry defaults first, then the concrete
// authenticators of every handler in sorted path order.
func uniqueAuthenticators(reg *registry.Registry) []registry.Authenticator {
	seen := make(map[registry.Authenticator]bool)
	var out []registry.Authenticator

	add := func(a registry.Authenticator) {
		if a == nil || seen[a] {
			return
		}
		seen[a] = true
		out = append(out, a)
	}

	for _, a := range reg.DefaultAuthenticators {
		add(a)
	}
	for _, path := range reg.Paths() {
		for _, method := range reg.Methods(path) {
			for _, opt := range reg.Definition(path, method).Authenticators {
				if !opt.IsDefault() {
					add(opt.Authenticator())
				}
			}
		}
	}

	return out
}

// allHidden reports whether every method of a path is hidden.
func allHidden(reg *registry.Registry, path string, methods []string) bool {
	for _, method := range methods {
		if !reg.Definition(path, method).Hidden {
			return false
		}
	}
	return true
}

// sortedCodes returns the response status codes in ascending order.
func sortedCodes(responses map[int]schema.Schema) []int {
	codes := make([]int, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// assignOperation assigns an operation to the correct HTTP method field on
// the path item.
func assignOperation(item *PathItem, method string, op *Operation) {
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodHead:
		item.Head = op
	case http.MethodOptions:
		item.Options = op
	case http.MethodTrace:
		item.Trace = op
	}
}
