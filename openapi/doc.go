// Package openapi converts a handler registry into an OpenAPI v3.1.0
// specification document.
//
// The package targets the OpenAPI Specification v3.1.0 and uses JSON Schema
// Draft 2020-12 for schema definitions. Generation is a pure one-shot
// computation over a caller-built registry: it either returns a complete
// Document or a configuration error, never a partial document.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://json-schema.org/draft/2020-12/json-schema-core
//
// # Generating a document
//
// Build a registry, describe each handler, and generate:
//
//	reg := registry.New()
//	reg.Add("/widgets/{id:int}", http.MethodGet, &registry.PathDefinition{
//	    Endpoint: "getWidget",
//	    Summary:  "Get a widget",
//	    Responses: map[int]schema.Schema{
//	        200: widgetSchema,
//	    },
//	})
//
//	gen := openapi.NewGenerator(openapi.Config{
//	    Title:   "Widget API",
//	    Version: "1.0.0",
//	})
//	doc, err := gen.Generate(reg, "https://api.example.com")
//
// The caller serializes the document:
//
//	data, err := openapi.EncodeJSON(doc, true)
//
// # Schemas and references
//
// Schemas attached to request bodies and responses are collected into the
// components section exactly once and referenced by name everywhere else.
// The same schema value used across handlers resolves to the same
// reference; two distinct schemas claiming the same name abort generation
// with ErrSchemaNameCollision.
//
// # Path templates
//
// Registry paths use {name} or {name:converter} variables. Each converter
// tag maps to a fixed OpenAPI type ({id:int} becomes an integer path
// parameter); an unknown tag aborts generation. Templates that normalize to
// the same document path share one path item and must agree on parameter
// types, otherwise generation fails with ErrParameterMismatch.
//
// # Security
//
// Authenticators attached to handlers are rendered through an
// AuthConverterRegistry. A handler with no authenticators is emitted with
// an explicitly empty security list; DefaultAuth entries substitute the
// registry defaults.
package openapi
