package openapi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownPathConverter is returned when a path variable uses a converter
// tag outside the fixed lookup table.
var ErrUnknownPathConverter = errors.New("unknown path converter")

// ErrParameterMismatch is returned when two path templates that normalize
// to the same document path declare different types for the same parameter.
var ErrParameterMismatch = errors.New("conflicting path parameter definitions")

// pathConverterTypes maps path variable converter tags to OpenAPI type and
// format.
var pathConverterTypes = map[string][2]string{
	"string":   {"string", ""},
	"int":      {"integer", ""},
	"float":    {"number", ""},
	"path":     {"string", ""},
	"uuid":     {"string", "uuid"},
	"slug":     {"string", ""},
	"alpha":    {"string", ""},
	"alphanum": {"string", ""},
	"date":     {"string", "date"},
	"hex":      {"string", ""},
	"domain":   {"string", "hostname"},
}

// pathVarRegexp matches path variables in the form {name} or {name:converter}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// formatPath converts a registry path template into the document path and
// the ordered list of path parameters. A bare {name} variable is a string;
// {name:converter} takes its type from the converter table. Parameters are
// always required, located in the path, with simple serialization.
func formatPath(tpl string) (string, []*Parameter, error) {
	var (
		params  []*Parameter
		convErr error
	)

	docPath := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		varName, convName, _ := strings.Cut(inner, ":")

		s := &Schema{Type: TypeString("string")}
		if convName != "" {
			typeInfo, ok := pathConverterTypes[convName]
			if !ok {
				if convErr == nil {
					convErr = fmt.Errorf("%w: %q in %s", ErrUnknownPathConverter, convName, tpl)
				}
				return match
			}
			s = &Schema{Type: TypeString(typeInfo[0])}
			if typeInfo[1] != "" {
				s.Format = typeInfo[1]
			}
		}

		params = append(params, &Parameter{
			Name:     varName,
			In:       "path",
			Required: true,
			Style:    "simple",
			Schema:   s,
		})
		return "{" + varName + "}"
	})

	if convErr != nil {
		return "", nil, convErr
	}

	return docPath, params, nil
}

// verifyParametersMatch checks that two parameter lists for the same
// document path agree on names and types. Different registry templates can
// normalize to the same document path; when they disagree on a parameter
// type the configuration is ambiguous and generation must fail.
func verifyParametersMatch(existing, incoming []*Parameter) error {
	if len(existing) != len(incoming) {
		return fmt.Errorf("%w: %d parameters vs %d", ErrParameterMismatch, len(existing), len(incoming))
	}

	byName := make(map[string]*Parameter, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	for _, p := range incoming {
		prev, ok := byName[p.Name]
		if !ok {
			return fmt.Errorf("%w: parameter %q not declared by all templates", ErrParameterMismatch, p.Name)
		}
		if !sameParameterType(prev.Schema, p.Schema) {
			return fmt.Errorf("%w: parameter %q", ErrParameterMismatch, p.Name)
		}
	}

	return nil
}

func sameParameterType(a, b *Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Format != b.Format {
		return false
	}
	at, bt := a.Type.Values(), b.Type.Values()
	if len(at) != len(bt) {
		return false
	}
	for i := range at {
		if at[i] != bt[i] {
			return false
		}
	}
	return true
}
