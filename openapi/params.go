package openapi

import (
	"github.com/vitalvas/apidoc/schema"
)

// flattenParameters converts an object schema into a list of independent
// parameters, one per top-level field. Nested object fields do not recurse:
// only the fields declared directly on the schema become parameters.
//
// The document represents description and serialization hints orthogonally
// to the value schema, so the field description moves from the converted
// fragment onto the parameter, and multi-value query fields get their
// form/explode behavior at the parameter level. Hints that do not apply are
// omitted entirely.
func flattenParameters(c *Converter, s schema.Schema, in string) ([]*Parameter, error) {
	var params []*Parameter

	for _, f := range s.SchemaFields() {
		frag, err := c.Convert(f)
		if err != nil {
			return nil, err
		}

		p := &Parameter{
			Name:     f.Name,
			In:       in,
			Required: f.Required,
		}

		if frag.Ref == "" && frag.Description != "" {
			p.Description = frag.Description
			frag.Description = ""
		}

		if in == "query" && f.Kind == schema.KindList {
			p.Style = "form"
			p.Explode = boolPtr(true)
		}

		p.Schema = frag
		params = append(params, p)
	}

	return params, nil
}

func boolPtr(v bool) *bool { return &v }
