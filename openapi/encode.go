package openapi

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// EncodeJSON serializes a document as indented JSON. With sorted set, the
// document is first reduced to plain maps so object keys come out in
// lexicographic order at every level; encoding an unchanged document twice
// then yields byte-identical output. Without sorted, struct field order is
// preserved.
func EncodeJSON(doc *Document, sorted bool) ([]byte, error) {
	if !sorted {
		return json.MarshalIndent(doc, "", "  ")
	}
	v, err := toPlain(doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, "", "  ")
}

// EncodeYAML serializes a document as YAML. The document always passes
// through its JSON form first so field omission and key ordering match the
// sorted JSON encoding.
func EncodeYAML(doc *Document) ([]byte, error) {
	v, err := toPlain(doc)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

// toPlain reduces the typed document to maps, slices, and scalars via its
// JSON encoding.
func toPlain(doc *Document) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
