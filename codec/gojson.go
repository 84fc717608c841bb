package codec

import gojson "github.com/goccy/go-json"

// GoJSON encodes documents with github.com/goccy/go-json.
//
// Output is plain JSON, so a document written with GoJSON reads back with
// JSON and vice versa.
type GoJSON struct {
	// Indent, when set, is repeated once per nesting level.
	Indent string
}

func (c GoJSON) Marshal(v any) ([]byte, error) {
	if c.Indent != "" {
		return gojson.MarshalIndent(v, "", c.Indent)
	}
	return gojson.Marshal(v)
}

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

func (GoJSON) Name() string { return "go-json" }
