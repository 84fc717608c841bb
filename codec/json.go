package codec

import "encoding/json"

// JSON encodes documents with encoding/json.
//
// Use it when downstream tooling compares documents byte for byte against
// encoding/json output.
type JSON struct {
	// Indent, when set, is repeated once per nesting level.
	Indent string
}

func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Name() string { return "json" }

// Default is the codec export uses when none is configured.
var Default Codec = GoJSON{}
