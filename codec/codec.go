// Package codec encodes exported Mapper graph documents.
//
// Two JSON codecs produce interchangeable output: JSON uses encoding/json
// and GoJSON uses github.com/goccy/go-json, the default for large graphs.
// Either can indent its output for documents meant to be read by people.
// Lookup resolves the names used in run configuration files.
package codec

import (
	"errors"
	"fmt"
)

// ErrUnknownCodec is returned by Lookup for a name no codec answers to.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec encodes/decodes graph documents.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Names lists the built-in codec names accepted by Lookup.
func Names() []string {
	return []string{JSON{}.Name(), GoJSON{}.Name()}
}

// Lookup returns the built-in codec with the given name. A non-empty
// indent makes the codec emit indented documents.
func Lookup(name, indent string) (Codec, error) {
	switch name {
	case JSON{}.Name():
		return JSON{Indent: indent}, nil
	case GoJSON{}.Name():
		return GoJSON{Indent: indent}, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownCodec, name, Names())
	}
}
