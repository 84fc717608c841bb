package export

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/gomapper/blobstore"
	"github.com/hupe1980/gomapper/codec"
	"github.com/hupe1980/gomapper/internal/resource"
)

// Options configures encoding and transfer.
type Options struct {
	// Codec encodes the document. Defaults to codec.Default.
	Codec codec.Codec
	// Compression defaults to CompressionNone.
	Compression Compression
	// RateLimit caps upload throughput in bytes per second. 0 is unlimited.
	RateLimit int64
}

// Option configures Options.
type Option func(*Options)

// WithCodec sets the document codec.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) { o.Codec = c }
}

// WithCompression sets the document compression.
func WithCompression(c Compression) Option {
	return func(o *Options) { o.Compression = c }
}

// WithRateLimit caps upload throughput.
func WithRateLimit(bytesPerSec int64) Option {
	return func(o *Options) { o.RateLimit = bytesPerSec }
}

func applyOptions(optFns []Option) Options {
	o := Options{Codec: codec.Default, Compression: CompressionNone}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	return o
}

// Encode serialises and compresses doc.
func Encode(doc *Document, optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)

	raw, err := o.Codec.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("export: encode with %s: %w", o.Codec.Name(), err)
	}
	return compress(raw, o.Compression)
}

// Decode reverses Encode. The compression is detected from the data.
func Decode(data []byte, optFns ...Option) (*Document, error) {
	o := applyOptions(optFns)

	raw, c, err := decompress(data)
	if err != nil {
		return nil, fmt.Errorf("export: decompress %s: %w", c, err)
	}

	var doc Document
	if err := o.Codec.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("export: decode with %s: %w", o.Codec.Name(), err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("export: unsupported document version %d", doc.Version)
	}
	return &doc, nil
}

// EncodeTo writes the encoded document to w, honouring RateLimit.
func EncodeTo(ctx context.Context, w io.Writer, doc *Document, optFns ...Option) error {
	o := applyOptions(optFns)

	data, err := Encode(doc, optFns...)
	if err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: o.RateLimit})
	_, err = resource.NewRateLimitedWriter(ctx, w, rc).Write(data)
	return err
}

// Write encodes doc and stores it under name.
func Write(ctx context.Context, store blobstore.Store, name string, doc *Document, optFns ...Option) error {
	o := applyOptions(optFns)

	data, err := Encode(doc, optFns...)
	if err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: o.RateLimit})
	if err := rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("export: put %s: %w", name, err)
	}
	return nil
}

// Read loads and decodes the document stored under name.
func Read(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Document, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("export: get %s: %w", name, err)
	}
	return Decode(data, optFns...)
}
