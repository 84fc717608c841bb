package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the document compression.
type Compression string

const (
	// CompressionNone writes plain JSON.
	CompressionNone Compression = "none"
	// CompressionLZ4 writes an LZ4 frame (fast).
	CompressionLZ4 Compression = "lz4"
	// CompressionZstd writes a Zstandard frame (better ratio).
	CompressionZstd Compression = "zstd"
)

// ParseCompression parses a compression name. The empty string means none.
func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionLZ4, CompressionZstd:
		return Compression(s), nil
	default:
		return "", fmt.Errorf("export: unknown compression %q", s)
	}
}

// Frame magics, little-endian.
const (
	lz4Magic  = 0x184D2204
	zstdMagic = 0xFD2FB528
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case "", CompressionNone:
		return data, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, err
		}
		defer putZstdEncoder(enc)
		return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	default:
		return nil, fmt.Errorf("export: unknown compression %q", c)
	}
}

// detect reports the compression of data from its leading frame magic.
func detect(data []byte) Compression {
	if len(data) < 4 {
		return CompressionNone
	}
	switch binary.LittleEndian.Uint32(data) {
	case lz4Magic:
		return CompressionLZ4
	case zstdMagic:
		return CompressionZstd
	default:
		return CompressionNone
	}
}

func decompress(data []byte) ([]byte, Compression, error) {
	c := detect(data)
	switch c {
	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		return out, c, err
	case CompressionZstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, c, err
		}
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(data, nil)
		return out, c, err
	default:
		return data, c, nil
	}
}
