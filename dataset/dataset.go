package dataset

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/gomapper/blobstore"
	"github.com/hupe1980/gomapper/model"
)

// ErrFormat is wrapped by every parse error.
var ErrFormat = errors.New("dataset: malformed input")

// ParseError locates a parse failure.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: line %d: %s", e.Line, e.Reason)
}

// Is reports ErrFormat as a match.
func (e *ParseError) Is(target error) bool { return target == ErrFormat }

// Read parses a point cloud from r.
func Read(r io.Reader) (model.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		data  model.Dataset
		count = -1
		line  int
	)

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		if count < 0 {
			n, err := strconv.Atoi(text)
			if err != nil || n < 0 {
				return nil, &ParseError{Line: line, Reason: fmt.Sprintf("invalid point count %q", text)}
			}
			count = n
			data = make(model.Dataset, 0, n)
			continue
		}

		if len(data) == count {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("more than %d points", count)}
		}

		p, err := parsePoint(text)
		if err != nil {
			return nil, &ParseError{Line: line, Reason: err.Error()}
		}
		if len(data) > 0 && len(p) != len(data[0]) {
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("point has %d coordinates, expected %d", len(p), len(data[0]))}
		}
		data = append(data, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, &ParseError{Line: line, Reason: "missing point count"}
	}
	if len(data) != count {
		return nil, &ParseError{Line: line, Reason: fmt.Sprintf("expected %d points, got %d", count, len(data))}
	}
	return data, nil
}

func parsePoint(text string) (model.Point, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, errors.New("empty point")
	}

	p := make(model.Point, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		p[i] = v
	}
	return p, nil
}

// Write serialises data in the format accepted by Read.
func Write(w io.Writer, data model.Dataset) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, len(data)); err != nil {
		return err
	}
	for _, p := range data {
		for i, v := range p {
			if i > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads a point cloud from a file.
func Load(path string) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// LoadBlob reads a point cloud stored under name.
func LoadBlob(ctx context.Context, store blobstore.Store, name string) (model.Dataset, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data))
}

// SaveBlob writes a point cloud under name.
func SaveBlob(ctx context.Context, store blobstore.Store, name string, data model.Dataset) error {
	var buf bytes.Buffer
	if err := Write(&buf, data); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}
