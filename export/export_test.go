package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	mapper "github.com/hupe1980/gomapper"
	"github.com/hupe1980/gomapper/blobstore"
	"github.com/hupe1980/gomapper/cluster"
	"github.com/hupe1980/gomapper/codec"
	"github.com/hupe1980/gomapper/cover"
	"github.com/hupe1980/gomapper/lens"
	"github.com/hupe1980/gomapper/model"
	"github.com/hupe1980/gomapper/nerve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLine(t *testing.T, backend cluster.Backend) (*mapper.Result, int) {
	t.Helper()

	var data model.Dataset
	for i := 0; i <= 20; i++ {
		data = append(data, model.Point{float64(i) / 2})
	}

	m, err := mapper.New(data)
	require.NoError(t, err)

	res, err := m.Run(context.Background(), mapper.RunConfig{
		Lens:     lens.Project(0),
		Ranges:   []cover.Range{{Min: 0, Max: 10}},
		Lengths:  []float64{3},
		Overlaps: []float64{1},
		Backend:  backend,
	})
	require.NoError(t, err)
	return res, len(data)
}

func TestFromResult(t *testing.T) {
	res, n := runLine(t, cluster.Single{})

	doc, err := FromResult(res, n)
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, doc.Version)
	assert.Equal(t, res.RunID, doc.RunID)
	assert.Equal(t, 21, doc.Points)
	assert.Equal(t, 5, doc.Cells)
	require.Len(t, doc.Nodes, 5)
	require.Len(t, doc.Edges, 4)

	first := doc.Nodes[0]
	assert.Equal(t, 7, first.Size)
	assert.InDelta(t, 7.0/5.0, first.RelSize, 1e-12)
	assert.Equal(t, "#ff0000", first.Color)
	assert.Equal(t, "Contains 7 elements", first.Title)
	assert.Equal(t, model.Cell{{Low: 0, High: 3}}, first.Bounds)

	last := doc.Nodes[4]
	assert.Equal(t, "#ff4900", last.Color)
	assert.Equal(t, model.Cell{{Low: 8, High: 10}}, last.Bounds)

	assert.Equal(t, nerve.Edge{From: 0, To: 1}, doc.Edges[0].Edge)
	assert.Equal(t, EdgeColor, doc.Edges[0].Color)
	assert.Empty(t, doc.Failures)

	g := doc.Graph()
	assert.Equal(t, res.Graph.Nodes, g.Nodes)
	assert.Equal(t, res.Graph.Edges, g.Edges)
}

func TestFromResultFailures(t *testing.T) {
	res, n := runLine(t, cluster.BackendFunc(func(ctx context.Context, points []model.Point) ([]int, error) {
		if len(points) == 5 {
			return nil, cluster.ErrTooFewPoints
		}
		return make([]int, len(points)), nil
	}))

	doc, err := FromResult(res, n)
	require.NoError(t, err)
	require.Len(t, doc.Failures, 1)
	assert.Equal(t, 4, doc.Failures[0].Cell)
	assert.Equal(t, 5, doc.Failures[0].Points)
	assert.Contains(t, doc.Failures[0].Error, "too few points")
}

func TestFromResultWithoutGraph(t *testing.T) {
	_, err := FromResult(&mapper.Result{}, 0)
	assert.Error(t, err)
}

func TestNodeColor(t *testing.T) {
	assert.Equal(t, "#ffff00", NodeColor(0, 10))
	assert.Equal(t, "#ff8000", NodeColor(5, 10))
	assert.Equal(t, "#ff0000", NodeColor(10, 10))
	assert.Equal(t, "#ffff00", NodeColor(0, 0))
}

func TestEncodeDecode(t *testing.T) {
	res, n := runLine(t, cluster.Single{})
	doc, err := FromResult(res, n)
	require.NoError(t, err)
	doc.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	cases := []struct {
		compression Compression
		codec       codec.Codec
	}{
		{CompressionNone, codec.JSON{}},
		{CompressionNone, codec.GoJSON{}},
		{CompressionLZ4, codec.GoJSON{}},
		{CompressionZstd, codec.JSON{}},
	}

	for _, tc := range cases {
		t.Run(string(tc.compression)+"/"+tc.codec.Name(), func(t *testing.T) {
			data, err := Encode(doc, WithCodec(tc.codec), WithCompression(tc.compression))
			require.NoError(t, err)
			assert.Equal(t, tc.compression, detect(data))

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, doc, got)
		})
	}

	t.Run("PlainIsJSON", func(t *testing.T) {
		data, err := Encode(doc)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "{"))
	})

	t.Run("UnknownCompression", func(t *testing.T) {
		_, err := Encode(doc, WithCompression("brotli"))
		assert.Error(t, err)
	})

	t.Run("WrongVersion", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":99}`))
		assert.ErrorContains(t, err, "unsupported document version")
	})
}

func TestParseCompression(t *testing.T) {
	c, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)

	c, err = ParseCompression("zstd")
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, c)

	_, err = ParseCompression("gzip")
	assert.Error(t, err)
}

func TestWriteRead(t *testing.T) {
	res, n := runLine(t, cluster.Single{})
	doc, err := FromResult(res, n)
	require.NoError(t, err)

	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, Write(ctx, store, "graphs/line.json.zst", doc,
		WithCompression(CompressionZstd),
		WithRateLimit(1<<20),
	))

	got, err := Read(ctx, store, "graphs/line.json.zst")
	require.NoError(t, err)
	assert.Equal(t, doc.Nodes, got.Nodes)
	assert.Equal(t, doc.Edges, got.Edges)

	_, err = Read(ctx, store, "graphs/missing.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestEncodeTo(t *testing.T) {
	res, n := runLine(t, cluster.Single{})
	doc, err := FromResult(res, n)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeTo(context.Background(), &buf, doc, WithCompression(CompressionLZ4)))

	got, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, doc.Nodes, got.Nodes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = EncodeTo(ctx, &buf, doc, WithRateLimit(16))
	assert.Error(t, err)
}
