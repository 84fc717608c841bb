package codec

import (
	"strings"
	"testing"

	"github.com/hupe1980/gomapper/nerve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *nerve.Graph {
	return &nerve.Graph{
		Nodes: []nerve.Node{{ID: 0, Size: 3}, {ID: 1, Size: 2}},
		Edges: []nerve.Edge{{From: 0, To: 1}},
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		c, err := Lookup(name, "")
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}

	_, err := Lookup("msgpack", "")
	assert.ErrorIs(t, err, ErrUnknownCodec)
	assert.Contains(t, err.Error(), "go-json")
}

func TestCodecsAgree(t *testing.T) {
	g := sampleGraph()

	std, err := JSON{}.Marshal(g)
	require.NoError(t, err)
	fast, err := GoJSON{}.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, string(std), string(fast))

	var decoded nerve.Graph
	require.NoError(t, JSON{}.Unmarshal(fast, &decoded))
	assert.Equal(t, g.Nodes, decoded.Nodes)
	assert.Equal(t, g.Edges, decoded.Edges)
}

func TestIndent(t *testing.T) {
	g := sampleGraph()

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			compact, err := Lookup(name, "")
			require.NoError(t, err)
			pretty, err := Lookup(name, "  ")
			require.NoError(t, err)

			a, err := compact.Marshal(g)
			require.NoError(t, err)
			b, err := pretty.Marshal(g)
			require.NoError(t, err)

			assert.NotContains(t, string(a), "\n")
			assert.True(t, strings.Contains(string(b), "\n  \"nodes\""))
			assert.JSONEq(t, string(a), string(b))
		})
	}
}

func TestMarshalError(t *testing.T) {
	for _, name := range Names() {
		c, err := Lookup(name, "")
		require.NoError(t, err)
		_, err = c.Marshal(make(chan int))
		assert.Error(t, err, name)
	}
}
