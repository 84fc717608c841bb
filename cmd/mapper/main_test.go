package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/gomapper/dataset"
	"github.com/hupe1980/gomapper/export"
	"github.com/hupe1980/gomapper/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCoverCmd(t *testing.T) {
	out, _, err := execute(t, "cover", "--range", "0:10", "--length", "3", "--overlap", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "dimension 0 (5 intervals)")
	assert.Contains(t, out, "[8, 10]")
	assert.Contains(t, out, "5 cells")

	t.Run("Cells", func(t *testing.T) {
		out, _, err := execute(t, "cover",
			"--range", "-1:1", "--range", "-1:1",
			"--length", "1,2", "--overlap", "0.5,0",
			"--cells")
		require.NoError(t, err)
		assert.Contains(t, out, "3 cells")
		assert.Contains(t, out, "[0, 1] x [-1, 1]")
	})

	t.Run("Invalid", func(t *testing.T) {
		_, _, err := execute(t, "cover", "--range", "0:10", "--length", "1", "--overlap", "1")
		assert.Error(t, err)

		_, _, err = execute(t, "cover", "--range", "0-10", "--length", "1", "--overlap", "0")
		assert.ErrorContains(t, err, "invalid range")
	})
}

func writeRunFixture(t *testing.T, output string) string {
	t.Helper()
	dir := t.TempDir()

	points := testutil.NewRNG(42).Circles(400, 0.02, 0.3)
	f, err := os.Create(filepath.Join(dir, "points.txt"))
	require.NoError(t, err)
	require.NoError(t, dataset.Write(f, points))
	require.NoError(t, f.Close())

	cfg := `
input: ` + filepath.Join(dir, "points.txt") + `
lens: {type: projection, coordinates: [1]}
cover: {ranges: [[-1.2, 1.2]], lengths: [0.4], overlaps: [0.1]}
clustering: {algorithm: dbscan, eps: 0.15, min_samples: 3}
log_level: error
output: {path: ` + output + `, compression: zstd}
`
	path := filepath.Join(dir, "mapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestRunCmd(t *testing.T) {
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "graph.json.zst")
	cfgPath := writeRunFixture(t, outPath)

	_, stderr, err := execute(t, "run", "--config", cfgPath, "--workers", "2", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, "nodes")
	assert.Contains(t, stderr, "mapper_runs_total 1")

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)

	doc, err := export.Decode(raw)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Nodes)
	assert.Equal(t, 400, doc.Points)
}

func TestRunCmdStdout(t *testing.T) {
	cfgPath := writeRunFixture(t, "unused.json")

	stdout, _, err := execute(t, "run", "-c", cfgPath, "-o", "-")
	require.NoError(t, err)

	doc, err := export.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Edges)
}

func TestRunCmdMissingConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no such file"))
}
