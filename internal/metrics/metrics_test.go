package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/linkrank/internal/graph"
	"github.com/papapumpkin/linkrank/internal/rank"
)

func computeWith(t *testing.T, obs rank.Observer, g *graph.Graph, iterations int) {
	t.Helper()
	opts := rank.DefaultOptions()
	opts.Observer = obs
	e, err := rank.NewEngine(opts)
	require.NoError(t, err)
	e.Compute(g, iterations)
}

func TestRecorderTracksRun(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()

	g := graph.New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	computeWith(t, rec.Track("chain.txt"), g, 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.RunsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.IterationsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.Nodes.WithLabelValues("chain.txt")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.Edges.WithLabelValues("chain.txt")))
	assert.InDelta(t, 1.0/3, testutil.ToFloat64(rec.Mass.WithLabelValues("chain.txt")), 1e-12)
	assert.Equal(t, 1, testutil.CollectAndCount(rec.ComputeDuration))
}

func TestRecorderAccumulatesAcrossRuns(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()

	g := graph.New()
	g.AddEdge("x", "y")
	computeWith(t, rec.Track("a"), g, 2)
	computeWith(t, rec.Track("b"), g, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.RunsTotal))
	assert.Equal(t, 7.0, testutil.ToFloat64(rec.IterationsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(rec.Nodes))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()
	computeWith(t, rec.Track("empty"), graph.New(), 1)

	path := filepath.Join(t.TempDir(), "linkrank.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "linkrank_runs_total 1")
	assert.Contains(t, string(data), `linkrank_graph_nodes{source="empty"} 0`)
}

func TestWriteTextfileBadPath(t *testing.T) {
	t.Parallel()
	err := NewRecorder().WriteTextfile("/nonexistent/dir/linkrank.prom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics: write")
}
