package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/linkrank/internal/graph"
)

func mustRanker(t *testing.T, g *graph.Graph) *Ranker {
	t.Helper()
	r, err := NewRanker(g, DefaultOptions())
	require.NoError(t, err)
	return r
}

func labelsOf(scores []Score) []string {
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.Label
	}
	return out
}

func TestSortedRanksOrder(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("C", "A")
	g.AddEdge("A", "B")

	r := mustRanker(t, g)
	r.Run(1)

	assert.Equal(t, []string{"A", "B", "C"}, labelsOf(r.SortedRanks()))
}

func TestSortedRanksByteOrder(t *testing.T) {
	t.Parallel()
	g := graph.New()
	for _, l := range []string{"b.com", "B.com", "a.com", "_x", "ä.com", "a"} {
		g.AddNode(l)
	}

	r := mustRanker(t, g)
	r.Run(1)

	assert.Equal(t, []string{"B.com", "_x", "a", "a.com", "b.com", "ä.com"}, labelsOf(r.SortedRanks()))
}

func TestSortedRanksInitialization(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")

	r := mustRanker(t, g)
	r.Run(1)

	for _, s := range r.SortedRanks() {
		assert.InDelta(t, 0.33, s.Rank, 0.005, s.Label)
	}
}

func TestSortedRanksTwoIterations(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")

	r := mustRanker(t, g)
	r.Run(2)
	got := r.Ranks()

	assert.Less(t, got["A"], 1.0/3)
	assert.InDelta(t, 0.0, got["A"], tolerance)
	assert.InDelta(t, 1.0/3, got["B"], tolerance)
	assert.InDelta(t, 1.0/3, got["C"], tolerance)
}

func TestSortedRanksIdempotent(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("x", "y")
	g.AddEdge("y", "z")
	g.AddEdge("z", "x")
	g.AddNode("w")

	r := mustRanker(t, g)
	r.Run(5)

	first := r.SortedRanks()
	second := r.SortedRanks()
	assert.Equal(t, first, second)
}

func TestSortedRanksEmpty(t *testing.T) {
	t.Parallel()
	r := mustRanker(t, graph.New())

	assert.Empty(t, r.SortedRanks(), "before Run")
	r.Run(3)
	assert.NotNil(t, r.SortedRanks())
	assert.Empty(t, r.SortedRanks())
	assert.Empty(t, r.Ranks())
}

func TestSortedRanksIsolatedNode(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("google.com", "gmail.com")
	g.AddNode("lonely.com")

	r := mustRanker(t, g)
	r.Run(1)

	got := r.Ranks()
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0/3, got["lonely.com"], tolerance)
}

func TestRunReplacesPreviousResult(t *testing.T) {
	t.Parallel()
	g := graph.New()
	g.AddEdge("A", "B")

	r := mustRanker(t, g)
	r.Run(1)
	before := r.Vector()

	g.AddEdge("B", "C")
	assert.Len(t, r.SortedRanks(), 2, "nodes added after Run are not ranked yet")

	r.Run(1)
	assert.Len(t, r.SortedRanks(), 3)
	assert.Len(t, before, 2, "Vector returns a copy")
}

func TestNewRankerRejectsBadOptions(t *testing.T) {
	t.Parallel()
	_, err := NewRanker(graph.New(), Options{Variant: "bogus"})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}
