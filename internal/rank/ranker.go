package rank

import (
	"slices"
	"sort"

	"github.com/papapumpkin/linkrank/internal/graph"
)

// Score is one node's label paired with its rank.
type Score struct {
	Label string  `json:"label" yaml:"label" toml:"label"`
	Rank  float64 `json:"rank" yaml:"rank" toml:"rank"`
}

// Ranker binds a graph to an Engine and keeps the vector produced by the
// most recent Run.
type Ranker struct {
	g      *graph.Graph
	engine *Engine
	ranks  Vector
}

// NewRanker returns a Ranker over g. The graph may keep growing after
// construction; each Run sees its current state.
func NewRanker(g *graph.Graph, opts Options) (*Ranker, error) {
	e, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}
	return &Ranker{g: g, engine: e, ranks: Vector{}}, nil
}

// Graph returns the ranked graph.
func (r *Ranker) Graph() *graph.Graph {
	return r.g
}

// Run computes ranks with the given iteration count, replacing the result
// of any previous Run.
func (r *Ranker) Run(iterations int) {
	r.ranks = r.engine.Compute(r.g, iterations)
}

// Vector returns a copy of the most recent rank vector.
func (r *Ranker) Vector() Vector {
	return slices.Clone(r.ranks)
}

// SortedRanks pairs every ranked id with its label, ordered by byte-wise
// ascending label. Nodes added after the last Run are not included.
// Repeated calls without an intervening Run return identical results.
func (r *Ranker) SortedRanks() []Score {
	scores := make([]Score, len(r.ranks))
	for id, v := range r.ranks {
		scores[id] = Score{Label: r.g.Label(graph.ID(id)), Rank: v}
	}
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].Label < scores[j].Label
	})
	return scores
}

// Ranks returns the most recent result keyed by label.
func (r *Ranker) Ranks() map[string]float64 {
	m := make(map[string]float64, len(r.ranks))
	for id, v := range r.ranks {
		m[r.g.Label(graph.ID(id))] = v
	}
	return m
}
