// Package rank computes PageRank scores over a graph.Graph by power
// iteration with a fixed, caller-supplied iteration count, and maps the
// resulting vector back to labels in alphabetical order.
package rank

import "github.com/papapumpkin/linkrank/internal/graph"

// Vector holds one rank value per node id.
type Vector []float64

// Sum returns the total rank mass.
func (v Vector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// Engine runs power iteration over a graph. An Engine holds no per-graph
// state and may be reused for any number of graphs.
type Engine struct {
	opts Options
}

// NewEngine validates opts and returns an Engine.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

// Compute runs exactly iterations iterations over g and returns a fresh
// rank vector indexed by node id.
//
// Iteration 1 seeds every node with 1/N; iterations 2..P each propagate the
// previous vector along the out-edges. An empty graph or a non-positive
// iteration count yields an empty vector. Contributions are accumulated by
// ascending source id and then in each source's edge insertion order, so
// results are bit-for-bit reproducible.
func (e *Engine) Compute(g *graph.Graph, iterations int) Vector {
	obs := e.observer()
	n := g.Len()
	obs.ComputeStarted(n, g.EdgeCount(), iterations)

	if n == 0 || iterations <= 0 {
		rank := Vector{}
		obs.ComputeFinished(rank)
		return rank
	}

	// Snapshot the out-edges once so each step is a flat scan.
	out := make([][]graph.ID, n)
	adj := g.Adjacency()
	for j := range out {
		out[j] = adj.Neighbors(graph.ID(j))
	}

	initial := 1.0 / float64(n)
	rank := make(Vector, n)
	for i := range rank {
		rank[i] = initial
	}
	obs.IterationDone(1, rank)

	next := make(Vector, n)
	for iter := 2; iter <= iterations; iter++ {
		switch e.opts.Variant {
		case VariantDamped:
			dampedStep(out, rank, next, e.opts.Damping)
		default:
			undampedStep(out, rank, next)
		}
		rank, next = next, rank
		obs.IterationDone(iter, rank)
	}

	obs.ComputeFinished(rank)
	return rank
}

func (e *Engine) observer() Observer {
	if e.opts.Observer == nil {
		return nopObserver{}
	}
	return e.opts.Observer
}

// undampedStep writes into next the mass each node receives from its
// in-neighbors. Dangling nodes send nothing, so their mass leaks.
func undampedStep(out [][]graph.ID, prev, next Vector) {
	clear(next)
	for j, dests := range out {
		if len(dests) == 0 {
			continue
		}
		share := prev[j] / float64(len(dests))
		for _, k := range dests {
			next[k] += share
		}
	}
}

// dampedStep computes
//
//	next[i] = (1-d)/N + d*Σ prev[j]/outdeg(j) + d*dangling/N
//
// where dangling is the total mass held by zero out-degree nodes.
func dampedStep(out [][]graph.ID, prev, next Vector, d float64) {
	nf := float64(len(prev))

	var dangling float64
	for j, dests := range out {
		if len(dests) == 0 {
			dangling += prev[j]
		}
	}

	base := (1.0 - d) / nf
	for i := range next {
		next[i] = base
	}
	for j, dests := range out {
		if len(dests) == 0 {
			continue
		}
		share := d * prev[j] / float64(len(dests))
		for _, k := range dests {
			next[k] += share
		}
	}

	danglingShare := d * dangling / nf
	for i := range next {
		next[i] += danglingShare
	}
}
