// Package graph stores a directed multigraph over opaque string labels.
// Labels are mapped to dense integer ids in first-seen order and outgoing
// edges are kept per source id in insertion order. Duplicate edges and
// self-loops are recorded as given; nothing is ever removed.
package graph

import (
	"errors"
	"sort"
)

// ErrUnknownID is the panic value (wrapped) raised when an id that was never
// issued by a Registry is resolved back to a label.
var ErrUnknownID = errors.New("unknown node id")

// Graph is a label-addressed directed graph. It owns exactly one Registry
// and one Adjacency; independent graphs share no state.
type Graph struct {
	reg *Registry
	adj *Adjacency
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		reg: NewRegistry(),
		adj: NewAdjacency(),
	}
}

// AddEdge records a directed edge from → to, registering either label if it
// is new. The source label is registered first. Repeated calls add parallel
// edges.
func (g *Graph) AddEdge(from, to string) {
	f := g.reg.ID(from)
	t := g.reg.ID(to)
	g.adj.AddEdge(f, t)
}

// AddNode registers label as a vertex without adding any edge and returns
// its id. Isolated nodes still count toward Len.
func (g *Graph) AddNode(label string) ID {
	id := g.reg.ID(label)
	g.adj.AddNode(id)
	return id
}

// HasEdge reports whether at least one edge from → to exists. Unknown labels
// yield false.
func (g *Graph) HasEdge(from, to string) bool {
	f, ok := g.reg.Lookup(from)
	if !ok {
		return false
	}
	t, ok := g.reg.Lookup(to)
	if !ok {
		return false
	}
	return g.adj.HasEdge(f, t)
}

// OutDegree returns the number of outgoing edges of label, counting
// duplicates. Unknown labels have out-degree 0.
func (g *Graph) OutDegree(label string) int {
	id, ok := g.reg.Lookup(label)
	if !ok {
		return 0
	}
	return g.adj.OutDegree(id)
}

// Neighbors returns the destination labels of label's outgoing edges in
// insertion order.
func (g *Graph) Neighbors(label string) []string {
	id, ok := g.reg.Lookup(label)
	if !ok {
		return nil
	}
	ids := g.adj.Neighbors(id)
	out := make([]string, len(ids))
	for i, to := range ids {
		out[i] = g.reg.Label(to)
	}
	return out
}

// ID returns the id assigned to label, if any.
func (g *Graph) ID(label string) (ID, bool) {
	return g.reg.Lookup(label)
}

// Label returns the label of id. It panics for ids the graph never issued.
func (g *Graph) Label(id ID) string {
	return g.reg.Label(id)
}

// Labels returns every label, sorted alphabetically.
func (g *Graph) Labels() []string {
	labels := make([]string, g.reg.Len())
	copy(labels, g.reg.labels)
	sort.Strings(labels)
	return labels
}

// Len returns the number of distinct nodes.
func (g *Graph) Len() int {
	return g.reg.Len()
}

// EdgeCount returns the number of recorded edges, duplicates included.
func (g *Graph) EdgeCount() int {
	return g.adj.EdgeCount()
}

// Registry exposes the label↔id mapping.
func (g *Graph) Registry() *Registry {
	return g.reg
}

// Adjacency exposes the id-level edge storage.
func (g *Graph) Adjacency() *Adjacency {
	return g.adj
}
