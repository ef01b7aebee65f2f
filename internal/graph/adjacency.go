package graph

import "slices"

// Adjacency is sparse outgoing-edge storage keyed by source id. A missing
// key means out-degree 0.
type Adjacency struct {
	// out maps source id → destinations in insertion order.
	out   map[ID][]ID
	edges int
}

// NewAdjacency creates empty edge storage.
func NewAdjacency() *Adjacency {
	return &Adjacency{out: make(map[ID][]ID)}
}

// AddEdge appends to to from's neighbor sequence. Duplicates and self-loops
// are kept.
func (a *Adjacency) AddEdge(from, to ID) {
	a.out[from] = append(a.out[from], to)
	a.edges++
}

// AddNode registers id as a source with no outgoing edges. It is a no-op
// when id already has an entry.
func (a *Adjacency) AddNode(id ID) {
	if _, ok := a.out[id]; !ok {
		a.out[id] = nil
	}
}

// Has reports whether id has an entry, with or without edges.
func (a *Adjacency) Has(id ID) bool {
	_, ok := a.out[id]
	return ok
}

// HasEdge reports whether from has at least one edge to to.
func (a *Adjacency) HasEdge(from, to ID) bool {
	return slices.Contains(a.out[from], to)
}

// OutDegree returns the length of id's neighbor sequence.
func (a *Adjacency) OutDegree(id ID) int {
	return len(a.out[id])
}

// Neighbors returns a copy of id's destinations in insertion order.
func (a *Adjacency) Neighbors(id ID) []ID {
	return slices.Clone(a.out[id])
}

// Sources returns every id with an entry, ascending.
func (a *Adjacency) Sources() []ID {
	ids := make([]ID, 0, len(a.out))
	for id := range a.out {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EdgeCount returns the total number of edges, duplicates included.
func (a *Adjacency) EdgeCount() int {
	return a.edges
}
