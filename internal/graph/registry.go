package graph

import "fmt"

// ID is a dense node identifier in [0, N).
type ID int

// Registry is a bidirectional label↔ID mapping. IDs are handed out in
// first-seen order starting at 0 and are never reused or reassigned.
type Registry struct {
	ids    map[string]ID
	labels []string // labels[id] is the label of id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]ID)}
}

// ID returns the id of label, allocating the next sequential id when label
// has not been seen before.
func (r *Registry) ID(label string) ID {
	if id, ok := r.ids[label]; ok {
		return id
	}
	if r.ids == nil {
		r.ids = make(map[string]ID)
	}
	id := ID(len(r.labels))
	r.ids[label] = id
	r.labels = append(r.labels, label)
	return id
}

// Lookup returns the id of label without allocating one.
func (r *Registry) Lookup(label string) (ID, bool) {
	id, ok := r.ids[label]
	return id, ok
}

// Label returns the label registered for id. Asking for an id this registry
// never issued is a programming error and panics with ErrUnknownID.
func (r *Registry) Label(id ID) string {
	if id < 0 || int(id) >= len(r.labels) {
		panic(fmt.Errorf("%w: %d (registry holds %d)", ErrUnknownID, id, len(r.labels)))
	}
	return r.labels[id]
}

// Len returns the number of issued ids.
func (r *Registry) Len() int {
	return len(r.labels)
}
