package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	g := New()
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.Labels())
}

func TestAddEdge(t *testing.T) {
	t.Parallel()

	t.Run("single directed edge", func(t *testing.T) {
		t.Parallel()
		g := New()
		g.AddEdge("google.com", "gmail.com")

		assert.True(t, g.HasEdge("google.com", "gmail.com"))
		assert.False(t, g.HasEdge("gmail.com", "google.com"))
		assert.Equal(t, 2, g.Len())
		assert.Equal(t, 1, g.EdgeCount())
	})

	t.Run("duplicate edges are kept", func(t *testing.T) {
		t.Parallel()
		g := New()
		g.AddEdge("A", "B")
		g.AddEdge("A", "B")

		assert.Equal(t, 2, g.OutDegree("A"))
		assert.Equal(t, []string{"B", "B"}, g.Neighbors("A"))
		assert.Equal(t, 2, g.EdgeCount())
	})

	t.Run("self loop", func(t *testing.T) {
		t.Parallel()
		g := New()
		g.AddEdge("X", "X")

		assert.True(t, g.HasEdge("X", "X"))
		assert.Equal(t, 1, g.OutDegree("X"))
		assert.Equal(t, 1, g.Len())
	})

	t.Run("source registered before destination", func(t *testing.T) {
		t.Parallel()
		g := New()
		g.AddEdge("C", "A")
		g.AddEdge("A", "B")

		for label, want := range map[string]ID{"C": 0, "A": 1, "B": 2} {
			id, ok := g.ID(label)
			require.True(t, ok, label)
			assert.Equal(t, want, id, label)
		}
	})

	t.Run("neighbors keep insertion order", func(t *testing.T) {
		t.Parallel()
		g := New()
		g.AddEdge("hub", "z")
		g.AddEdge("hub", "a")
		g.AddEdge("hub", "m")

		assert.Equal(t, []string{"z", "a", "m"}, g.Neighbors("hub"))
	})
}

func TestAddNode(t *testing.T) {
	t.Parallel()

	t.Run("isolated node", func(t *testing.T) {
		t.Parallel()
		g := New()
		g.AddNode("maps.com")

		assert.Equal(t, 1, g.Len())
		assert.Equal(t, 0, g.OutDegree("maps.com"))
		assert.False(t, g.HasEdge("maps.com", "google.com"))
		assert.Empty(t, g.Neighbors("maps.com"))
	})

	t.Run("existing node keeps its edges", func(t *testing.T) {
		t.Parallel()
		g := New()
		g.AddEdge("a", "b")
		id := g.AddNode("a")

		assert.Equal(t, ID(0), id)
		assert.Equal(t, 1, g.OutDegree("a"))
		assert.Equal(t, 2, g.Len())
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		g := New()
		first := g.AddNode("lonely.com")
		second := g.AddNode("lonely.com")

		assert.Equal(t, first, second)
		assert.Equal(t, 1, g.Len())
		assert.Equal(t, 0, g.EdgeCount())
	})
}

func TestUnknownLabels(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("a", "b")

	assert.False(t, g.HasEdge("a", "nope"))
	assert.False(t, g.HasEdge("nope", "a"))
	assert.Equal(t, 0, g.OutDegree("nope"))
	assert.Nil(t, g.Neighbors("nope"))

	_, ok := g.ID("nope")
	assert.False(t, ok)
	assert.Equal(t, 2, g.Len(), "queries must not register labels")
}

func TestLabels(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("c.com", "a.com")
	g.AddNode("b.com")

	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, g.Labels())
	assert.Equal(t, "c.com", g.Label(0))
}

func TestLabelPanicsOnUnknownID(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("only")

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, errors.Is(err, ErrUnknownID))
	}()
	g.Label(5)
}
