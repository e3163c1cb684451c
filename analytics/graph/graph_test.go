// Package graph
package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTwoCliques() *Undirected {
	g := NewUndirected()
	g.SetEdge("a", "b", 1)
	g.SetEdge("b", "c", 1)
	g.SetEdge("a", "c", 1)
	g.SetEdge("d", "e", 1)
	g.SetEdge("e", "f", 1)
	g.SetEdge("d", "f", 1)
	return g
}

func TestUndirectedCommunities(t *testing.T) {
	g := buildTwoCliques()
	comms := g.Communities(1.0, 1)
	assert.Len(t, comms, 2)
	assert.Equal(t, []string{"a", "b", "c"}, comms[0])
	assert.Equal(t, []string{"d", "e", "f"}, comms[1])
}

func TestUndirectedCommunitiesDeterministic(t *testing.T) {
	first := buildTwoCliques().Communities(1.0, 1)
	second := buildTwoCliques().Communities(1.0, 1)
	assert.Equal(t, first, second)
}

func TestUndirectedWeight(t *testing.T) {
	g := NewUndirected()
	g.SetEdge("a", "b", 0.8)
	w, ok := g.Weight("a", "b")
	assert.True(t, ok)
	assert.Equal(t, 0.8, w)
	w, ok = g.Weight("b", "a")
	assert.True(t, ok)
	assert.Equal(t, 0.8, w)
	_, ok = g.Weight("a", "c")
	assert.False(t, ok)
}

func TestDirectedEdgeReplacement(t *testing.T) {
	g := NewDirected()
	g.SetEdge("a", "b", 1)
	g.SetEdge("a", "b", 5)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 5.0, g.IncomingWeight("b"))
	assert.Equal(t, 1, g.InDegree("b"))
}

func TestDirectedSuccessorsSorted(t *testing.T) {
	g := NewDirected()
	g.SetEdge("x", "c", 1)
	g.SetEdge("x", "a", 1)
	g.SetEdge("x", "b", 1)
	assert.Equal(t, []string{"a", "b", "c"}, g.Successors("x"))
}

func TestPageRankChain(t *testing.T) {
	g := NewDirected()
	g.SetEdge("a", "b", 1)
	g.SetEdge("b", "c", 1)
	ranks := g.PageRank(0.85, 1e-9)

	var sum float64
	for _, r := range ranks {
		sum += r
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
	assert.True(t, ranks["c"] > ranks["a"])
}

func TestPageRankRespectsWeights(t *testing.T) {
	g := NewDirected()
	g.SetEdge("src", "heavy", 9)
	g.SetEdge("src", "light", 1)
	ranks := g.PageRank(0.85, 1e-9)
	assert.True(t, ranks["heavy"] > ranks["light"])
}

func TestPageRankEmptyGraph(t *testing.T) {
	g := NewDirected()
	assert.Empty(t, g.PageRank(0.85, 1e-6))
	assert.Empty(t, g.Authority(1e-8))
}

func TestAuthorityStar(t *testing.T) {
	g := NewDirected()
	g.SetEdge("a", "hub", 1)
	g.SetEdge("b", "hub", 1)
	g.SetEdge("c", "hub", 1)
	auth := g.Authority(1e-8)
	for _, addr := range []string{"a", "b", "c"} {
		assert.True(t, auth["hub"] > auth[addr])
	}
}

func TestInDegreeCentrality(t *testing.T) {
	g := NewDirected()
	g.SetEdge("a", "c", 1)
	g.SetEdge("b", "c", 1)
	cent := g.InDegreeCentrality()
	assert.InDelta(t, 1.0, cent["c"], 1e-12)
	assert.Equal(t, 0.0, cent["a"])
	assert.False(t, math.IsNaN(cent["c"]))
}
