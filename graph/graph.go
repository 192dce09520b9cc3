// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package graph builds and searches communication graphs. A [Graph] has one
// vertex per task, or per group of tasks that must share a machine node, and
// an undirected edge wherever two vertices exchange a positive volume of
// communication. Vertices and edges are stored in flat arrays and addressed by
// integer index.
package graph

import (
	"fmt"
	"slices"
	"sort"
)

// Edge is one direction of an undirected edge, as seen from its source
// vertex.
type Edge struct {
	To     int
	Weight int
}

// Length returns the search length of the edge, the reciprocal of its
// communication volume, so that heavily communicating vertices are close.
func (e Edge) Length() float64 {
	return 1 / float64(e.Weight)
}

// Graph is an immutable weighted, undirected communication graph.
//
// Adjacency is stored in compressed form: the edges of vertex v are
// edges[offsets[v]:offsets[v+1]], sorted by destination vertex.
type Graph struct {
	offsets []int
	edges   []Edge

	memberOffsets []int
	members       []int

	edgeCount   int
	totalLength float64
}

type edgeKey struct {
	a, b int
}

// newGraph assembles a graph from its member lists and a map of undirected
// edge weights keyed with a < b.
func newGraph(members [][]int, weights map[edgeKey]int) *Graph {
	n := len(members)
	g := &Graph{
		offsets:       make([]int, n+1),
		memberOffsets: make([]int, n+1),
		edgeCount:     len(weights),
	}

	for v, m := range members {
		g.memberOffsets[v+1] = g.memberOffsets[v] + len(m)
		g.members = append(g.members, m...)
	}

	degree := make([]int, n)
	for k, w := range weights {
		if w <= 0 {
			panic("edge weight must be positive")
		}
		degree[k.a]++
		degree[k.b]++
	}
	for v := range n {
		g.offsets[v+1] = g.offsets[v] + degree[v]
	}
	g.edges = make([]Edge, g.offsets[n])
	fill := slices.Clone(g.offsets[:n])
	for k, w := range weights {
		g.edges[fill[k.a]] = Edge{To: k.b, Weight: w}
		fill[k.a]++
		g.edges[fill[k.b]] = Edge{To: k.a, Weight: w}
		fill[k.b]++
	}
	for v := range n {
		span := g.edges[g.offsets[v]:g.offsets[v+1]]
		slices.SortFunc(span, func(x, y Edge) int {
			return x.To - y.To
		})
		// Summed in a fixed order so the penalty is reproducible.
		for _, e := range span {
			if e.To > v {
				g.totalLength += e.Length()
			}
		}
	}
	return g
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int {
	return len(g.offsets) - 1
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	return g.edgeCount
}

// Adjacent returns the edges leaving v in ascending order of destination.
// The returned slice must not be modified.
func (g *Graph) Adjacent(v int) []Edge {
	return g.edges[g.offsets[v]:g.offsets[v+1]]
}

// Weight returns the communication volume between a and b, or zero if they
// are not adjacent.
func (g *Graph) Weight(a, b int) int {
	adj := g.Adjacent(a)
	i := sort.Search(len(adj), func(i int) bool {
		return adj[i].To >= b
	})
	if i < len(adj) && adj[i].To == b {
		return adj[i].Weight
	}
	return 0
}

// WeightedDegree returns the total communication volume of v.
func (g *Graph) WeightedDegree(v int) int {
	total := 0
	for _, e := range g.Adjacent(v) {
		total += e.Weight
	}
	return total
}

// Members returns the tasks grouped into v in ascending order. The returned
// slice must not be modified.
func (g *Graph) Members(v int) []int {
	return g.members[g.memberOffsets[v]:g.memberOffsets[v+1]]
}

// UnreachablePenalty is a distance longer than any path in the graph. It is
// charged for each vertex a search cannot reach.
func (g *Graph) UnreachablePenalty() float64 {
	return g.totalLength + 1
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph(%d vertices, %d edges)", g.NumVertices(), g.NumEdges())
}
