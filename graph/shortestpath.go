// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package graph

import (
	"math"

	"github.com/petenewcomb/nearest-go/internal/heap"
)

// walk runs Dijkstra's algorithm from src using [Edge.Length] as the edge
// length, calling visit for each vertex as its distance becomes final, in
// nondecreasing order of distance. Paths longer than limit are not explored.
// The walk stops early if visit returns false.
func walk(g *Graph, src int, limit float64, visit func(v int, d float64) bool) {
	n := g.NumVertices()
	if src < 0 || src >= n {
		panic("source vertex out of range")
	}
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	settled := make([]bool, n)
	frontier := heap.New(n)

	dist[src] = 0
	frontier.Push(src, 0)
	for frontier.Len() > 0 {
		v, d := frontier.Pop()
		settled[v] = true
		if !visit(v, d) {
			return
		}
		for _, e := range g.Adjacent(v) {
			if settled[e.To] {
				continue
			}
			nd := d + e.Length()
			if nd > limit || nd >= dist[e.To] {
				continue
			}
			dist[e.To] = nd
			frontier.Push(e.To, nd)
		}
	}
}

// ShortestDistances returns the length of the shortest path from src to every
// vertex that can be reached within limit, keyed by vertex. Vertices farther
// than limit are absent rather than present with an infinite distance.
func ShortestDistances(g *Graph, src int, limit float64) map[int]float64 {
	out := make(map[int]float64)
	if limit < 0 {
		return out
	}
	walk(g, src, limit, func(v int, d float64) bool {
		out[v] = d
		return true
	})
	return out
}

// TotalDistance returns the sum of shortest path lengths from src to every
// other vertex, charging [Graph.UnreachablePenalty] for each vertex src cannot
// reach. It gives up as soon as the running sum exceeds budget, in which case
// it returns false and the partial sum.
func TotalDistance(g *Graph, src int, budget float64) (float64, bool) {
	total := 0.0
	reached := 0
	walk(g, src, math.Inf(1), func(v int, d float64) bool {
		total += d
		reached++
		return total <= budget
	})
	if total > budget {
		return total, false
	}
	total += float64(g.NumVertices()-reached) * g.UnreachablePenalty()
	return total, total <= budget
}
