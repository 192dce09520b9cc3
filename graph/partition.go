// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package graph

import (
	"cmp"
	"slices"

	"github.com/addrummond/heap"
)

// GreedyPartitioner groups vertices without an external partitioning
// library. It repeatedly merges the two groups that exchange the most
// communication, as long as the merged group fits, and then packs the
// remaining groups first-fit by decreasing size to use as few groups as
// possible. Ties are broken toward lower vertex ids, so the result is
// deterministic.
type GreedyPartitioner struct{}

type mergeCandidate struct {
	Weight   int
	A, B     int
	VersionA int
	VersionB int
}

// Heaviest first; the heap is a min-heap so the comparison is reversed.
func (x *mergeCandidate) Cmp(y *mergeCandidate) int {
	if c := cmp.Compare(y.Weight, x.Weight); c != 0 {
		return c
	}
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}
	return cmp.Compare(x.B, y.B)
}

func (GreedyPartitioner) Partition(g *Graph, maxGroupSize int) [][]int {
	n := g.NumVertices()
	if maxGroupSize < 1 {
		panic("group size limit must be at least one")
	}

	members := make([][]int, n)
	alive := make([]bool, n)
	version := make([]int, n)
	links := make([]map[int]int, n)
	for v := range n {
		members[v] = []int{v}
		alive[v] = true
		links[v] = make(map[int]int)
		for _, e := range g.Adjacent(v) {
			links[v][e.To] = e.Weight
		}
	}

	var candidates heap.Heap[mergeCandidate, heap.Min]
	push := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		heap.PushOrderable(&candidates, mergeCandidate{
			Weight:   links[a][b],
			A:        a,
			B:        b,
			VersionA: version[a],
			VersionB: version[b],
		})
	}
	for v := range n {
		for _, e := range g.Adjacent(v) {
			if e.To > v {
				push(v, e.To)
			}
		}
	}

	for {
		c, ok := heap.PopOrderable(&candidates)
		if !ok {
			break
		}
		a, b := c.A, c.B
		if !alive[a] || !alive[b] || version[a] != c.VersionA || version[b] != c.VersionB {
			continue
		}
		if len(members[a])+len(members[b]) > maxGroupSize {
			continue
		}

		// Merge b into a; a is the lower id and survives.
		members[a] = append(members[a], members[b]...)
		members[b] = nil
		alive[b] = false
		delete(links[a], b)
		for other, w := range links[b] {
			if other == a {
				continue
			}
			links[a][other] += w
			delete(links[other], b)
			links[other][a] += w
		}
		links[b] = nil
		version[a]++

		neighbors := make([]int, 0, len(links[a]))
		for other := range links[a] {
			neighbors = append(neighbors, other)
		}
		slices.Sort(neighbors)
		for _, other := range neighbors {
			push(a, other)
		}
	}

	var groups [][]int
	for v := range n {
		if alive[v] {
			groups = append(groups, members[v])
		}
	}
	return packGroups(groups, maxGroupSize)
}

// packGroups combines groups first-fit by decreasing size. Groups of equal
// size keep their relative order.
func packGroups(groups [][]int, maxGroupSize int) [][]int {
	slices.SortStableFunc(groups, func(a, b []int) int {
		return len(b) - len(a)
	})
	var bins [][]int
	for _, grp := range groups {
		placed := false
		for i := range bins {
			if len(bins[i])+len(grp) <= maxGroupSize {
				bins[i] = append(bins[i], grp...)
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, slices.Clone(grp))
		}
	}
	for _, bin := range bins {
		slices.Sort(bin)
	}
	return bins
}
