// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"cmp"
	"fmt"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
	"github.com/petenewcomb/nearest-go/graph"
	"github.com/petenewcomb/nearest-go/mesh"
)

// frontierEntry is a sorted-order frontier candidate. Entries are never
// removed when a vertex's affinity changes; a fresh one is pushed instead and
// the old one is recognized as stale when popped.
type frontierEntry struct {
	Affinity int
	Vertex   int
}

// Highest affinity first; the heap is a min-heap so the comparison is
// reversed.
func (x *frontierEntry) Cmp(y *frontierEntry) int {
	if c := cmp.Compare(y.Affinity, x.Affinity); c != 0 {
		return c
	}
	return cmp.Compare(x.Vertex, y.Vertex)
}

// attempt is the working state of a single placement.
type attempt struct {
	machine mesh.Machine
	g       *graph.Graph
	free    *mesh.FreeSet
	order   NeighborOrder

	centerNode int
	vertexNode []int // -1 until placed
	placed     int
	// affinity is the total edge weight between each vertex and the placed
	// set.
	affinity []int

	queue    deque.Deque[int]
	frontier heap.Heap[frontierEntry, heap.Min]

	// nextSeed is a lower bound on the lowest unplaced vertex.
	nextSeed int
}

func newAttempt(m mesh.Machine, g *graph.Graph, free *mesh.FreeSet, order NeighborOrder) *attempt {
	n := g.NumVertices()
	at := &attempt{
		machine:    m,
		g:          g,
		free:       free,
		order:      order,
		centerNode: -1,
		vertexNode: make([]int, n),
		affinity:   make([]int, n),
	}
	for v := range at.vertexNode {
		at.vertexNode[v] = -1
	}
	return at
}

func (at *attempt) isPlaced(v int) bool {
	return at.vertexNode[v] >= 0
}

// place assigns v to node and makes v's neighbors eligible for expansion.
func (at *attempt) place(v, node int) {
	if at.isPlaced(v) {
		panic(fmt.Sprintf("vertex %d is already placed", v))
	}
	at.free.Claim(node)
	at.vertexNode[v] = node
	at.placed++

	switch at.order {
	case OrderGreedy:
		at.queue.PushBack(v)
	case OrderSorted:
		for _, e := range at.g.Adjacent(v) {
			if at.isPlaced(e.To) {
				continue
			}
			at.affinity[e.To] += e.Weight
			heap.PushOrderable(&at.frontier, frontierEntry{
				Affinity: at.affinity[e.To],
				Vertex:   e.To,
			})
		}
	default:
		panic(fmt.Sprintf("unknown neighbor order %d", int(at.order)))
	}
}

// expand places every remaining vertex. It returns an error wrapping
// [ErrNoFreeNode] if the free nodes run out first.
func (at *attempt) expand() error {
	for at.placed < at.g.NumVertices() {
		var err error
		switch at.order {
		case OrderGreedy:
			err = at.expandGreedy()
		case OrderSorted:
			err = at.expandSorted()
		}
		if err != nil {
			return err
		}
		if at.placed < at.g.NumVertices() {
			if err := at.seed(); err != nil {
				return err
			}
		}
	}
	return nil
}

// expandGreedy places vertices breadth first, visiting each placed vertex's
// neighbors in adjacency order.
func (at *attempt) expandGreedy() error {
	for at.queue.Len() > 0 {
		u := at.queue.PopFront()
		for _, e := range at.g.Adjacent(u) {
			if at.isPlaced(e.To) {
				continue
			}
			if err := at.placeNear(e.To); err != nil {
				return err
			}
		}
	}
	return nil
}

// expandSorted always places the frontier vertex most strongly connected to
// the placed set.
func (at *attempt) expandSorted() error {
	for {
		entry, ok := heap.PopOrderable(&at.frontier)
		if !ok {
			return nil
		}
		v := entry.Vertex
		if at.isPlaced(v) || entry.Affinity != at.affinity[v] {
			continue
		}
		if err := at.placeNear(v); err != nil {
			return err
		}
	}
}

// seed starts a new connected component by placing its lowest vertex as close
// to the center node as possible.
func (at *attempt) seed() error {
	for at.isPlaced(at.nextSeed) {
		at.nextSeed++
	}
	node, ok := mesh.NearestFree(at.machine, at.free, at.centerNode)
	if !ok {
		return fmt.Errorf("%w: %d of %d vertices placed", ErrNoFreeNode, at.placed, at.g.NumVertices())
	}
	at.place(at.nextSeed, node)
	return nil
}

// placeNear places v on a free node closest to its anchor.
func (at *attempt) placeNear(v int) error {
	anchor := at.anchor(v)
	candidates, _ := mesh.ClosestFree(at.machine, at.free, at.vertexNode[anchor])
	switch len(candidates) {
	case 0:
		return fmt.Errorf("%w: %d of %d vertices placed", ErrNoFreeNode, at.placed, at.g.NumVertices())
	case 1:
		at.place(v, candidates[0])
	default:
		at.place(v, at.tieBreak(v, candidates))
	}
	return nil
}

// anchor returns v's placed neighbor with the heaviest edge, preferring the
// lowest id among equals. Only called for vertices reached from the placed
// set, so one always exists.
func (at *attempt) anchor(v int) int {
	best, bestWeight := -1, 0
	for _, e := range at.g.Adjacent(v) {
		if at.isPlaced(e.To) && e.Weight > bestWeight {
			best, bestWeight = e.To, e.Weight
		}
	}
	if best < 0 {
		panic(fmt.Sprintf("vertex %d has no placed neighbor", v))
	}
	return best
}

// tieBreak returns the candidate minimizing v's communication cost to its
// placed neighbors, scored as the sum of edge weight times mesh distance. This
// is the same measure as Allocation.Cost, not a sum of 1/weight path lengths.
// Candidates are in ascending id order, so the lowest id wins among equals.
func (at *attempt) tieBreak(v int, candidates []int) int {
	best, bestScore := candidates[0], -1
	for _, c := range candidates {
		score := 0
		for _, e := range at.g.Adjacent(v) {
			if u := at.vertexNode[e.To]; u >= 0 {
				score += e.Weight * at.machine.Distance(c, u)
			}
		}
		if bestScore < 0 || score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
