// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"slices"

	"github.com/petenewcomb/nearest-go/graph"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/petenewcomb/nearest-go/mesh"
)

// An Allocation is a complete placement of a job.
type Allocation struct {
	// TaskNodes maps each task to its node.
	TaskNodes []int
	// TaskSlots gives each task's position among the tasks sharing its node,
	// which is always zero with one task per node.
	TaskSlots []int
	// VertexNodes maps each communication graph vertex to its node. With one
	// task per node, vertices and tasks coincide.
	VertexNodes []int
	// CenterTask is the lowest task of the vertex placed first, or -1 for an
	// empty job.
	CenterTask int
	// CenterNode is the node CenterTask was placed on, or -1 for an empty
	// job.
	CenterNode int
	// Cost is the sum over communicating task pairs of volume times hop
	// distance.
	Cost int
}

func newAllocation(m mesh.Machine, j job.Job, g *graph.Graph, taskToVertex, vertexNode []int, centerVertex, centerNode int) *Allocation {
	n := len(taskToVertex)
	alloc := &Allocation{
		TaskNodes:   make([]int, n),
		TaskSlots:   make([]int, n),
		VertexNodes: slices.Clone(vertexNode),
		CenterTask:  g.Members(centerVertex)[0],
		CenterNode:  centerNode,
	}
	for v := range g.NumVertices() {
		for slot, t := range g.Members(v) {
			alloc.TaskNodes[t] = vertexNode[v]
			alloc.TaskSlots[t] = slot
		}
	}
	alloc.Cost = Cost(m, j, alloc.TaskNodes)
	return alloc
}

// Nodes returns the distinct nodes used by the allocation in ascending order.
func (a *Allocation) Nodes() []int {
	nodes := slices.Clone(a.VertexNodes)
	slices.Sort(nodes)
	return nodes
}

// Cost returns the sum over communicating task pairs of j of volume times
// the hop distance between their nodes.
func Cost(m mesh.Machine, j job.Job, taskNodes []int) int {
	cost := 0
	j.EachPair(func(a, b, volume int) {
		cost += volume * m.Distance(taskNodes[a], taskNodes[b])
	})
	return cost
}
