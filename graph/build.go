// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package graph

import (
	"fmt"
	"slices"

	"github.com/petenewcomb/nearest-go/job"
)

//go:generate mockgen -destination=mocks/mock_partitioner.go -package=mocks github.com/petenewcomb/nearest-go/graph Partitioner

// Partitioner groups the vertices of a graph into sets of at most
// maxGroupSize vertices, keeping heavily communicating vertices together.
// Every vertex must appear in exactly one group.
type Partitioner interface {
	Partition(g *Graph, maxGroupSize int) [][]int
}

// PartitionerFunc adapts a function to the [Partitioner] interface.
type PartitionerFunc func(g *Graph, maxGroupSize int) [][]int

func (f PartitionerFunc) Partition(g *Graph, maxGroupSize int) [][]int {
	return f(g, maxGroupSize)
}

// FromJob returns the task-level communication graph of j: one vertex per
// task and one edge per pair of tasks with non-zero volume in either
// direction, weighted by the sum of both directions.
//
// Panics if j reports a pair outside its task range or a negative volume.
func FromJob(j job.Job) *Graph {
	n := j.NumTasks()
	weights := make(map[edgeKey]int)
	j.EachPair(func(a, b, volume int) {
		if a < 0 || a >= n || b < 0 || b >= n {
			panic(fmt.Sprintf("communication pair (%d,%d) outside job of %d tasks", a, b, n))
		}
		if volume < 0 {
			panic(fmt.Sprintf("negative communication volume %d for pair (%d,%d)", volume, a, b))
		}
		if volume == 0 || a == b {
			return
		}
		weights[edgeKey{min(a, b), max(a, b)}] += volume
	})
	members := make([][]int, n)
	for t := range n {
		members[t] = []int{t}
	}
	return newGraph(members, weights)
}

// Build returns the communication graph used to place j on nodes that each
// hold tasksPerNode tasks, together with the vertex of every task.
//
// With one task per node the graph is [FromJob]. Otherwise tasks are grouped
// by p, or by [GreedyPartitioner] if p is nil, and each group becomes one
// vertex whose edges carry the communication crossing group boundaries.
// Vertices are ordered by their lowest task.
func Build(j job.Job, tasksPerNode int, p Partitioner) (*Graph, []int) {
	if tasksPerNode < 1 {
		panic("tasks per node must be at least one")
	}
	fine := FromJob(j)
	n := fine.NumVertices()
	if tasksPerNode == 1 {
		taskToVertex := make([]int, n)
		for t := range taskToVertex {
			taskToVertex[t] = t
		}
		return fine, taskToVertex
	}

	if p == nil {
		p = GreedyPartitioner{}
	}
	groups := normalizeGroups(p.Partition(fine, tasksPerNode), n, tasksPerNode)
	taskToVertex := make([]int, n)
	for v, g := range groups {
		for _, t := range g {
			taskToVertex[t] = v
		}
	}
	return Coarsen(fine, groups, taskToVertex), taskToVertex
}

// Coarsen merges the vertices of fine into the given groups. taskToVertex
// maps each fine vertex to its group index.
func Coarsen(fine *Graph, groups [][]int, taskToVertex []int) *Graph {
	weights := make(map[edgeKey]int)
	for a := range fine.NumVertices() {
		for _, e := range fine.Adjacent(a) {
			if e.To < a {
				continue
			}
			ga, gb := taskToVertex[a], taskToVertex[e.To]
			if ga == gb {
				continue
			}
			weights[edgeKey{min(ga, gb), max(ga, gb)}] += e.Weight
		}
	}
	return newGraph(groups, weights)
}

// normalizeGroups validates that groups partition [0, n) into sets of at most
// maxSize and returns a sorted copy. Panics on violation, since a broken
// partition means the partitioner breached its contract.
func normalizeGroups(groups [][]int, n, maxSize int) [][]int {
	seen := make([]bool, n)
	out := make([][]int, 0, len(groups))
	count := 0
	for i, g := range groups {
		if len(g) == 0 {
			panic(fmt.Sprintf("invalid partition: group %d is empty", i))
		}
		if len(g) > maxSize {
			panic(fmt.Sprintf("invalid partition: group %d has %d members, limit is %d", i, len(g), maxSize))
		}
		for _, v := range g {
			if v < 0 || v >= n {
				panic(fmt.Sprintf("invalid partition: vertex %d out of range", v))
			}
			if seen[v] {
				panic(fmt.Sprintf("invalid partition: vertex %d appears twice", v))
			}
			seen[v] = true
			count++
		}
		sorted := slices.Clone(g)
		slices.Sort(sorted)
		out = append(out, sorted)
	}
	if count != n {
		panic(fmt.Sprintf("invalid partition: covers %d of %d vertices", count, n))
	}
	slices.SortFunc(out, func(a, b []int) int {
		return a[0] - b[0]
	})
	return out
}
