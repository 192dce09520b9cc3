// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package nearest places the tasks of a parallel job onto the free nodes of a
// mesh-connected machine so that tasks which communicate heavily end up close
// together.
//
// Placement is a bounded heuristic rather than an optimal mapping. The
// allocator first picks a center task, the one with the least total
// communication distance to every other task, and a center node, the free node
// with enough free nodes around it in the tightest radius. It then grows the
// placement outward from the center, putting each next task on a free node
// closest to the already-placed task it communicates with most. Ties between
// equally close nodes go to the one that minimizes the new task's
// communication cost, and then to the lowest node id, so placements are fully
// deterministic.
//
// An [Allocator] never modifies the machine it places onto. It works on a
// snapshot of the machine's free nodes and returns an [Allocation] that the
// caller commits, for instance with [mesh.Mesh.Occupy], once it decides to
// run the job.
//
// Strategies and search budgets are selected with a [Config]. Nodes that can
// run more than one task are supported by grouping tasks with a
// [graph.Partitioner] before placement.
package nearest

//go:generate go run -C internal/cmd/charts . ../../../bench.txt
