// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"fmt"
	"math"

	"github.com/petenewcomb/nearest-go/graph"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/petenewcomb/nearest-go/mesh"
)

// centerTask returns the vertex placement starts from.
func (a *Allocator) centerTask(g *graph.Graph, j job.Job, taskToVertex []int) int {
	if g.NumEdges() == 0 {
		return 0
	}
	switch a.config.TaskStrategy {
	case TaskGreedy:
		if h, ok := j.(job.CenterHinter); ok {
			if t, ok := h.CenterTask(); ok && t >= 0 && t < len(taskToVertex) {
				return taskToVertex[t]
			}
		}
		return 0
	case TaskExhaustive:
		return exhaustiveCenterTask(g, a.config.TaskUpperLimit)
	default:
		panic(fmt.Sprintf("unknown task strategy %d", int(a.config.TaskStrategy)))
	}
}

// exhaustiveCenterTask returns the vertex, among the first upperLimit, with
// the least total distance to all other vertices. Each search is cut short
// once it is worse than the best so far. Ties go to the lowest vertex.
func exhaustiveCenterTask(g *graph.Graph, upperLimit int) int {
	n := g.NumVertices()
	if upperLimit > 0 {
		n = min(n, upperLimit)
	}
	center := 0
	best := math.Inf(1)
	for v := range n {
		total, ok := graph.TotalDistance(g, v, best)
		if ok && total < best {
			best = total
			center = v
		}
	}
	return center
}

// centerNode returns the free node placement starts from, for a job that
// needs nodesNeeded nodes.
func (a *Allocator) centerNode(free mesh.FreeView, nodesNeeded int) (int, error) {
	switch a.config.NodeStrategy {
	case NodeGreedy:
		return greedyCenterNode(a.machine, free)
	case NodeExhaustive:
		return exhaustiveCenterNode(a.machine, free, nodesNeeded, a.config.NodeUpperLimit)
	default:
		panic(fmt.Sprintf("unknown node strategy %d", int(a.config.NodeStrategy)))
	}
}

func greedyCenterNode(m mesh.Machine, free mesh.FreeView) (int, error) {
	for n := range m.NumNodes() {
		if free.IsFree(n) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: machine has no free node", ErrNoCenterNode)
}

// exhaustiveCenterNode examines up to upperLimit free nodes in ascending id
// order and returns the one with nodesNeeded free nodes within the smallest
// radius. A candidate is abandoned once its radius reaches the best found so
// far, so ties go to the lowest id.
func exhaustiveCenterNode(m mesh.Machine, free mesh.FreeView, nodesNeeded, upperLimit int) (int, error) {
	best := -1
	radiusBudget := m.MaxDistance()
	candidates := 0
	for n := 0; n < m.NumNodes() && candidates < upperLimit; n++ {
		if !free.IsFree(n) {
			continue
		}
		candidates++
		count := 0
		for r := 0; r <= radiusBudget; r++ {
			count += mesh.CountFreeAt(m, free, n, r)
			if count >= nodesNeeded {
				best = n
				radiusBudget = r - 1
				break
			}
		}
		if best >= 0 && radiusBudget < 0 {
			// Nothing can beat radius zero.
			break
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: none of %d candidates has %d free nodes in reach",
			ErrNoCenterNode, candidates, nodesNeeded)
	}
	return best, nil
}
