// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"fmt"
)

// TaskStrategy selects how the center task is chosen.
type TaskStrategy int

const (
	// TaskExhaustive picks the vertex with the least total communication
	// distance to all others, searching at most Config.TaskUpperLimit
	// candidates.
	TaskExhaustive TaskStrategy = iota
	// TaskGreedy picks the job's center hint if it has one, else task 0.
	TaskGreedy
)

// NodeStrategy selects how the center node is chosen.
type NodeStrategy int

const (
	// NodeExhaustive picks the free node whose surrounding free nodes are
	// most compact, searching at most Config.NodeUpperLimit candidates.
	NodeExhaustive NodeStrategy = iota
	// NodeGreedy picks the lowest-id free node.
	NodeGreedy
)

// NeighborOrder selects the order in which unplaced tasks are expanded.
type NeighborOrder int

const (
	// OrderSorted places next the unplaced task that communicates most with
	// the tasks placed so far.
	OrderSorted NeighborOrder = iota
	// OrderGreedy places the unplaced neighbors of each placed task in turn,
	// breadth first. Placed tasks wait in a FIFO queue, so the earliest placed
	// task is expanded next, not the most recent one.
	OrderGreedy
)

var taskStrategyNames = map[TaskStrategy]string{
	TaskExhaustive: "exhaustive",
	TaskGreedy:     "greedy",
}

var nodeStrategyNames = map[NodeStrategy]string{
	NodeExhaustive: "exhaustive",
	NodeGreedy:     "greedy",
}

var neighborOrderNames = map[NeighborOrder]string{
	OrderSorted: "sorted",
	OrderGreedy: "greedy",
}

func (s TaskStrategy) String() string {
	if name, ok := taskStrategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TaskStrategy(%d)", int(s))
}

func (s TaskStrategy) valid() bool {
	_, ok := taskStrategyNames[s]
	return ok
}

func (s TaskStrategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("unknown task strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *TaskStrategy) UnmarshalText(text []byte) error {
	for k, name := range taskStrategyNames {
		if name == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown task strategy %q", text)
}

func (s NodeStrategy) String() string {
	if name, ok := nodeStrategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("NodeStrategy(%d)", int(s))
}

func (s NodeStrategy) valid() bool {
	_, ok := nodeStrategyNames[s]
	return ok
}

func (s NodeStrategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("unknown node strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *NodeStrategy) UnmarshalText(text []byte) error {
	for k, name := range nodeStrategyNames {
		if name == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown node strategy %q", text)
}

func (o NeighborOrder) String() string {
	if name, ok := neighborOrderNames[o]; ok {
		return name
	}
	return fmt.Sprintf("NeighborOrder(%d)", int(o))
}

func (o NeighborOrder) valid() bool {
	_, ok := neighborOrderNames[o]
	return ok
}

func (o NeighborOrder) MarshalText() ([]byte, error) {
	if !o.valid() {
		return nil, fmt.Errorf("unknown neighbor order %d", int(o))
	}
	return []byte(o.String()), nil
}

func (o *NeighborOrder) UnmarshalText(text []byte) error {
	for k, name := range neighborOrderNames {
		if name == string(text) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown neighbor order %q", text)
}
