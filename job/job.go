// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package job describes parallel jobs as a set of tasks and the volume of
// communication between them. The allocator consumes jobs through the [Job]
// interface so that simulators can supply their own representations; [Table]
// is a ready-made sparse implementation.
package job

import (
	"fmt"
	"slices"
)

// Job is the view of a parallel job needed to place it. Tasks are identified
// by index in [0, NumTasks()).
type Job interface {
	// NumTasks returns the number of tasks in the job.
	NumTasks() int
	// Volume returns the communication volume sent from task a to task b,
	// or zero if they do not communicate.
	Volume(a, b int) int
	// EachPair calls fn once for every ordered pair with non-zero volume, in
	// ascending (a, b) order.
	EachPair(fn func(a, b, volume int))
}

// CenterHinter is optionally implemented by jobs that know which task should
// seed the placement, for instance the root of a reduction tree.
type CenterHinter interface {
	CenterTask() (int, bool)
}

type pair struct {
	a, b int
}

// Table is a sparse, possibly directed communication table. The zero value
// is an empty job with no tasks.
type Table struct {
	numTasks int
	volumes  map[pair]int
	center   int
	hasHint  bool
}

// NewTable returns a table for a job of n tasks with no communication.
func NewTable(n int) *Table {
	if n < 0 {
		panic("task count must be non-negative")
	}
	return &Table{
		numTasks: n,
		volumes:  make(map[pair]int),
	}
}

func (t *Table) NumTasks() int {
	return t.numTasks
}

func (t *Table) checkTask(task int) {
	if task < 0 || task >= t.numTasks {
		panic(fmt.Sprintf("task %d out of range for job of %d tasks", task, t.numTasks))
	}
}

// Set records the volume sent from task a to task b, replacing any previous
// value. A zero volume removes the entry. Panics if either task is outside
// the job, if a == b, or if volume is negative.
func (t *Table) Set(a, b, volume int) *Table {
	t.checkTask(a)
	t.checkTask(b)
	if a == b {
		panic("a task cannot communicate with itself")
	}
	if volume < 0 {
		panic("communication volume must be non-negative")
	}
	if t.volumes == nil {
		t.volumes = make(map[pair]int)
	}
	if volume == 0 {
		delete(t.volumes, pair{a, b})
	} else {
		t.volumes[pair{a, b}] = volume
	}
	return t
}

// Add increases the volume sent from task a to task b.
func (t *Table) Add(a, b, volume int) *Table {
	return t.Set(a, b, t.Volume(a, b)+volume)
}

// Connect records the same volume in both directions.
func (t *Table) Connect(a, b, volume int) *Table {
	return t.Set(a, b, volume).Set(b, a, volume)
}

func (t *Table) Volume(a, b int) int {
	return t.volumes[pair{a, b}]
}

func (t *Table) EachPair(fn func(a, b, volume int)) {
	keys := make([]pair, 0, len(t.volumes))
	for p := range t.volumes {
		keys = append(keys, p)
	}
	slices.SortFunc(keys, func(x, y pair) int {
		if x.a != y.a {
			return x.a - y.a
		}
		return x.b - y.b
	})
	for _, p := range keys {
		fn(p.a, p.b, t.volumes[p])
	}
}

// PairCount returns the number of ordered pairs with non-zero volume.
func (t *Table) PairCount() int {
	return len(t.volumes)
}

// SetCenterTask records a hint for the task that should seed placement.
func (t *Table) SetCenterTask(task int) *Table {
	t.checkTask(task)
	t.center = task
	t.hasHint = true
	return t
}

func (t *Table) CenterTask() (int, bool) {
	return t.center, t.hasHint
}

var (
	_ Job          = (*Table)(nil)
	_ CenterHinter = (*Table)(nil)
)
