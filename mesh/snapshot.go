// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package mesh

import (
	"slices"
)

// FreeView is read access to a free/occupied bitmap.
type FreeView interface {
	IsFree(node int) bool
	FreeCount() int
}

// Snapshot is an immutable copy of a machine's free/occupied state. It has no
// mutators; a search that needs to claim nodes takes a private [FreeSet] from
// [Snapshot.Working].
type Snapshot struct {
	free      []bool
	freeCount int
}

// NewSnapshot copies free into a new snapshot.
func NewSnapshot(free []bool) Snapshot {
	s := Snapshot{free: slices.Clone(free)}
	for _, f := range free {
		if f {
			s.freeCount++
		}
	}
	return s
}

// Len returns the number of nodes covered by the snapshot.
func (s Snapshot) Len() int {
	return len(s.free)
}

func (s Snapshot) IsFree(node int) bool {
	return s.free[node]
}

func (s Snapshot) FreeCount() int {
	return s.freeCount
}

// FreeNodes returns the free node ids in ascending order.
func (s Snapshot) FreeNodes() []int {
	nodes := make([]int, 0, s.freeCount)
	for n, f := range s.free {
		if f {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Equal reports whether two snapshots record the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return slices.Equal(s.free, o.free)
}

// Working returns a mutable copy of the snapshot. Changes to it never reach
// the snapshot or the machine it came from.
func (s Snapshot) Working() *FreeSet {
	return &FreeSet{
		free:      slices.Clone(s.free),
		freeCount: s.freeCount,
	}
}

// FreeSet is a private, mutable free/occupied bitmap used while searching for
// a placement.
type FreeSet struct {
	free      []bool
	freeCount int
}

func (f *FreeSet) IsFree(node int) bool {
	return f.free[node]
}

func (f *FreeSet) FreeCount() int {
	return f.freeCount
}

// Claim marks node as taken. Panics if it is not free.
func (f *FreeSet) Claim(node int) {
	if !f.free[node] {
		panic("claimed node is not free")
	}
	f.free[node] = false
	f.freeCount--
}

var (
	_ FreeView = Snapshot{}
	_ FreeView = (*FreeSet)(nil)
	_ FreeView = (*Mesh)(nil)
)
