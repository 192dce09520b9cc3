// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package heap provides an indexed min-heap over small integer ids, built on
// the standard library heap. Each id appears at most once and its key can be
// lowered in place, which is what Dijkstra-style searches need.
package heap

import (
	"container/heap"
)

// Indexed is a min-heap of ids in the range [0, n) ordered by a float64 key.
// Equal keys are ordered by ascending id so that pops are deterministic.
//
// The zero value is not usable; create one with [New].
type Indexed struct {
	impl indexedImpl
}

type indexedImpl struct {
	ids  []int
	keys []float64
	// positions[id] is one more than the id's index in ids; zero means the
	// id is not in the heap.
	positions []int
}

// New returns an empty heap able to hold ids in the range [0, n).
func New(n int) *Indexed {
	if n < 0 {
		panic("heap size must be non-negative")
	}
	return &Indexed{
		impl: indexedImpl{
			keys:      make([]float64, n),
			positions: make([]int, n),
		},
	}
}

// Len returns the number of ids in the heap.
func (h *Indexed) Len() int {
	return len(h.impl.ids)
}

// Contains reports whether id is currently in the heap.
func (h *Indexed) Contains(id int) bool {
	return h.impl.positions[id] > 0
}

// Key returns the key last set for id. The result is meaningful only while
// the id is in the heap or after it was popped.
func (h *Indexed) Key(id int) float64 {
	return h.impl.keys[id]
}

// Push adds id with the given key, or updates the key if id is already
// present.
func (h *Indexed) Push(id int, key float64) {
	h.impl.keys[id] = key
	p := h.impl.positions[id]
	if p == 0 {
		heap.Push(&h.impl, id)
	} else {
		heap.Fix(&h.impl, p-1)
	}
}

// Pop removes and returns the id with the smallest key along with that key.
// Panics if the heap is empty.
func (h *Indexed) Pop() (int, float64) {
	if len(h.impl.ids) == 0 {
		panic("pop from empty heap")
	}
	id := heap.Pop(&h.impl).(int)
	return id, h.impl.keys[id]
}

// Peek returns the id with the smallest key without removing it. The boolean
// is false if the heap is empty.
func (h *Indexed) Peek() (int, float64, bool) {
	if len(h.impl.ids) == 0 {
		return 0, 0, false
	}
	id := h.impl.ids[0]
	return id, h.impl.keys[id], true
}

// Implementation of container/heap.Interface for indexedImpl

func (h *indexedImpl) Len() int {
	return len(h.ids)
}

func (h *indexedImpl) Less(i, j int) bool {
	a, b := h.ids[i], h.ids[j]
	if h.keys[a] != h.keys[b] {
		return h.keys[a] < h.keys[b]
	}
	return a < b
}

func (h *indexedImpl) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
	h.positions[h.ids[i]] = i + 1
	h.positions[h.ids[j]] = j + 1
}

func (h *indexedImpl) Push(x interface{}) {
	id := x.(int)
	h.positions[id] = len(h.ids) + 1
	h.ids = append(h.ids, id)
}

func (h *indexedImpl) Pop() interface{} {
	old := h.ids
	n := len(old)
	id := old[n-1]
	h.ids = old[0 : n-1]
	h.positions[id] = 0
	return id
}
