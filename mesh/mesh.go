// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package mesh models rectilinear mesh machines: nodes laid out on a 2-D or
// 3-D grid with Manhattan hop distance between them. The allocator only ever
// reads a machine through [Machine] and an immutable [Snapshot] of its
// free/occupied state; [Mesh] is the concrete machine whose occupancy callers
// commit after a successful placement.
package mesh

import (
	"fmt"
)

// Coord is the position of a node on the mesh grid.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Machine is the capability the allocator needs from a mesh machine. Node ids
// are in [0, NumNodes()).
type Machine interface {
	// NumNodes returns the total number of nodes.
	NumNodes() int
	// Coordinates returns the grid position of node.
	Coordinates(node int) Coord
	// NodeAt returns the node at c, or false if c lies outside the mesh.
	NodeAt(c Coord) (int, bool)
	// Distance returns the hop distance between two nodes.
	Distance(a, b int) int
	// MaxDistance returns the largest distance between any two nodes.
	MaxDistance() int
	// Snapshot captures the current free/occupied state.
	Snapshot() Snapshot
}

// Mesh is an X by Y by Z mesh that tracks which of its nodes are occupied.
// Node (x, y, z) has id x + X*(y + Y*z).
type Mesh struct {
	x, y, z   int
	free      []bool
	freeCount int
}

// New returns a fully free x by y by z mesh. Panics unless every dimension is
// at least one.
func New(x, y, z int) *Mesh {
	if x < 1 || y < 1 || z < 1 {
		panic(fmt.Sprintf("invalid mesh dimensions %dx%dx%d", x, y, z))
	}
	n := x * y * z
	free := make([]bool, n)
	for i := range free {
		free[i] = true
	}
	return &Mesh{x: x, y: y, z: z, free: free, freeCount: n}
}

// New2D returns a fully free x by y mesh.
func New2D(x, y int) *Mesh {
	return New(x, y, 1)
}

// Dims returns the mesh dimensions.
func (m *Mesh) Dims() (x, y, z int) {
	return m.x, m.y, m.z
}

func (m *Mesh) NumNodes() int {
	return len(m.free)
}

func (m *Mesh) Coordinates(node int) Coord {
	if node < 0 || node >= len(m.free) {
		panic(fmt.Sprintf("node %d out of range for mesh of %d nodes", node, len(m.free)))
	}
	return Coord{
		X: node % m.x,
		Y: (node / m.x) % m.y,
		Z: node / (m.x * m.y),
	}
}

func (m *Mesh) NodeAt(c Coord) (int, bool) {
	if c.X < 0 || c.X >= m.x || c.Y < 0 || c.Y >= m.y || c.Z < 0 || c.Z >= m.z {
		return 0, false
	}
	return c.X + m.x*(c.Y+m.y*c.Z), true
}

func (m *Mesh) Distance(a, b int) int {
	ca, cb := m.Coordinates(a), m.Coordinates(b)
	return abs(ca.X-cb.X) + abs(ca.Y-cb.Y) + abs(ca.Z-cb.Z)
}

func (m *Mesh) MaxDistance() int {
	return (m.x - 1) + (m.y - 1) + (m.z - 1)
}

func (m *Mesh) Snapshot() Snapshot {
	return NewSnapshot(m.free)
}

// IsFree reports whether node is currently free.
func (m *Mesh) IsFree(node int) bool {
	return m.free[node]
}

// FreeCount returns the number of free nodes.
func (m *Mesh) FreeCount() int {
	return m.freeCount
}

// Occupy marks nodes as occupied. Panics if any of them is already occupied,
// in which case no node is changed.
func (m *Mesh) Occupy(nodes ...int) {
	for i, n := range nodes {
		if !m.free[n] {
			panic(fmt.Sprintf("node %d is already occupied", n))
		}
		for _, prev := range nodes[:i] {
			if prev == n {
				panic(fmt.Sprintf("node %d is already occupied", n))
			}
		}
	}
	for _, n := range nodes {
		m.free[n] = false
	}
	m.freeCount -= len(nodes)
}

// Release marks nodes as free. Panics if any of them is already free, in
// which case no node is changed.
func (m *Mesh) Release(nodes ...int) {
	for i, n := range nodes {
		if m.free[n] {
			panic(fmt.Sprintf("node %d is already free", n))
		}
		for _, prev := range nodes[:i] {
			if prev == n {
				panic(fmt.Sprintf("node %d is already free", n))
			}
		}
	}
	for _, n := range nodes {
		m.free[n] = true
	}
	m.freeCount += len(nodes)
}

func (m *Mesh) String() string {
	return fmt.Sprintf("%dx%dx%d mesh (%d/%d free)", m.x, m.y, m.z, m.freeCount, len(m.free))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ Machine = (*Mesh)(nil)
