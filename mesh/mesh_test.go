// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package mesh_test

import (
	"testing"

	"github.com/petenewcomb/nearest-go/mesh"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMeshCoordinates(t *testing.T) {
	chk := require.New(t)
	m := mesh.New(4, 3, 2)
	chk.Equal(24, m.NumNodes())
	chk.Equal(3+2+1, m.MaxDistance())

	for n := range m.NumNodes() {
		c := m.Coordinates(n)
		back, ok := m.NodeAt(c)
		chk.True(ok)
		chk.Equal(n, back)
	}
	chk.Equal(mesh.Coord{X: 1, Y: 2, Z: 1}, m.Coordinates(1+4*(2+3*1)))
	_, ok := m.NodeAt(mesh.Coord{X: 4})
	chk.False(ok)
	_, ok = m.NodeAt(mesh.Coord{Y: -1})
	chk.False(ok)

	chk.Equal(0, m.Distance(5, 5))
	chk.Equal(6, m.Distance(0, 23))
	chk.PanicsWithValue("node 24 out of range for mesh of 24 nodes", func() {
		m.Coordinates(24)
	})
}

func TestNewMeshRejectsEmptyDimensions(t *testing.T) {
	require.PanicsWithValue(t, "invalid mesh dimensions 0x3x1", func() {
		mesh.New2D(0, 3)
	})
}

func TestOccupyAndRelease(t *testing.T) {
	chk := require.New(t)
	m := mesh.New2D(3, 3)
	m.Occupy(0, 4)
	chk.Equal(7, m.FreeCount())
	chk.False(m.IsFree(4))

	// A failed occupy leaves the mesh untouched
	before := m.Snapshot()
	chk.PanicsWithValue("node 4 is already occupied", func() {
		m.Occupy(1, 4)
	})
	chk.PanicsWithValue("node 2 is already occupied", func() {
		m.Occupy(2, 2)
	})
	chk.True(before.Equal(m.Snapshot()))

	m.Release(4)
	chk.Equal(8, m.FreeCount())
	chk.PanicsWithValue("node 4 is already free", func() {
		m.Release(4)
	})
	chk.Equal("3x3x1 mesh (8/9 free)", m.String())
}

func TestSnapshotIsIsolated(t *testing.T) {
	chk := require.New(t)
	m := mesh.New2D(2, 2)
	snap := m.Snapshot()

	m.Occupy(1)
	chk.True(snap.IsFree(1))
	chk.Equal(4, snap.FreeCount())

	w := snap.Working()
	w.Claim(0)
	chk.False(w.IsFree(0))
	chk.Equal(3, w.FreeCount())
	chk.True(snap.IsFree(0))
	chk.True(m.IsFree(0))
	chk.Panics(func() { w.Claim(0) })

	chk.Equal([]int{0, 1, 2, 3}, snap.FreeNodes())
	chk.Equal([]int{0, 2, 3}, m.Snapshot().FreeNodes())
}

func TestNodesAtDistance(t *testing.T) {
	chk := require.New(t)
	m := mesh.New2D(5, 5)
	center := 12 // (2,2)

	chk.Equal([]int{center}, mesh.NodesAtDistance(m, center, 0))
	chk.Equal([]int{7, 11, 13, 17}, mesh.NodesAtDistance(m, center, 1))
	chk.Len(mesh.NodesAtDistance(m, center, 2), 8)
	chk.Empty(mesh.NodesAtDistance(m, center, -1))

	// Rings are clipped at the mesh boundary
	chk.Equal([]int{1, 5}, mesh.NodesAtDistance(m, 0, 1))
	chk.Equal([]int{24}, mesh.NodesAtDistance(m, 0, 8))
	chk.Empty(mesh.NodesAtDistance(m, 0, 9))
}

func TestNodesAtDistance3D(t *testing.T) {
	chk := require.New(t)
	m := mesh.New(5, 5, 5)
	center, ok := m.NodeAt(mesh.Coord{X: 2, Y: 2, Z: 2})
	chk.True(ok)

	// Octahedral shell of radius d has 4d²+2 points
	chk.Len(mesh.NodesAtDistance(m, center, 1), 6)
	chk.Len(mesh.NodesAtDistance(m, center, 2), 18)
	for _, n := range mesh.NodesAtDistance(m, center, 2) {
		chk.Equal(2, m.Distance(center, n))
	}
}

// TestRingCardinality checks that an interior source on a 2-D mesh has
// exactly 4d nodes at distance d, all at that distance.
func TestRingCardinality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.IntRange(1, 6).Draw(t, "d")
		w := rapid.IntRange(2*d+1, 2*d+6).Draw(t, "width")
		h := rapid.IntRange(2*d+1, 2*d+6).Draw(t, "height")
		m := mesh.New2D(w, h)
		x := rapid.IntRange(d, w-d-1).Draw(t, "x")
		y := rapid.IntRange(d, h-d-1).Draw(t, "y")
		src, _ := m.NodeAt(mesh.Coord{X: x, Y: y})

		ring := mesh.NodesAtDistance(m, src, d)
		require.Len(t, ring, 4*d)
		for _, n := range ring {
			require.Equal(t, d, m.Distance(src, n))
		}
		require.Equal(t, []int{src}, mesh.NodesAtDistance(m, src, 0))
	})
}

func TestClosestFree(t *testing.T) {
	chk := require.New(t)
	m := mesh.New2D(3, 3)
	m.Occupy(4, 1, 3)
	snap := m.Snapshot()

	nodes, d := mesh.ClosestFree(m, snap, 4)
	chk.Equal(1, d)
	chk.Equal([]int{5, 7}, nodes)

	n, ok := mesh.NearestFree(m, snap, 4)
	chk.True(ok)
	chk.Equal(5, n)

	// An occupied source with two free neighbors picks the lower id
	n, ok = mesh.NearestFree(m, snap, 1)
	chk.True(ok)
	chk.Equal(0, n)

	n, ok = mesh.NearestFree(m, snap, 8)
	chk.True(ok)
	chk.Equal(8, n)

	chk.Equal(2, mesh.CountFreeAt(m, snap, 4, 1))
	chk.Equal(4, mesh.CountFreeAt(m, snap, 4, 2))

	m.Occupy(snap.FreeNodes()...)
	nodes, d = mesh.ClosestFree(m, m.Snapshot(), 4)
	chk.Nil(nodes)
	chk.Equal(-1, d)
	_, ok = mesh.NearestFree(m, m.Snapshot(), 4)
	chk.False(ok)
}
