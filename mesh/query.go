// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package mesh

import (
	"slices"
)

// eachAtDistance calls fn for every node exactly d hops from src, in no
// particular order. Costs O(d²) regardless of the mesh dimensionality.
func eachAtDistance(m Machine, src, d int, fn func(node int)) {
	if d < 0 {
		return
	}
	c := m.Coordinates(src)
	visit := func(x, y, z int) {
		if n, ok := m.NodeAt(Coord{X: x, Y: y, Z: z}); ok {
			fn(n)
		}
	}
	for dx := -d; dx <= d; dx++ {
		rem := d - abs(dx)
		for dy := -rem; dy <= rem; dy++ {
			dz := rem - abs(dy)
			if dz == 0 {
				visit(c.X+dx, c.Y+dy, c.Z)
			} else {
				visit(c.X+dx, c.Y+dy, c.Z+dz)
				visit(c.X+dx, c.Y+dy, c.Z-dz)
			}
		}
	}
}

// NodesAtDistance returns the nodes exactly d hops from src in ascending id
// order. The result is {src} for d == 0 and empty for negative d.
func NodesAtDistance(m Machine, src, d int) []int {
	var nodes []int
	eachAtDistance(m, src, d, func(n int) {
		nodes = append(nodes, n)
	})
	slices.Sort(nodes)
	return nodes
}

// CountFreeAt returns how many nodes exactly d hops from src are free.
func CountFreeAt(m Machine, free FreeView, src, d int) int {
	count := 0
	eachAtDistance(m, src, d, func(n int) {
		if free.IsFree(n) {
			count++
		}
	})
	return count
}

// ClosestFree expands rings of increasing radius around src and returns every
// free node on the first ring that has any, in ascending id order, together
// with that ring's radius. It returns nil and -1 if no node is free.
func ClosestFree(m Machine, free FreeView, src int) ([]int, int) {
	if free.FreeCount() == 0 {
		return nil, -1
	}
	var nodes []int
	for d := 0; d <= m.MaxDistance(); d++ {
		eachAtDistance(m, src, d, func(n int) {
			if free.IsFree(n) {
				nodes = append(nodes, n)
			}
		})
		if len(nodes) > 0 {
			slices.Sort(nodes)
			return nodes, d
		}
	}
	return nil, -1
}

// NearestFree returns the lowest-id free node among those closest to src, or
// false if no node is free.
func NearestFree(m Machine, free FreeView, src int) (int, bool) {
	nodes, _ := ClosestFree(m, free, src)
	if len(nodes) == 0 {
		return 0, false
	}
	return nodes[0], true
}
