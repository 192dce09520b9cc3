// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package job

// Independent returns a job of n tasks that do not communicate.
func Independent(n int) *Table {
	return NewTable(n)
}

// AllToAll returns a job of n tasks in which every task sends volume to
// every other task.
func AllToAll(n, volume int) *Table {
	t := NewTable(n)
	for a := range n {
		for b := range n {
			if a != b {
				t.Set(a, b, volume)
			}
		}
	}
	return t
}

// Ring returns a job of n tasks in which each task exchanges volume with its
// two neighbors on a ring.
func Ring(n, volume int) *Table {
	t := NewTable(n)
	if n < 2 {
		return t
	}
	for a := range n {
		b := (a + 1) % n
		if a != b {
			t.Connect(a, b, volume)
		}
	}
	return t
}

// Stencil2D returns an x by y grid of tasks in which each task exchanges
// volume with its north, south, east and west neighbors. Task (i, j) has
// index i + x*j.
func Stencil2D(x, y, volume int) *Table {
	if x < 0 || y < 0 {
		panic("stencil dimensions must be non-negative")
	}
	t := NewTable(x * y)
	for j := range y {
		for i := range x {
			a := i + x*j
			if i+1 < x {
				t.Connect(a, a+1, volume)
			}
			if j+1 < y {
				t.Connect(a, a+x, volume)
			}
		}
	}
	return t
}
