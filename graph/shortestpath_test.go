// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package graph_test

import (
	"math"
	"testing"

	"github.com/petenewcomb/nearest-go/graph"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestShortestDistances(t *testing.T) {
	chk := require.New(t)
	// Symmetric volumes are summed, so edge lengths are 1/20, 1/10, 1/20, 1/2
	g := graph.FromJob(fourTaskJob())

	d := graph.ShortestDistances(g, 0, math.Inf(1))
	chk.Len(d, 4)
	chk.Equal(0.0, d[0])
	chk.InDelta(0.05, d[1], 1e-12)
	chk.InDelta(0.15, d[2], 1e-12)
	// Going around through 1 and 2 beats the direct light link
	chk.InDelta(0.2, d[3], 1e-12)

	d = graph.ShortestDistances(g, 0, 0.1)
	chk.Len(d, 2)
	chk.Contains(d, 1)
	chk.NotContains(d, 2)

	chk.Empty(graph.ShortestDistances(g, 0, -1))
	chk.Equal(map[int]float64{0: 0}, graph.ShortestDistances(g, 0, 0))
}

func TestTotalDistance(t *testing.T) {
	chk := require.New(t)
	g := graph.FromJob(fourTaskJob())

	total, ok := graph.TotalDistance(g, 1, math.Inf(1))
	chk.True(ok)
	chk.InDelta(0.05+0.1+0.15, total, 1e-12)

	total0, ok := graph.TotalDistance(g, 0, math.Inf(1))
	chk.True(ok)
	chk.Greater(total0, total)

	// A budget below the true total aborts the search
	_, ok = graph.TotalDistance(g, 0, total)
	chk.False(ok)
}

func TestTotalDistanceChargesUnreachable(t *testing.T) {
	chk := require.New(t)
	g := graph.FromJob(job.NewTable(3).Connect(0, 1, 1))
	// One edge of length 1/2
	chk.Equal(1.5, g.UnreachablePenalty())

	total, ok := graph.TotalDistance(g, 0, math.Inf(1))
	chk.True(ok)
	chk.Equal(0.5+1.5, total)

	total, ok = graph.TotalDistance(g, 2, math.Inf(1))
	chk.True(ok)
	chk.Equal(2*1.5, total)
}

// floydWarshall is the reference all-pairs solution.
func floydWarshall(g *graph.Graph) [][]float64 {
	n := g.NumVertices()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			if i != j {
				d[i][j] = math.Inf(1)
			}
		}
		for _, e := range g.Adjacent(i) {
			d[i][e.To] = min(d[i][e.To], e.Length())
		}
	}
	for k := range n {
		for i := range n {
			for j := range n {
				if d[i][k]+d[k][j] < d[i][j] {
					d[i][j] = d[i][k] + d[k][j]
				}
			}
		}
	}
	return d
}

func drawJob(t *rapid.T, maxTasks int) *job.Table {
	n := rapid.IntRange(1, maxTasks).Draw(t, "tasks")
	tbl := job.NewTable(n)
	if n < 2 {
		return tbl
	}
	edges := rapid.IntRange(0, n*(n-1)/2).Draw(t, "edges")
	for range edges {
		a := rapid.IntRange(0, n-1).Draw(t, "a")
		b := rapid.IntRange(0, n-1).Draw(t, "b")
		if a == b {
			continue
		}
		tbl.Add(a, b, rapid.IntRange(1, 20).Draw(t, "volume"))
	}
	return tbl
}

// TestShortestDistancesLimit checks that no entry exceeds the limit and that
// every vertex within the limit is present with its true distance.
func TestShortestDistancesLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := graph.FromJob(drawJob(t, 12))
		ref := floydWarshall(g)
		src := rapid.IntRange(0, g.NumVertices()-1).Draw(t, "src")
		limit := float64(rapid.IntRange(0, 40).Draw(t, "limit")) / 20

		got := graph.ShortestDistances(g, src, limit)
		for v, d := range got {
			require.LessOrEqual(t, d, limit)
			require.InDelta(t, ref[src][v], d, 1e-9)
		}
		for v, d := range ref[src] {
			// Skip boundary cases where rounding decides membership
			if d <= limit-1e-9 {
				require.Contains(t, got, v)
			}
		}
	})
}
