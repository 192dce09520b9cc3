// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/petenewcomb/nearest-go/mesh"
)

var benchStrategies = []struct {
	name string
	cfg  nearest.Config
}{
	{"exhaustive-sorted", nearest.Config{}},
	{"exhaustive-greedy", nearest.Config{Order: nearest.OrderGreedy}},
	{"greedy-sorted", nearest.Config{TaskStrategy: nearest.TaskGreedy, NodeStrategy: nearest.NodeGreedy}},
	{"greedy-greedy", nearest.Config{TaskStrategy: nearest.TaskGreedy, NodeStrategy: nearest.NodeGreedy, Order: nearest.OrderGreedy}},
}

// Each job uses about a quarter of the machine.
var benchJobs = []struct {
	name  string
	build func(nodes int) job.Job
}{
	{"stencil", func(nodes int) job.Job {
		side := int(math.Sqrt(float64(nodes / 4)))
		return job.Stencil2D(side, side, 4)
	}},
	{"ring", func(nodes int) job.Job {
		return job.Ring(nodes/4, 4)
	}},
	{"alltoall", func(nodes int) job.Job {
		return job.AllToAll(min(nodes/4, 48), 1)
	}},
}

// BenchmarkAllocate reports placement latency and the communication cost
// achieved, for chart generation by internal/cmd/charts.
func BenchmarkAllocate(b *testing.B) {
	for _, side := range []int{8, 16, 32} {
		for _, bj := range benchJobs {
			for _, bs := range benchStrategies {
				name := fmt.Sprintf("machine=%dx%d/job=%s/strategy=%s", side, side, bj.name, bs.name)
				b.Run(name, func(b *testing.B) {
					m := mesh.New2D(side, side)
					// Fragment the machine the way earlier jobs would.
					for node := 3; node < m.NumNodes(); node += 7 {
						m.Occupy(node)
					}
					a := nearest.New(m, bs.cfg)
					j := bj.build(m.NumNodes())

					b.ReportAllocs()
					var cost int
					for range b.N {
						alloc, err := a.Allocate(j)
						if err != nil {
							b.Fatal(err)
						}
						cost = alloc.Cost
					}
					b.ReportMetric(float64(cost), "cost/op")
				})
			}
		}
	}
}
