// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package scenario_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/internal/scenario"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/stretchr/testify/require"
)

const base = `
machine:
  x: 4
  y: 3
  occupied: [0, 5]
allocator:
  order: greedy
  tasks_per_node: 1
jobs:
  - name: solver
    pattern: stencil2d
    tasks: 3
    height: 2
    volume: 4
    runtime: 30s
  - pattern: custom
    tasks: 3
    pairs:
      - {from: 0, to: 2, volume: 7}
      - {from: 2, to: 1, volume: 1}
    center_task: 2
    arrival: 1m
    runtime: 5s
`

func TestParse(t *testing.T) {
	chk := require.New(t)
	s, err := scenario.Parse([]byte(base))
	chk.NoError(err)

	chk.Equal(nearest.OrderGreedy, s.Allocator.Order)
	chk.Equal(nearest.TaskExhaustive, s.Allocator.TaskStrategy)

	m := s.Mesh()
	chk.Equal(12, m.NumNodes())
	chk.Equal(10, m.FreeCount())
	chk.False(m.IsFree(5))

	subs := s.Submissions()
	chk.Len(subs, 2)
	chk.Equal("solver", subs[0].Name)
	chk.Equal(6, subs[0].Job.NumTasks())
	chk.Equal(30*time.Second, subs[0].Runtime)
	chk.Equal("job1", subs[1].Name)
	chk.Equal(time.Minute, subs[1].Arrival)

	custom := subs[1].Job.(*job.Table)
	chk.Equal(7, custom.Volume(0, 2))
	chk.Equal(0, custom.Volume(2, 0))
	center, ok := custom.CenterTask()
	chk.True(ok)
	chk.Equal(2, center)
}

func TestLoadMergesFilesInOrder(t *testing.T) {
	chk := require.New(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "base.yaml")
	second := filepath.Join(dir, "override.yaml")
	chk.NoError(os.WriteFile(first, []byte(base), 0o600))
	chk.NoError(os.WriteFile(second, []byte("machine:\n  x: 8\n  y: 8\n  z: 2\nallocator:\n  node_strategy: greedy\n"), 0o600))

	s, err := scenario.Load(first, second)
	chk.NoError(err)
	chk.Equal(128, s.Mesh().NumNodes())
	chk.Equal(nearest.NodeGreedy, s.Allocator.NodeStrategy)
	chk.Len(s.Jobs, 2)
}

func TestLoadErrors(t *testing.T) {
	chk := require.New(t)
	_, err := scenario.Load()
	chk.EqualError(err, "no scenario files to load")

	_, err = scenario.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	chk.ErrorContains(err, "failed to read scenario")
	chk.ErrorIs(err, os.ErrNotExist)

	_, err = scenario.Parse([]byte("machine:\n  x: 2\n  y: 2\n  w: 3\n"))
	chk.ErrorContains(err, "failed to parse scenario")
	chk.ErrorContains(err, "field w not found")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	chk := require.New(t)
	_, err := scenario.Parse([]byte(`
machine:
  x: 2
  y: 2
  occupied: [1, 1, 9]
allocator:
  tasks_per_node: -1
jobs:
  - pattern: hexagonal
    tasks: 2
  - pattern: custom
    tasks: 2
    pairs: [{from: 0, to: 3, volume: 1}]
  - pattern: stencil2d
    tasks: 2
  - pattern: ring
    tasks: 3
    center_task: 3
`))
	chk.Error(err)
	chk.ErrorContains(err, "invalid scenario")

	var merr *multierror.Error
	chk.ErrorAs(err, &merr)
	chk.Len(merr.Errors, 7)
	chk.ErrorContains(err, "node 1 occupied twice")
	chk.ErrorContains(err, "occupied node 9 out of range for 4 nodes")
	chk.ErrorContains(err, "tasks per node must not be negative")
	chk.ErrorContains(err, `unknown pattern "hexagonal"`)
	chk.ErrorContains(err, "pair (0,3) outside job of 2 tasks")
	chk.ErrorContains(err, "stencil2d needs a height of at least one")
	chk.ErrorContains(err, "center task 3 outside job of 3 tasks")
}

func TestValidateMachineTags(t *testing.T) {
	chk := require.New(t)
	_, err := scenario.Parse([]byte("machine:\n  x: 0\n  y: 2\n"))
	chk.ErrorContains(err, "machine")
	chk.ErrorContains(err, "X")
}
