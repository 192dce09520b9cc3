// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scenarioYAML = `
machine: {x: 3, y: 3}
jobs:
  - name: pairs
    pattern: custom
    tasks: 4
    pairs:
      - {from: 0, to: 1, volume: 10}
      - {from: 1, to: 2, volume: 5}
      - {from: 2, to: 3, volume: 10}
      - {from: 0, to: 3, volume: 1}
    runtime: 10s
  - name: big
    pattern: ring
    tasks: 6
    volume: 1
    arrival: 1s
    runtime: 1s
`

func writeScenario(t *testing.T) []string {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o600))
	return []string{path}
}

func TestRunPlace(t *testing.T) {
	chk := require.New(t)
	var out bytes.Buffer
	chk.NoError(runPlace(&out, zap.NewNop(), writeScenario(t), true))
	chk.Equal(`pairs: 4 tasks, center task 1 on node 1, cost 28
  task 0 -> node 0 (0,0,0)
  task 1 -> node 1 (1,0,0)
  task 2 -> node 2 (2,0,0)
  task 3 -> node 5 (2,1,0)
big: not placed: not enough free nodes: job of 6 tasks needs 6 nodes, 5 free
3x3x1 mesh (5/9 free)
`, out.String())

	out.Reset()
	err := runPlace(&out, zap.NewNop(), writeScenario(t), false)
	chk.ErrorContains(err, "placing big")
}

func TestRunSimulate(t *testing.T) {
	chk := require.New(t)
	var out bytes.Buffer
	chk.NoError(runSimulate(&out, zap.NewNop(), writeScenario(t)))
	chk.Contains(out.String(), "pairs: waited 0s, ran 0s-10s on 4 nodes, cost 28\n")
	chk.Contains(out.String(), "big: waited 9s, ran 10s-11s on 6 nodes")
	chk.Contains(out.String(), "admitted 2, rejected 0, makespan 11s")
}

func TestRunDescribe(t *testing.T) {
	chk := require.New(t)
	var out bytes.Buffer
	chk.NoError(runDescribe(&out, writeScenario(t)))
	chk.Equal(`3x3x1 mesh (9/9 free)
Nearest allocator (center task: exhaustive, center node: exhaustive, order: sorted, tasks per node: 1)
2 jobs
`, out.String())
}

func TestRunDescribeMissingFile(t *testing.T) {
	err := runDescribe(&bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "nope.yaml")})
	require.ErrorContains(t, err, "failed to read scenario")
}
