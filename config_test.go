// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest_test

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/mesh"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigDefaults(t *testing.T) {
	chk := require.New(t)
	a := nearest.New(mesh.New2D(2, 2), nearest.Config{})
	chk.Equal(nearest.Config{
		TaskStrategy:   nearest.TaskExhaustive,
		NodeStrategy:   nearest.NodeExhaustive,
		Order:          nearest.OrderSorted,
		NodeUpperLimit: nearest.DefaultNodeUpperLimit,
		TasksPerNode:   1,
	}, a.Config())

	a = nearest.New(mesh.New2D(2, 2), nearest.Config{NodeUpperLimit: 7, TasksPerNode: 3})
	chk.Equal(7, a.Config().NodeUpperLimit)
	chk.Equal(3, a.Config().TasksPerNode)
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	chk := require.New(t)
	chk.NoError(nearest.Config{}.Validate())

	err := nearest.Config{
		TaskStrategy: nearest.TaskStrategy(5),
		Order:        nearest.NeighborOrder(-1),
		TasksPerNode: -2,
	}.Validate()
	chk.Error(err)
	var merr *multierror.Error
	chk.ErrorAs(err, &merr)
	chk.Len(merr.Errors, 3)
	chk.ErrorContains(err, "unknown task strategy 5")
	chk.ErrorContains(err, "unknown neighbor order -1")
	chk.ErrorContains(err, "tasks per node must not be negative, got -2")
}

func TestConfigYAML(t *testing.T) {
	chk := require.New(t)
	var cfg nearest.Config
	chk.NoError(yaml.Unmarshal([]byte(`
task_strategy: greedy
node_strategy: exhaustive
order: greedy
node_upper_limit: 50
tasks_per_node: 2
`), &cfg))
	chk.Equal(nearest.Config{
		TaskStrategy:   nearest.TaskGreedy,
		NodeStrategy:   nearest.NodeExhaustive,
		Order:          nearest.OrderGreedy,
		NodeUpperLimit: 50,
		TasksPerNode:   2,
	}, cfg)

	out, err := yaml.Marshal(cfg)
	chk.NoError(err)
	var back nearest.Config
	chk.NoError(yaml.Unmarshal(out, &back))
	chk.Equal(cfg, back)
	chk.Contains(string(out), "order: greedy")

	err = yaml.Unmarshal([]byte("task_strategy: random\n"), &cfg)
	chk.ErrorContains(err, `unknown task strategy "random"`)
}

func TestStrategyNames(t *testing.T) {
	chk := require.New(t)
	chk.Equal("exhaustive", nearest.TaskExhaustive.String())
	chk.Equal("greedy", nearest.NodeGreedy.String())
	chk.Equal("sorted", nearest.OrderSorted.String())
	chk.Equal("NeighborOrder(9)", nearest.NeighborOrder(9).String())

	var s nearest.NodeStrategy
	chk.NoError(s.UnmarshalText([]byte("greedy")))
	chk.Equal(nearest.NodeGreedy, s)
	chk.EqualError(s.UnmarshalText([]byte("nearest")), `unknown node strategy "nearest"`)

	_, err := nearest.TaskStrategy(3).MarshalText()
	chk.EqualError(err, "unknown task strategy 3")
}
