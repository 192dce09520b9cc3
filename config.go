// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/petenewcomb/nearest-go/graph"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

// DefaultNodeUpperLimit is the number of candidate center nodes examined by
// [NodeExhaustive] when Config.NodeUpperLimit is not set.
const DefaultNodeUpperLimit = 2000

// Config selects the allocator's strategies and search budgets. The zero value
// is the recommended configuration: exhaustive center task and node
// selection with sorted expansion, one task per node.
type Config struct {
	TaskStrategy TaskStrategy  `yaml:"task_strategy"`
	NodeStrategy NodeStrategy  `yaml:"node_strategy"`
	Order        NeighborOrder `yaml:"order"`

	// TaskUpperLimit bounds the number of center task candidates. Zero or
	// negative means every vertex is a candidate.
	TaskUpperLimit int `yaml:"task_upper_limit"`
	// NodeUpperLimit bounds the number of center node candidates. Zero or
	// negative means DefaultNodeUpperLimit.
	NodeUpperLimit int `yaml:"node_upper_limit"`
	// TasksPerNode is the number of tasks each node can host. Zero means
	// one.
	TasksPerNode int `yaml:"tasks_per_node"`
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var result *multierror.Error
	if !c.TaskStrategy.valid() {
		result = multierror.Append(result, fmt.Errorf("unknown task strategy %d", int(c.TaskStrategy)))
	}
	if !c.NodeStrategy.valid() {
		result = multierror.Append(result, fmt.Errorf("unknown node strategy %d", int(c.NodeStrategy)))
	}
	if !c.Order.valid() {
		result = multierror.Append(result, fmt.Errorf("unknown neighbor order %d", int(c.Order)))
	}
	if c.TasksPerNode < 0 {
		result = multierror.Append(result, fmt.Errorf("tasks per node must not be negative, got %d", c.TasksPerNode))
	}
	return result.ErrorOrNil()
}

func (c Config) withDefaults() Config {
	if c.NodeUpperLimit <= 0 {
		c.NodeUpperLimit = DefaultNodeUpperLimit
	}
	if c.TasksPerNode == 0 {
		c.TasksPerNode = 1
	}
	return c
}

// An Option customizes an [Allocator] beyond its [Config].
type Option func(*options)

type options struct {
	logger      *zap.Logger
	scope       tally.Scope
	partitioner graph.Partitioner
}

// WithLogger sets the logger used to report allocation attempts.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the scope under which allocation metrics are reported.
func WithMetrics(scope tally.Scope) Option {
	return func(o *options) {
		o.scope = scope
	}
}

// WithPartitioner sets the partitioner used to group tasks when
// Config.TasksPerNode is greater than one. By default tasks are grouped by
// [graph.GreedyPartitioner].
func WithPartitioner(p graph.Partitioner) Option {
	return func(o *options) {
		o.partitioner = p
	}
}
