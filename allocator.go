// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"fmt"
	"time"

	"github.com/petenewcomb/nearest-go/graph"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/petenewcomb/nearest-go/mesh"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
)

// An Allocator places jobs on a mesh machine. It holds only its
// configuration, so it may be shared and reused; every call to
// [Allocator.Allocate] works on its own snapshot of the machine and never
// modifies the machine itself.
//
// Allocators are created using [New].
type Allocator struct {
	machine     mesh.Machine
	config      Config
	partitioner graph.Partitioner
	logger      *zap.Logger
	metrics     *metrics
}

// New creates an [Allocator] for machine using the strategies in cfg.
//
// Panics if machine is nil or cfg is invalid.
func New(machine mesh.Machine, cfg Config, opts ...Option) *Allocator {
	if machine == nil {
		panic("machine must be non-nil")
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid allocator configuration: %v", err))
	}

	o := options{
		logger: zap.NewNop(),
		scope:  tally.NoopScope,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Allocator{
		machine:     machine,
		config:      cfg.withDefaults(),
		partitioner: o.partitioner,
		logger:      o.logger,
		metrics:     newMetrics(o.scope),
	}
}

// Config returns the effective configuration, with defaults filled in.
func (a *Allocator) Config() Config {
	return a.config
}

// Machine returns the machine the allocator places jobs on.
func (a *Allocator) Machine() mesh.Machine {
	return a.machine
}

// Describe returns a human-readable summary of the configuration.
func (a *Allocator) Describe() string {
	c := a.config
	return fmt.Sprintf("Nearest allocator (center task: %v, center node: %v, order: %v, tasks per node: %d)",
		c.TaskStrategy, c.NodeStrategy, c.Order, c.TasksPerNode)
}

func (a *Allocator) String() string {
	return a.Describe()
}

// Allocate chooses a node for every task of j on the machine's current free
// nodes. It returns an error wrapping [ErrInsufficientNodes],
// [ErrNoCenterNode] or [ErrNoFreeNode] if the job cannot be placed.
//
// The machine is not modified either way; committing a returned allocation is
// up to the caller, for instance with [mesh.Mesh.Occupy].
func (a *Allocator) Allocate(j job.Job) (*Allocation, error) {
	return a.AllocateSnapshot(j, a.machine.Snapshot())
}

// AllocateSnapshot is like [Allocator.Allocate] but places j against the
// given snapshot of the machine rather than its current state.
//
// Panics if j is nil or the snapshot does not match the machine's size.
func (a *Allocator) AllocateSnapshot(j job.Job, snap mesh.Snapshot) (*Allocation, error) {
	if j == nil {
		panic("job must be non-nil")
	}
	if snap.Len() != a.machine.NumNodes() {
		panic(fmt.Sprintf("snapshot covers %d nodes, machine has %d", snap.Len(), a.machine.NumNodes()))
	}

	a.metrics.Attempts.Inc(1)
	sw := a.metrics.Duration.Start()
	start := time.Now()
	alloc, err := a.allocate(j, snap)
	sw.Stop()

	if err != nil {
		a.metrics.failed(failureReason(err))
		a.logger.Debug("Allocation failed",
			zap.Int("tasks", j.NumTasks()),
			zap.Int("free_nodes", snap.FreeCount()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, err
	}

	a.metrics.Allocated.Inc(1)
	a.metrics.TasksPlaced.Inc(int64(len(alloc.TaskNodes)))
	a.metrics.CommunicationCost.Update(float64(alloc.Cost))
	a.logger.Debug("Allocated job",
		zap.Int("tasks", len(alloc.TaskNodes)),
		zap.Int("vertices", len(alloc.VertexNodes)),
		zap.Int("center_task", alloc.CenterTask),
		zap.Int("center_node", alloc.CenterNode),
		zap.Int("cost", alloc.Cost),
		zap.Duration("duration", time.Since(start)))
	return alloc, nil
}

func (a *Allocator) allocate(j job.Job, snap mesh.Snapshot) (*Allocation, error) {
	n := j.NumTasks()
	if n == 0 {
		return &Allocation{
			TaskNodes:   []int{},
			TaskSlots:   []int{},
			VertexNodes: []int{},
			CenterTask:  -1,
			CenterNode:  -1,
		}, nil
	}

	tpn := a.config.TasksPerNode
	needed := (n + tpn - 1) / tpn
	if snap.FreeCount() < needed {
		return nil, fmt.Errorf("%w: job of %d tasks needs %d nodes, %d free",
			ErrInsufficientNodes, n, needed, snap.FreeCount())
	}

	g, taskToVertex := graph.Build(j, tpn, a.partitioner)
	if g.NumVertices() > snap.FreeCount() {
		return nil, fmt.Errorf("%w: job of %d tasks grouped onto %d nodes, %d free",
			ErrInsufficientNodes, n, g.NumVertices(), snap.FreeCount())
	}

	free := snap.Working()
	centerVertex := a.centerTask(g, j, taskToVertex)
	centerNode, err := a.centerNode(free, g.NumVertices())
	if err != nil {
		return nil, err
	}

	at := newAttempt(a.machine, g, free, a.config.Order)
	at.place(centerVertex, centerNode)
	at.centerNode = centerNode
	if err := at.expand(); err != nil {
		return nil, err
	}

	return newAllocation(a.machine, j, g, taskToVertex, at.vertexNode, centerVertex, centerNode), nil
}
