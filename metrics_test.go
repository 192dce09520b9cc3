// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest_test

import (
	"testing"

	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/petenewcomb/nearest-go/mesh"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAllocatorMetrics(t *testing.T) {
	chk := require.New(t)
	scope := tally.NewTestScope("", map[string]string{})
	a := nearest.New(mesh.New2D(3, 3), nearest.Config{}, nearest.WithMetrics(scope))

	_, err := a.Allocate(fourTaskJob())
	chk.NoError(err)
	_, err = a.Allocate(job.Ring(4, 2))
	chk.NoError(err)
	_, err = a.Allocate(job.Ring(12, 1))
	chk.ErrorIs(err, nearest.ErrInsufficientNodes)

	snap := scope.Snapshot()
	counters := snap.Counters()
	chk.EqualValues(3, counters["allocator.attempts+"].Value())
	chk.EqualValues(2, counters["allocator.allocate+result=success"].Value())
	chk.EqualValues(8, counters["allocator.tasks+result=success"].Value())
	chk.EqualValues(1, counters["allocator.allocate+reason=insufficient_nodes,result=fail"].Value())
	chk.Len(snap.Timers()["allocator.duration+"].Values(), 3)

	cost, ok := snap.Gauges()["allocator.communication_cost+result=success"]
	chk.True(ok)
	chk.Greater(cost.Value(), 0.0)
}

func TestAllocatorLogging(t *testing.T) {
	chk := require.New(t)
	core, logs := observer.New(zapcore.DebugLevel)
	a := nearest.New(mesh.New2D(3, 3), nearest.Config{}, nearest.WithLogger(zap.New(core)))

	_, err := a.Allocate(fourTaskJob())
	chk.NoError(err)
	_, err = a.Allocate(job.Independent(10))
	chk.Error(err)

	allocated := logs.FilterMessage("Allocated job").All()
	chk.Len(allocated, 1)
	fields := allocated[0].ContextMap()
	chk.EqualValues(4, fields["tasks"])
	chk.EqualValues(1, fields["center_task"])
	chk.EqualValues(56, fields["cost"])

	failed := logs.FilterMessage("Allocation failed").All()
	chk.Len(failed, 1)
	chk.Equal(zapcore.DebugLevel, failed[0].Level)
	chk.Contains(failed[0].ContextMap()["error"], "not enough free nodes")
}
