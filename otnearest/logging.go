// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otnearest

import (
	"context"
	"time"

	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/job"
	"go.uber.org/zap"
)

// Logged adds structured logging to an allocation attempt using the global
// zap logger. Infeasible jobs are logged at info level since the caller is
// expected to retry them; any other error is logged at error level.
func Logged(operationName string, allocate AllocateFunc) AllocateFunc {
	return func(ctx context.Context, j job.Job) (*nearest.Allocation, error) {
		logger := zap.L().With(
			zap.String("operation", operationName),
			zap.String("component", "otnearest"))
		if id := AttemptID(ctx); id != "" {
			logger = logger.With(zap.String("attempt_id", id))
		}

		logger.Debug("Starting allocation", zap.Int("tasks", j.NumTasks()))

		startTime := time.Now()
		alloc, err := allocate(ctx, j)
		duration := time.Since(startTime)

		switch {
		case err == nil:
			logger.Debug("Allocation completed",
				zap.Duration("duration", duration),
				zap.Int("center_node", alloc.CenterNode),
				zap.Int("cost", alloc.Cost))
		case nearest.IsInfeasible(err):
			logger.Info("Allocation deferred",
				zap.Duration("duration", duration),
				zap.Error(err))
		default:
			logger.Error("Allocation failed",
				zap.Duration("duration", duration),
				zap.Error(err))
		}
		return alloc, err
	}
}
