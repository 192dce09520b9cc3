// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otnearest

import (
	"context"

	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/job"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced starts a span with the given operation name around an allocation
// attempt and records the outcome as span attributes.
func Traced(operationName string, allocate AllocateFunc) AllocateFunc {
	return func(ctx context.Context, j job.Job) (*nearest.Allocation, error) {
		tracer := otel.Tracer("otnearest")
		ctx, span := tracer.Start(ctx, operationName,
			trace.WithAttributes(attribute.Int("nearest.tasks", j.NumTasks())))
		defer span.End()

		if id := AttemptID(ctx); id != "" {
			span.SetAttributes(attribute.String("nearest.attempt_id", id))
		}

		alloc, err := allocate(ctx, j)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("nearest.infeasible", nearest.IsInfeasible(err)))
			span.SetStatus(codes.Error, err.Error())
			return alloc, err
		}

		span.SetAttributes(
			attribute.Int("nearest.center_task", alloc.CenterTask),
			attribute.Int("nearest.center_node", alloc.CenterNode),
			attribute.Int("nearest.cost", alloc.Cost))
		return alloc, nil
	}
}
