// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otnearest

import (
	"context"
	"time"

	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/job"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metered records count, duration, failure and cost metrics for an
// allocation attempt through the global meter provider.
func Metered(metricName string, allocate AllocateFunc) AllocateFunc {
	meter := otel.GetMeterProvider().Meter("otnearest")

	attemptCounter, _ := meter.Int64Counter(metricName + ".count")
	attemptDuration, _ := meter.Float64Histogram(metricName+".duration", metric.WithUnit("s"))
	failureCounter, _ := meter.Int64Counter(metricName + ".failures")
	costHistogram, _ := meter.Int64Histogram(metricName + ".cost")

	return func(ctx context.Context, j job.Job) (*nearest.Allocation, error) {
		startTime := time.Now()
		attemptCounter.Add(ctx, 1)

		alloc, err := allocate(ctx, j)

		attemptDuration.Record(ctx, time.Since(startTime).Seconds())
		if err != nil {
			failureCounter.Add(ctx, 1, metric.WithAttributes(
				attribute.Bool("infeasible", nearest.IsInfeasible(err))))
		} else {
			costHistogram.Record(ctx, int64(alloc.Cost))
		}
		return alloc, err
	}
}
