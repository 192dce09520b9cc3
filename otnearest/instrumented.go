// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otnearest

import (
	"context"

	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/job"
)

// Instrumented combines tracing, metrics and logging around a's Allocate
// method and tags each attempt with a fresh attempt id.
func Instrumented(operationName string, a *nearest.Allocator) AllocateFunc {
	// Inside-out, so the span covers the logging and metrics too.
	allocate := Traced(operationName, Metered(operationName, Logged(operationName, Func(a))))
	return func(ctx context.Context, j job.Job) (*nearest.Allocation, error) {
		return allocate(WithAttemptID(ctx), j)
	}
}
