// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otnearest

import (
	"context"

	"github.com/google/uuid"
	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/job"
)

// AllocateFunc is a single allocation attempt. The context carries trace and
// attempt identity only; placement itself never blocks.
type AllocateFunc func(ctx context.Context, j job.Job) (*nearest.Allocation, error)

// Func adapts an allocator to an [AllocateFunc] placing against the
// machine's current state.
func Func(a *nearest.Allocator) AllocateFunc {
	if a == nil {
		panic("allocator must be non-nil")
	}
	return func(_ context.Context, j job.Job) (*nearest.Allocation, error) {
		return a.Allocate(j)
	}
}

type attemptIDKey struct{}

// WithAttemptID returns a context carrying a fresh attempt id, unless ctx
// already carries one.
func WithAttemptID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(attemptIDKey{}).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, attemptIDKey{}, uuid.NewString())
}

// AttemptID returns the attempt id carried by ctx, or the empty string.
func AttemptID(ctx context.Context) string {
	id, _ := ctx.Value(attemptIDKey{}).(string)
	return id
}
