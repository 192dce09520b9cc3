// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otnearest provides OpenTelemetry and zap instrumentation for
// allocation attempts. Each wrapper takes an [AllocateFunc] and returns one
// with the same behavior plus logging, metrics or tracing, so they can be
// stacked in any order. [Instrumented] applies all three.
package otnearest
