// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sim replays a stream of job submissions against a mesh machine in
// simulated time. Jobs are admitted first come, first served: the job at the
// head of the queue is placed as soon as the allocator finds room for it, and
// later jobs wait behind it. Each admitted job occupies its nodes for its
// runtime and then releases them, which may admit the next waiting jobs.
package sim
