// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"time"

	"github.com/petenewcomb/nearest-go/job"
)

// A Submission is a job arriving at the machine at a given simulated time and
// holding its nodes for Runtime once admitted.
type Submission struct {
	Name    string
	Job     job.Job
	Arrival time.Duration
	Runtime time.Duration
}

func (s *Submission) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("job(%d tasks)", s.Job.NumTasks())
}

// A Record describes what happened to one submission.
type Record struct {
	Submission *Submission
	// Admitted is false if the job could never be placed, for instance
	// because it needs more nodes than the machine has.
	Admitted bool
	Start    time.Duration
	Finish   time.Duration
	Nodes    []int
	Cost     int
}

// Wait returns how long the job waited between arrival and admission.
func (r *Record) Wait() time.Duration {
	return r.Start - r.Submission.Arrival
}
