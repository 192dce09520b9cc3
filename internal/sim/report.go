// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Report summarizes a simulation run.
type Report struct {
	Records []Record
	// Makespan is the time of the last event.
	Makespan time.Duration
	Admitted int
	Rejected int
	Wait     DurationRange
	// MeanCost is the average communication cost of admitted jobs.
	MeanCost float64
	// PeakBusy is the largest number of nodes occupied at once.
	PeakBusy int
	// Utilization is the fraction of node time spent running jobs.
	Utilization float64
}

// DurationRange holds order statistics of a set of durations.
type DurationRange struct {
	Min, Med, Max time.Duration
	Mean          time.Duration
}

func newDurationRange(ds []time.Duration) DurationRange {
	if len(ds) == 0 {
		return DurationRange{}
	}
	sorted := slices.Clone(ds)
	slices.Sort(sorted)
	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	return DurationRange{
		Min:  sorted[0],
		Med:  sorted[len(sorted)/2],
		Max:  sorted[len(sorted)-1],
		Mean: total / time.Duration(len(sorted)),
	}
}

func (r DurationRange) String() string {
	return fmt.Sprintf("min=%v med=%v max=%v mean=%v", r.Min, r.Med, r.Max, r.Mean)
}

func newReport(records []Record, makespan time.Duration, peakBusy, nodeCount int) *Report {
	r := &Report{
		Records:  records,
		Makespan: makespan,
		PeakBusy: peakBusy,
	}
	var waits []time.Duration
	var cost, nodeTime float64
	for i := range records {
		rec := &records[i]
		if !rec.Admitted {
			r.Rejected++
			continue
		}
		r.Admitted++
		waits = append(waits, rec.Wait())
		cost += float64(rec.Cost)
		nodeTime += float64(len(rec.Nodes)) * float64(rec.Submission.Runtime)
	}
	r.Wait = newDurationRange(waits)
	if r.Admitted > 0 {
		r.MeanCost = cost / float64(r.Admitted)
	}
	if makespan > 0 && nodeCount > 0 {
		r.Utilization = nodeTime / (float64(makespan) * float64(nodeCount))
	}
	return r
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "admitted %d, rejected %d, makespan %v\n", r.Admitted, r.Rejected, r.Makespan)
	fmt.Fprintf(&b, "wait: %v\n", r.Wait)
	fmt.Fprintf(&b, "mean cost %.1f, peak busy nodes %d, utilization %.1f%%", r.MeanCost, r.PeakBusy, 100*r.Utilization)
	return b.String()
}
