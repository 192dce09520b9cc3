// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package nearest

import (
	"github.com/uber-go/tally/v4"
)

// metrics holds the counters reported for each allocation attempt.
type metrics struct {
	scope tally.Scope

	// Attempts counts calls to Allocate, whatever their outcome.
	Attempts tally.Counter
	// Allocated counts attempts that produced a placement.
	Allocated tally.Counter
	// Duration records the time spent per attempt.
	Duration tally.Timer
	// TasksPlaced counts tasks in successful placements.
	TasksPlaced tally.Counter
	// CommunicationCost is the volume-weighted hop count of the last
	// successful placement.
	CommunicationCost tally.Gauge
}

func newMetrics(scope tally.Scope) *metrics {
	allocScope := scope.SubScope("allocator")
	successScope := allocScope.Tagged(map[string]string{"result": "success"})

	return &metrics{
		scope:             allocScope,
		Attempts:          allocScope.Counter("attempts"),
		Allocated:         successScope.Counter("allocate"),
		Duration:          allocScope.Timer("duration"),
		TasksPlaced:       successScope.Counter("tasks"),
		CommunicationCost: successScope.Gauge("communication_cost"),
	}
}

// failed counts an unsuccessful attempt, tagged with its reason.
func (m *metrics) failed(reason string) {
	m.scope.Tagged(map[string]string{
		"result": "fail",
		"reason": reason,
	}).Counter("allocate").Inc(1)
}
