// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package scenario loads machine, allocator and workload descriptions from
// YAML files.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/internal/sim"
	"github.com/petenewcomb/nearest-go/job"
	"github.com/petenewcomb/nearest-go/mesh"
	"github.com/pkg/errors"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v3"
)

// Scenario describes a machine, how to allocate on it, and the jobs to place.
type Scenario struct {
	Machine   Machine        `yaml:"machine"`
	Allocator nearest.Config `yaml:"allocator"`
	Jobs      []Job          `yaml:"jobs"`
}

// Machine describes a mesh and the nodes already in use on it.
type Machine struct {
	X        int   `yaml:"x" validate:"min=1"`
	Y        int   `yaml:"y" validate:"min=1"`
	Z        int   `yaml:"z" validate:"min=0"`
	Occupied []int `yaml:"occupied"`
}

// Job describes one job by its communication pattern.
type Job struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern" validate:"nonzero"`
	// Tasks is the number of tasks, or the stencil width for stencil2d.
	Tasks int `yaml:"tasks" validate:"min=0"`
	// Height is the stencil height for stencil2d.
	Height int `yaml:"height" validate:"min=0"`
	Volume int `yaml:"volume" validate:"min=0"`
	// Pairs lists directed communication for the custom pattern.
	Pairs      []Pair        `yaml:"pairs"`
	CenterTask *int          `yaml:"center_task"`
	Arrival    time.Duration `yaml:"arrival" validate:"min=0"`
	Runtime    time.Duration `yaml:"runtime" validate:"min=0"`
}

// Pair is a directed communication volume between two tasks.
type Pair struct {
	From   int `yaml:"from"`
	To     int `yaml:"to"`
	Volume int `yaml:"volume"`
}

const (
	PatternIndependent = "independent"
	PatternRing        = "ring"
	PatternAllToAll    = "all-to-all"
	PatternStencil2D   = "stencil2d"
	PatternCustom      = "custom"
)

// Load reads the given files in order, each overriding the fields set by the
// ones before it, and validates the result.
func Load(paths ...string) (*Scenario, error) {
	if len(paths) == 0 {
		return nil, errors.New("no scenario files to load")
	}
	var s Scenario
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read scenario")
		}
		if err := decode(data, &s); err != nil {
			return nil, errors.Wrapf(err, "failed to parse scenario %s", path)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return &s, nil
}

// Parse decodes and validates a single scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := decode(data, &s); err != nil {
		return nil, errors.Wrap(err, "failed to parse scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return &s, nil
}

func decode(data []byte, s *Scenario) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(s)
}

// Validate reports every problem with s.
func (s *Scenario) Validate() error {
	var result *multierror.Error
	if err := validator.Validate(s.Machine); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "machine"))
	} else {
		n := s.Machine.X * s.Machine.Y * max(s.Machine.Z, 1)
		seen := make(map[int]bool)
		for _, node := range s.Machine.Occupied {
			switch {
			case node < 0 || node >= n:
				result = multierror.Append(result, fmt.Errorf("machine: occupied node %d out of range for %d nodes", node, n))
			case seen[node]:
				result = multierror.Append(result, fmt.Errorf("machine: node %d occupied twice", node))
			}
			seen[node] = true
		}
	}
	if err := s.Allocator.Validate(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "allocator"))
	}
	for i := range s.Jobs {
		if err := s.Jobs[i].validate(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "job %d (%s)", i, s.Jobs[i].Name))
		}
	}
	return result.ErrorOrNil()
}

func (j *Job) validate() error {
	if err := validator.Validate(j); err != nil {
		return err
	}
	switch j.Pattern {
	case PatternIndependent, PatternRing, PatternAllToAll:
	case PatternStencil2D:
		if j.Height < 1 {
			return errors.New("stencil2d needs a height of at least one")
		}
	case PatternCustom:
		for _, p := range j.Pairs {
			if p.From < 0 || p.From >= j.Tasks || p.To < 0 || p.To >= j.Tasks {
				return errors.Errorf("pair (%d,%d) outside job of %d tasks", p.From, p.To, j.Tasks)
			}
			if p.From == p.To {
				return errors.Errorf("task %d cannot communicate with itself", p.From)
			}
			if p.Volume < 0 {
				return errors.Errorf("pair (%d,%d) has negative volume", p.From, p.To)
			}
		}
	default:
		return errors.Errorf("unknown pattern %q", j.Pattern)
	}
	if j.CenterTask != nil && (*j.CenterTask < 0 || *j.CenterTask >= j.NumTasks()) {
		return errors.Errorf("center task %d outside job of %d tasks", *j.CenterTask, j.NumTasks())
	}
	return nil
}

// NumTasks returns the number of tasks the job will have.
func (j *Job) NumTasks() int {
	if j.Pattern == PatternStencil2D {
		return j.Tasks * j.Height
	}
	return j.Tasks
}

// Build creates the communication table for the job, which must be valid.
func (j *Job) Build() *job.Table {
	var t *job.Table
	switch j.Pattern {
	case PatternIndependent:
		t = job.Independent(j.Tasks)
	case PatternRing:
		t = job.Ring(j.Tasks, j.Volume)
	case PatternAllToAll:
		t = job.AllToAll(j.Tasks, j.Volume)
	case PatternStencil2D:
		t = job.Stencil2D(j.Tasks, j.Height, j.Volume)
	case PatternCustom:
		t = job.NewTable(j.Tasks)
		for _, p := range j.Pairs {
			t.Add(p.From, p.To, p.Volume)
		}
	default:
		panic(fmt.Sprintf("unknown pattern %q", j.Pattern))
	}
	if j.CenterTask != nil {
		t.SetCenterTask(*j.CenterTask)
	}
	return t
}

// Mesh creates the described machine with its occupied nodes marked.
func (s *Scenario) Mesh() *mesh.Mesh {
	m := mesh.New(s.Machine.X, s.Machine.Y, max(s.Machine.Z, 1))
	m.Occupy(s.Machine.Occupied...)
	return m
}

// Submissions returns the jobs as a simulation workload.
func (s *Scenario) Submissions() []sim.Submission {
	subs := make([]sim.Submission, len(s.Jobs))
	for i := range s.Jobs {
		j := &s.Jobs[i]
		name := j.Name
		if name == "" {
			name = fmt.Sprintf("job%d", i)
		}
		subs[i] = sim.Submission{
			Name:    name,
			Job:     j.Build(),
			Arrival: j.Arrival,
			Runtime: j.Runtime,
		}
	}
	return subs
}
