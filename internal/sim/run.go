// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"time"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
	"github.com/petenewcomb/nearest-go"
	"github.com/petenewcomb/nearest-go/mesh"
	"go.uber.org/zap"
)

// Run replays subs against m using a, which must place onto m. The mesh is
// left as it was found: every admitted job has released its nodes by the
// time Run returns.
//
// Jobs that can never be admitted are reported as such rather than blocking
// the queue forever. Any error other than an infeasible placement aborts the
// run.
func Run(a *nearest.Allocator, m *mesh.Mesh, subs []Submission, logger *zap.Logger) (*Report, error) {
	if a == nil || m == nil {
		panic("allocator and mesh must be non-nil")
	}
	if a.Machine() != mesh.Machine(m) {
		panic("allocator must place onto the simulated mesh")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &simulation{
		allocator: a,
		mesh:      m,
		logger:    logger,
		records:   make([]Record, len(subs)),
	}
	for i := range subs {
		if subs[i].Job == nil {
			panic(fmt.Sprintf("submission %d has no job", i))
		}
		if subs[i].Arrival < 0 || subs[i].Runtime < 0 {
			panic(fmt.Sprintf("submission %d has a negative arrival or runtime", i))
		}
		s.records[i].Submission = &subs[i]
		s.schedule(subs[i].Arrival, func() {
			s.arrive(i)
		})
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	return newReport(s.records, s.now, s.peakBusy, m.NumNodes()), nil
}

type simulation struct {
	allocator *nearest.Allocator
	mesh      *mesh.Mesh
	logger    *zap.Logger

	now      time.Duration
	seq      int
	events   heap.Heap[event, heap.Min]
	waiting  deque.Deque[int]
	running  int
	busy     int
	peakBusy int
	err      error

	records []Record
}

func (s *simulation) schedule(at time.Duration, fn func()) {
	heap.PushOrderable(&s.events, event{Time: at, Seq: s.seq, Func: fn})
	s.seq++
}

func (s *simulation) run() error {
	for s.err == nil {
		ev, ok := heap.PopOrderable(&s.events)
		if !ok {
			break
		}
		s.now = ev.Time
		ev.Func()
	}
	return s.err
}

func (s *simulation) arrive(i int) {
	s.logger.Debug("Job arrived",
		zap.Duration("time", s.now),
		zap.Stringer("job", s.records[i].Submission),
		zap.Int("queued", s.waiting.Len()))
	s.waiting.PushBack(i)
	s.admit()
}

// admit places waiting jobs in arrival order until the head of the queue
// does not fit.
func (s *simulation) admit() {
	for s.waiting.Len() > 0 && s.err == nil {
		i := s.waiting.Front()
		rec := &s.records[i]
		alloc, err := s.allocator.Allocate(rec.Submission.Job)
		if err != nil {
			if !nearest.IsInfeasible(err) {
				s.err = fmt.Errorf("placing %v: %w", rec.Submission, err)
				return
			}
			if s.running > 0 {
				// Wait for a completion to free nodes.
				return
			}
			// Nothing will ever be released, so the job cannot run.
			s.waiting.PopFront()
			rec.Start, rec.Finish = s.now, s.now
			s.logger.Info("Job rejected",
				zap.Duration("time", s.now),
				zap.Stringer("job", rec.Submission),
				zap.Error(err))
			continue
		}
		s.waiting.PopFront()
		s.start(i, alloc)
	}
}

func (s *simulation) start(i int, alloc *nearest.Allocation) {
	rec := &s.records[i]
	nodes := alloc.Nodes()
	s.mesh.Occupy(nodes...)
	s.running++
	s.busy += len(nodes)
	s.peakBusy = max(s.peakBusy, s.busy)

	rec.Admitted = true
	rec.Start = s.now
	rec.Finish = s.now + rec.Submission.Runtime
	rec.Nodes = nodes
	rec.Cost = alloc.Cost

	s.logger.Debug("Job started",
		zap.Duration("time", s.now),
		zap.Stringer("job", rec.Submission),
		zap.Duration("wait", rec.Wait()),
		zap.Ints("nodes", nodes),
		zap.Int("cost", alloc.Cost))

	s.schedule(rec.Finish, func() {
		s.finish(i)
	})
}

func (s *simulation) finish(i int) {
	rec := &s.records[i]
	s.mesh.Release(rec.Nodes...)
	s.running--
	s.busy -= len(rec.Nodes)
	s.logger.Debug("Job finished",
		zap.Duration("time", s.now),
		zap.Stringer("job", rec.Submission),
		zap.Int("free_nodes", s.mesh.FreeCount()))
	s.admit()
}
