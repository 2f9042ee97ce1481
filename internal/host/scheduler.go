// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package host

import (
	"context"
	"errors"
	"sync"
)

// ErrSchedulerStopped is returned for jobs submitted after Stop.
var ErrSchedulerStopped = errors.New("scheduler stopped")

// Job is a unit of work run by a Scheduler.
type Job func() Result

// FIFOScheduler runs submitted jobs one at a time, in submission order, on a
// single worker goroutine.
type FIFOScheduler struct {
	name string

	mu      sync.Mutex
	queue   chan *queued
	stopped bool
	done    chan struct{}
}

type queued struct {
	job    Job
	result chan Result
}

// NewFIFOScheduler starts a scheduler named name.
func NewFIFOScheduler(name string) *FIFOScheduler {
	s := &FIFOScheduler{
		name:  name,
		queue: make(chan *queued, 64),
		done:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// Name identifies the scheduler.
func (s *FIFOScheduler) Name() string { return s.name }

func (s *FIFOScheduler) loop() {
	defer close(s.done)
	for q := range s.queue {
		q.result <- q.job()
	}
}

// Submit enqueues job and waits for its result. If ctx ends while the job is
// still queued or running, Submit returns ctx.Err(); a running job is not
// interrupted and its result is discarded.
func (s *FIFOScheduler) Submit(ctx context.Context, job Job) (Result, error) {
	q := &queued{job: job, result: make(chan Result, 1)}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return Result{}, ErrSchedulerStopped
	}
	select {
	case s.queue <- q:
		s.mu.Unlock()
	case <-ctx.Done():
		s.mu.Unlock()
		return Result{}, ctx.Err()
	}

	select {
	case r := <-q.result:
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Stop rejects new jobs, lets queued ones finish, and waits for the worker.
func (s *FIFOScheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.queue)
	}
	s.mu.Unlock()
	<-s.done
}
