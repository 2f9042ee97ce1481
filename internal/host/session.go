// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package host

import "context"

// Session is an opened interpreter bound to its FIFO scheduler.
type Session struct {
	Registration Registration
	Properties   Properties

	interp Interpreter
	sched  *FIFOScheduler
}

// Interpreter returns the underlying interpreter.
func (s *Session) Interpreter() Interpreter { return s.interp }

// Scheduler returns the session's FIFO scheduler.
func (s *Session) Scheduler() *FIFOScheduler { return s.sched }

// Run queues text behind earlier paragraphs and returns its result. Scheduling
// failures are reported as an Error result, like interpreter failures.
// Cancelling ctx stops the wait, but a paragraph already handed to the
// interpreter runs to completion; its context keeps ctx's values only.
func (s *Session) Run(ctx context.Context, text string) Result {
	runCtx := context.WithoutCancel(ctx)
	res, err := s.sched.Submit(ctx, func() Result {
		return s.interp.Interpret(runCtx, text)
	})
	if err != nil {
		return Result{Code: Error, Message: err.Error()}
	}
	return res
}

// Cancel forwards a cancellation request to the interpreter.
func (s *Session) Cancel() { s.interp.Cancel() }

// Close stops the scheduler, then closes the interpreter.
func (s *Session) Close() error {
	s.sched.Stop()
	return s.interp.Close()
}
