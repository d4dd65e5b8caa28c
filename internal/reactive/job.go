package reactive

import "context"

// Job identifies one launch of a Slot
type Job uint64

// Slot holds at most one running job. Launching a new job cancels the
// previous one first, and results of a superseded job never reach the
// handler. A Slot must only be used from the store's handler.
type Slot struct {
	current Job
	cancel  context.CancelFunc
}

type jobResult struct {
	slot *Slot
	job  Job
	msg  Msg
}

// Launch cancels the running job, if any, and returns a command running
// start under a fresh child of parent. Pass the ctx the handler received.
// The returned command must be handed back to the store.
func (s *Slot) Launch(parent context.Context, start func(ctx context.Context) Cmd) Cmd {
	s.Cancel()

	s.current++
	job := s.current
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	cmd := start(ctx)
	if cmd == nil {
		s.finish(job)
		return nil
	}
	return s.tag(ctx, job, cmd)
}

// tag runs cmd under the job context and wraps its message with the job id
func (s *Slot) tag(ctx context.Context, job Job, cmd Cmd) Cmd {
	return func(context.Context) Msg {
		msg := cmd(ctx)
		if c, ok := msg.(chainMsg); ok {
			c.next = s.tag(ctx, job, c.next)
			msg = c
		}
		return jobResult{slot: s, job: job, msg: msg}
	}
}

// Cancel stops the running job without starting another
func (s *Slot) Cancel() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Running reports whether a job is in flight
func (s *Slot) Running() bool {
	return s.cancel != nil
}

// Current returns the id of the most recent launch
func (s *Slot) Current() Job {
	return s.current
}

func (s *Slot) isCurrent(job Job) bool {
	return s.cancel != nil && s.current == job
}

// finish releases the context of a job that completed on its own
func (s *Slot) finish(job Job) {
	if s.current == job {
		s.Cancel()
	}
}
