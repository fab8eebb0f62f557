package table

import (
	"time"

	"github.com/coder/quartz"
)

// Scheduler holds at most one delayed task. A task that is in flight blocks
// new ones until it fires or is cancelled, which keeps a bot from acting
// twice on the same turn.
//
// Scheduler is not safe for concurrent use; the owner calls it under its own
// lock, including from the fire callback.
type Scheduler struct {
	clock    quartz.Clock
	tag      string
	timer    *quartz.Timer
	seq      uint64
	inFlight bool
}

// NewScheduler returns a scheduler driven by clock. The tag labels its
// timers so tests can trap them.
func NewScheduler(clock quartz.Clock, tag string) *Scheduler {
	return &Scheduler{clock: clock, tag: tag}
}

// Schedule arranges for fire to be called with the task id after d. It
// reports false, doing nothing, when a task is already in flight.
func (s *Scheduler) Schedule(d time.Duration, fire func(id uint64)) bool {
	if s.inFlight {
		return false
	}
	s.seq++
	id := s.seq
	s.inFlight = true
	s.timer = s.clock.AfterFunc(d, func() { fire(id) }, s.tag)
	return true
}

// Claim is called by a fired task under the owner's lock. It reports whether
// id is still the live task and, if so, clears the in-flight flag.
func (s *Scheduler) Claim(id uint64) bool {
	if !s.inFlight || id != s.seq {
		return false
	}
	s.inFlight = false
	s.timer = nil
	return true
}

// Cancel stops the pending task. A task that already fired will fail Claim.
func (s *Scheduler) Cancel() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = nil
	s.inFlight = false
	s.seq++
}

// InFlight reports whether a task is waiting to fire.
func (s *Scheduler) InFlight() bool {
	return s.inFlight
}
