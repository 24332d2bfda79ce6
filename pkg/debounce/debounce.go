// Package debounce reconciles a locally edited value with an externally
// controlled one. Edits update the local value immediately and settle
// into a single emission after a quiet interval; external updates that
// merely echo a prior emission never clobber in-progress edits.
package debounce

import (
	"sync"
	"time"
)

// Synchronizer maintains a locally editable value alongside an external
// source of truth. At most one timer is pending at a time; each edit
// cancels and restarts it. Safe for concurrent use.
type Synchronizer struct {
	mu          sync.Mutex
	delay       time.Duration
	emit        func(string)
	local       string
	lastEmitted string
	timer       *time.Timer
	generation  uint64
}

// New creates a Synchronizer seeded with the external value. emit is
// called with the settled value after delay elapses without further
// edits; it runs on the timer goroutine.
func New(value string, delay time.Duration, emit func(string)) *Synchronizer {
	return &Synchronizer{
		delay:       delay,
		emit:        emit,
		local:       value,
		lastEmitted: value,
	}
}

// Edit records a local edit. The local value updates immediately and
// the pending emission, if any, is rescheduled.
func (s *Synchronizer) Edit(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.local = value
	s.cancelLocked()

	gen := s.generation
	s.timer = time.AfterFunc(s.delay, func() { s.settle(gen) })
}

// Sync delivers an external value change. An echo of this component's
// own last emission is ignored so it cannot reset concurrent edits; a
// genuine external change replaces the local value and cancels any
// pending emission.
func (s *Synchronizer) Sync(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == s.lastEmitted {
		return
	}

	s.cancelLocked()
	s.local = value
	s.lastEmitted = value
}

// Value returns the current local value.
func (s *Synchronizer) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local
}

// Flush emits any pending edit immediately instead of waiting out the delay.
func (s *Synchronizer) Flush() {
	s.mu.Lock()
	s.settleLocked()
}

// Stop cancels any pending emission without emitting.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// settle runs from the debounce timer. A stale generation means the
// timer was superseded by a later edit, sync, or stop.
func (s *Synchronizer) settle(gen uint64) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.settleLocked()
}

// settleLocked emits the current local value if it changed since the
// last emission. Unlocks the mutex: the callback runs outside the lock
// so it may re-enter the synchronizer.
func (s *Synchronizer) settleLocked() {
	s.cancelLocked()

	value := s.local
	changed := value != s.lastEmitted
	if changed {
		s.lastEmitted = value
	}
	emit := s.emit
	s.mu.Unlock()

	if changed && emit != nil {
		emit(value)
	}
}

func (s *Synchronizer) cancelLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
