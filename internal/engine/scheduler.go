package engine

import (
	"sync"
	"time"
)

// DefaultRefresh stands in for the display refresh when no target frame
// rate is set.
const DefaultRefresh = time.Second / 60

// Scheduler arranges for frame callbacks. Request schedules fn to run once
// and returns a function that cancels it if it has not run yet.
type Scheduler interface {
	Request(fn func(now time.Time)) (cancel func())
}

// NewScheduler picks display-synchronized scheduling when fps <= 0 and
// throttled scheduling otherwise.
func NewScheduler(fps float64) Scheduler {
	display := &DisplayScheduler{Interval: DefaultRefresh}
	if fps <= 0 {
		return display
	}
	return NewThrottledScheduler(fps, display)
}

// DisplayScheduler fires on every refresh tick.
type DisplayScheduler struct {
	Interval time.Duration
}

func (d *DisplayScheduler) Request(fn func(now time.Time)) func() {
	t := time.AfterFunc(d.Interval, func() { fn(time.Now()) })
	return func() { t.Stop() }
}

// ThrottledScheduler waits for display ticks but delivers at most one frame
// per interval. A tick that arrives early defers a timer for the remainder
// instead of spinning.
type ThrottledScheduler struct {
	display  Scheduler
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewThrottledScheduler(fps float64, display Scheduler) *ThrottledScheduler {
	return &ThrottledScheduler{
		display:  display,
		interval: time.Duration(float64(time.Second) / fps),
	}
}

func (s *ThrottledScheduler) Request(fn func(now time.Time)) func() {
	var (
		mu      sync.Mutex
		stopped bool
		pending func()
	)

	var check func(now time.Time)
	check = func(now time.Time) {
		s.mu.Lock()
		wait := s.interval - now.Sub(s.last)
		if s.last.IsZero() || wait <= 0 {
			wait = 0
			s.last = now
		}
		s.mu.Unlock()

		if wait == 0 {
			mu.Lock()
			skip := stopped
			mu.Unlock()
			if !skip {
				fn(now)
			}
			return
		}

		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		t := time.AfterFunc(wait, func() { check(time.Now()) })
		pending = func() { t.Stop() }
	}

	mu.Lock()
	pending = s.display.Request(check)
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		if pending != nil {
			pending()
		}
	}
}
