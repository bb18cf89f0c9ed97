package engine

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestNewSchedulerSelection(t *testing.T) {
	if _, ok := NewScheduler(0).(*DisplayScheduler); !ok {
		t.Fatal("expected display scheduler without a target fps")
	}
	s, ok := NewScheduler(20).(*ThrottledScheduler)
	if !ok {
		t.Fatal("expected throttled scheduler with a target fps")
	}
	if s.interval != 50*time.Millisecond {
		t.Fatalf("expected 50ms interval, got %v", s.interval)
	}
}

func TestThrottledSchedulerDefersEarlyTicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	display := &manualScheduler{}
	s := NewThrottledScheduler(20, display)
	delivered := make(chan time.Time, 4)
	deliver := func(now time.Time) { delivered <- now }

	t0 := time.Now()
	s.Request(deliver)
	display.fire(t0)
	select {
	case <-delivered:
	default:
		t.Fatal("expected the first tick to deliver immediately")
	}

	// A tick 10ms later is too early; it must be deferred, not dropped.
	s.Request(deliver)
	display.fire(t0.Add(10 * time.Millisecond))
	select {
	case <-delivered:
		t.Fatal("expected early tick to be deferred")
	default:
	}
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("expected deferred frame to arrive")
	}
}

func TestThrottledSchedulerCancelStopsDeferredFrame(t *testing.T) {
	defer goleak.VerifyNone(t)

	display := &manualScheduler{}
	s := NewThrottledScheduler(10, display)
	s.Request(func(time.Time) {})
	display.fire(time.Now())

	delivered := make(chan struct{}, 1)
	cancel := s.Request(func(time.Time) { delivered <- struct{}{} })
	display.fire(time.Now())
	cancel()

	select {
	case <-delivered:
		t.Fatal("expected cancelled frame not to be delivered")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDisplaySchedulerCancel(t *testing.T) {
	d := &DisplayScheduler{Interval: 20 * time.Millisecond}
	fired := make(chan struct{}, 1)
	cancel := d.Request(func(time.Time) { fired <- struct{}{} })
	cancel()
	select {
	case <-fired:
		t.Fatal("expected cancelled callback not to run")
	case <-time.After(60 * time.Millisecond):
	}

	d.Request(func(time.Time) { fired <- struct{}{} })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("expected callback to run")
	}
}
