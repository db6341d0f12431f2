package performance

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DefaultScrollingDelay is the quiet period after the last scroll
// notification before scrolling is considered finished
const DefaultScrollingDelay = 150 * time.Millisecond

// Debouncer handles debouncing of rapid updates to improve performance
type Debouncer struct {
	clock      clock.WithDelayedExecution
	delay      time.Duration
	timer      clock.Timer
	callback   func()
	mutex      sync.Mutex
	pending    bool
	generation uint64
}

// NewDebouncer creates a new debouncer with the specified delay
func NewDebouncer(clk clock.WithDelayedExecution, delay time.Duration, callback func()) *Debouncer {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Debouncer{
		clock:    clk,
		delay:    delay,
		callback: callback,
	}
}

// Trigger (re)arms the trailing timer
func (d *Debouncer) Trigger() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = true
	d.generation++
	generation := d.generation

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mutex.Lock()
		// a timer that lost the race with Stop must not fire for a newer trigger
		fire := d.pending && d.generation == generation
		if fire {
			d.pending = false
			d.timer = nil
		}
		callback := d.callback
		d.mutex.Unlock()

		if fire && callback != nil {
			callback()
		}
	})
}

// Cancel cancels any pending debounced call
func (d *Debouncer) Cancel() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = false
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// IsPending returns whether a call is pending
func (d *Debouncer) IsPending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.pending
}

// ScrollingState derives an "is actively scrolling" flag from a burst of
// scroll notifications. The flag is advisory and never affects which items
// are rendered.
type ScrollingState struct {
	mu        sync.Mutex
	scrolling bool
	debouncer *Debouncer
	onChange  func(scrolling bool)
}

// NewScrollingState creates a scrolling state with a trailing quiet period of
// delay. onChange, if set, is called on every transition; the transition to
// false is delivered from the clock's timer goroutine.
func NewScrollingState(clk clock.WithDelayedExecution, delay time.Duration, onChange func(scrolling bool)) *ScrollingState {
	if delay <= 0 {
		delay = DefaultScrollingDelay
	}
	s := &ScrollingState{onChange: onChange}
	s.debouncer = NewDebouncer(clk, delay, s.settle)
	return s
}

// Notify records a scroll notification
func (s *ScrollingState) Notify() {
	s.mu.Lock()
	started := !s.scrolling
	s.scrolling = true
	s.debouncer.Trigger()
	s.mu.Unlock()

	if started && s.onChange != nil {
		s.onChange(true)
	}
}

// IsScrolling returns whether a scroll notification arrived within the
// quiet period
func (s *ScrollingState) IsScrolling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrolling
}

// Stop cancels the pending timer and clears the flag without notifying
func (s *ScrollingState) Stop() {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.scrolling = false
	s.mu.Unlock()
}

// settle runs when the quiet period elapses. A Notify that re-armed the
// timer after it fired keeps the flag set; its own timer settles it.
func (s *ScrollingState) settle() {
	s.mu.Lock()
	if s.debouncer.IsPending() {
		s.mu.Unlock()
		return
	}
	changed := s.scrolling
	s.scrolling = false
	s.mu.Unlock()

	if changed && s.onChange != nil {
		s.onChange(false)
	}
}
