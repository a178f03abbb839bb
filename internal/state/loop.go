package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopRunning is returned by Run when the loop is already running.
var ErrLoopRunning = errors.New("loop already running")

// Phase identifies one redraw tick.
type Phase struct {
	N   uint64
	Now time.Duration
}

// TickFunc is invoked once per phase.
type TickFunc func(Phase)

// Loop drives a TickFunc at a fixed interval. Each phase captures now once
// and hands it to the tick function. A loop can be run again after Run
// returns; the phase counter carries on.
type Loop struct {
	clock     Clock
	interval  time.Duration
	maxFrames uint64
	tick      TickFunc
	meter     *FrameMeter

	frames  atomic.Uint64
	running atomic.Bool
}

// NewLoop creates a loop ticking every interval.
func NewLoop(clock Clock, interval time.Duration, tick TickFunc) *Loop {
	return &Loop{
		clock:    clock,
		interval: interval,
		tick:     tick,
		meter:    NewFrameMeter(60),
	}
}

// SetMaxFrames bounds how many phases a single Run executes; 0 means no bound.
func (l *Loop) SetMaxFrames(n uint64) { l.maxFrames = n }

// Step runs exactly one phase.
func (l *Loop) Step() Phase {
	p := Phase{N: l.frames.Add(1), Now: l.clock.Now()}
	l.meter.Mark(p.Now)
	if l.tick != nil {
		l.tick(p)
	}
	return p
}

// Run ticks on a time.Ticker until ctx is done or the frame bound is hit.
func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.interval)
	defer t.Stop()
	return l.RunOn(ctx, t.C)
}

// RunOn ticks once per value received on ticks. It returns nil when the
// frame bound is reached or ticks is closed, and ctx.Err() on cancellation.
func (l *Loop) RunOn(ctx context.Context, ticks <-chan time.Time) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.running.Store(false)

	var done uint64
	for {
		if l.maxFrames > 0 && done >= l.maxFrames {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			l.Step()
			done++
		}
	}
}

// Frames returns the number of phases run so far.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// FPS returns the measured tick rate.
func (l *Loop) FPS() float64 { return l.meter.FPS() }

// FrameMeter measures a tick rate over a sliding window of timestamps.
type FrameMeter struct {
	mu    sync.Mutex
	marks []time.Duration
	next  int
	full  bool
}

// NewFrameMeter keeps the last size marks.
func NewFrameMeter(size int) *FrameMeter {
	if size < 2 {
		size = 2
	}
	return &FrameMeter{marks: make([]time.Duration, size)}
}

// Mark records a tick at now.
func (m *FrameMeter) Mark(now time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks[m.next] = now
	m.next = (m.next + 1) % len(m.marks)
	if m.next == 0 {
		m.full = true
	}
}

// FPS returns ticks per second across the window, 0 until two marks exist.
func (m *FrameMeter) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.next
	oldest := 0
	if m.full {
		n = len(m.marks)
		oldest = m.next
	}
	if n < 2 {
		return 0
	}
	newest := (m.next - 1 + len(m.marks)) % len(m.marks)
	span := m.marks[newest] - m.marks[oldest]
	if span <= 0 {
		return 0
	}
	return float64(n-1) / span.Seconds()
}
