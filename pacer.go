package main

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	DEFAULT_MILLIS_PER_FRAME = 100 // Tick interval
	TICK_BUFFER              = 1   // At most one tick waits for the drain loop
)

// Pacer emits a tick after every interval of sleep.
// Ticks are fire-and-forget: if the previous tick has not been taken yet the
// new one is dropped, so the pacer never waits on its listener.
type Pacer struct {
	interval time.Duration
	ticks    chan struct{}
	emitted  uint64 // Ticks delivered to the mailbox
	dropped  uint64 // Ticks nobody was ready for
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		ticks:    make(chan struct{}, TICK_BUFFER),
	}
}

// Ticks is the receive side consumed by the drain loop
func (p *Pacer) Ticks() <-chan struct{} {
	return p.ticks
}

// Run sleeps, ticks, and repeats until ctx is cancelled.
// The interval runs from the end of one sleep to the start of the next.
// A zero interval sends each tick blocking, so the loop is paced by the
// drain loop instead of spinning.
func (p *Pacer) Run(ctx context.Context) error {
	if p.interval <= 0 {
		for {
			select {
			case p.ticks <- struct{}{}:
				atomic.AddUint64(&p.emitted, 1)
			case <-ctx.Done():
				return nil
			}
		}
	}

	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil
		}

		select {
		case p.ticks <- struct{}{}:
			atomic.AddUint64(&p.emitted, 1)
		default:
			atomic.AddUint64(&p.dropped, 1)
		}

		timer.Reset(p.interval)
	}
}

// Unpaced reports whether ticks are emitted back to back with no interval
func (p *Pacer) Unpaced() bool {
	return p.interval <= 0
}

// Emitted reports ticks delivered so far
func (p *Pacer) Emitted() uint64 {
	return atomic.LoadUint64(&p.emitted)
}

// Dropped reports ticks discarded because the mailbox was full
func (p *Pacer) Dropped() uint64 {
	return atomic.LoadUint64(&p.dropped)
}
