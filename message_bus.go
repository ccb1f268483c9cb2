package main

import (
	"context"
	"fmt"
	"sync/atomic"
)

// StartIntake moves frames from the simulation mailbox into the relay buffer.
// Deposit never blocks, so the simulation is never held up by a full relay;
// the oldest buffered frame is evicted instead.
func (p *Pipeline) StartIntake(ctx context.Context) error {
	for {
		select {
		case frame, ok := <-p.produced:
			if !ok {
				if ctx.Err() != nil {
					return nil // simulation closed it on shutdown
				}
				return fmt.Errorf("%w: simulation mailbox", ErrChannelClosed)
			}
			p.relay.Deposit(frame)
			atomic.AddUint64(&p.deposits, 1)
		case <-ctx.Done():
			return nil
		}
	}
}

// StartForwarder drains at most one frame per tick and forwards it to the
// display mailbox. An empty relay on a tick is normal under-production.
// The relay lock is released before the forward, which may wait on the display.
// Without an interval an empty drain parks until the next deposit.
func (p *Pipeline) StartForwarder(ctx context.Context) error {
	ticks := p.pacer.Ticks()
	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return fmt.Errorf("%w: tick mailbox", ErrChannelClosed)
			}
		case <-ctx.Done():
			return nil
		}

		frame, ok := p.relay.DrainOne()
		if !ok {
			atomic.AddUint64(&p.emptyDrains, 1)
			if p.pacer.Unpaced() {
				// Ticks are always ready without an interval; wait for a deposit instead
				select {
				case <-p.relay.Ready():
				case <-ctx.Done():
					return nil
				}
			}
			continue
		}

		select {
		case p.display <- frame:
			atomic.AddUint64(&p.forwarded, 1)
		case <-ctx.Done():
			return nil
		}
	}
}

// StartDisplay renders every forwarded frame in arrival order.
// It never signals back to the relay.
func (p *Pipeline) StartDisplay(ctx context.Context) error {
	for {
		select {
		case frame, ok := <-p.display:
			if !ok {
				return fmt.Errorf("%w: display mailbox", ErrChannelClosed)
			}
			if err := p.sink.Render(frame); err != nil {
				return fmt.Errorf("render generation %d: %w", frame.Generation, err)
			}
			atomic.AddUint64(&p.rendered, 1)
			atomic.StoreUint64(&p.lastRendered, frame.Generation)
		case <-ctx.Done():
			return nil
		}
	}
}
