package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

var ErrChannelClosed = errors.New("channel closed")

// Renderer draws one frame and returns once it is on screen
type Renderer interface {
	Render(frame Frame) error
}

// Pipeline connects simulation to display through the relay buffer.
//
//	Simulation -> produced -> intake -> relay <- tick -> forwarder -> display -> Renderer
//
// Frames in flight are bounded by the relay capacity plus both mailbox
// capacities plus one frame in hand per loop, whatever the simulation speed.
type Pipeline struct {
	relay *RelayBuffer[Frame] // Oldest-evicting frame queue
	sim   *Simulation
	pacer *Pacer
	sink  Renderer

	produced chan Frame // Simulation -> intake
	display  chan Frame // Forwarder -> display loop

	seed   uint64
	logger *log.Logger

	deposits     uint64 // Frames moved into the relay
	emptyDrains  uint64 // Ticks that found the relay empty
	forwarded    uint64 // Frames handed to the display mailbox
	rendered     uint64 // Frames drawn
	lastRendered uint64 // Generation of the last drawn frame
}

// Stats is a point-in-time snapshot of the pipeline counters
type Stats struct {
	Generations  uint64
	Deposits     uint64
	Evictions    uint64
	Buffered     int
	Capacity     int
	Ticks        uint64
	DroppedTicks uint64
	EmptyDrains  uint64
	Forwarded    uint64
	Rendered     uint64
	LastRendered uint64
}

// NewPipeline seeds a grid at the current display size and wires every stage
func NewPipeline(cfg Config, sizer Sizer, sink Renderer, logger *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := NewStepper(cfg.Engine, cfg.Workers)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	width, height := sizer.Size()
	grid := SeedGrid(width, height, cfg.Ratio, rng)

	p := &Pipeline{
		relay:    NewRelayBuffer[Frame](cfg.Capacity),
		pacer:    NewPacer(cfg.FrameInterval()),
		sink:     sink,
		produced: make(chan Frame, cfg.Mailbox),
		display:  make(chan Frame, cfg.Mailbox),
		seed:     seed,
		logger:   logger,
	}
	p.sim = NewSimulation(grid, engine, sizer, p.produced, logger)

	logger.Printf("pipeline ready: %dx%d engine=%s seed=%d ratio=%v capacity=%d mailbox=%d interval=%v",
		width, height, cfg.Engine, seed, cfg.Ratio, cfg.Capacity, cfg.Mailbox, cfg.FrameInterval())
	return p, nil
}

// Run drives all stages until ctx is cancelled or one of them fails.
// Cancellation returns nil; the first failure cancels the other stages and
// is returned. A Pipeline runs once.
func (p *Pipeline) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(supervise("simulation", func() error { return p.sim.Run(ctx) }))
	g.Go(supervise("intake", func() error { return p.StartIntake(ctx) }))
	g.Go(supervise("pacer", func() error { return p.pacer.Run(ctx) }))
	g.Go(supervise("forwarder", func() error { return p.StartForwarder(ctx) }))
	g.Go(supervise("display", func() error { return p.StartDisplay(ctx) }))

	err := g.Wait()
	if err != nil {
		p.logger.Printf("pipeline failed: %v", err)
	}
	p.logger.Printf("pipeline stopped: %+v", p.Stats())
	return err
}

// Turn a stage failure or panic into an error for the group
func supervise(name string, stage func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		if stageErr := stage(); stageErr != nil {
			return fmt.Errorf("%s: %w", name, stageErr)
		}
		return nil
	}
}

// Seed used for the initial grid, for reproducing a run with -seed
func (p *Pipeline) Seed() uint64 {
	return p.seed
}

// Stats snapshots the counters of every stage
func (p *Pipeline) Stats() Stats {
	return Stats{
		Generations:  p.sim.Generation(),
		Deposits:     atomic.LoadUint64(&p.deposits),
		Evictions:    p.relay.Evictions(),
		Buffered:     p.relay.Len(),
		Capacity:     p.relay.Cap(),
		Ticks:        p.pacer.Emitted(),
		DroppedTicks: p.pacer.Dropped(),
		EmptyDrains:  atomic.LoadUint64(&p.emptyDrains),
		Forwarded:    atomic.LoadUint64(&p.forwarded),
		Rendered:     atomic.LoadUint64(&p.rendered),
		LastRendered: atomic.LoadUint64(&p.lastRendered),
	}
}
