package main

import (
	"context"
	"log"
	"sync/atomic"
)

// Sizer reports the current display dimensions in cells.
// tcell.Screen satisfies it directly.
type Sizer interface {
	Size() (width, height int)
}

// Simulation owns the live grid and produces frames as fast as it can.
// Nothing else reads or writes the grid; only cloned frames leave it.
type Simulation struct {
	grid       Grid
	engine     Stepper
	sizer      Sizer
	out        chan<- Frame // To relay intake
	generation uint64       // Last completed generation
	logger     *log.Logger
}

func NewSimulation(grid Grid, engine Stepper, sizer Sizer, out chan<- Frame, logger *log.Logger) *Simulation {
	return &Simulation{
		grid:   grid,
		engine: engine,
		sizer:  sizer,
		out:    out,
		logger: logger,
	}
}

// Advance runs one iteration: follow the display size, step, snapshot
func (s *Simulation) Advance() Frame {
	width, height := s.sizer.Size()
	if width != s.grid.Width() || height != s.grid.Height() {
		resized := s.grid.Resize(width, height)
		if len(resized) != 0 || len(s.grid) != 0 {
			s.logger.Printf("resize %dx%d -> %dx%d", s.grid.Width(), s.grid.Height(), width, height)
		}
		s.grid = resized
	}

	s.grid = s.engine.Step(s.grid)
	atomic.AddUint64(&s.generation, 1)
	return NewFrame(atomic.LoadUint64(&s.generation), s.grid)
}

// Run produces frames until ctx is cancelled.
// The send waits only on the bounded mailbox, which the intake loop empties
// into the relay buffer without ever blocking.
func (s *Simulation) Run(ctx context.Context) error {
	defer close(s.out)
	for {
		frame := s.Advance()
		select {
		case s.out <- frame:
		case <-ctx.Done():
			return nil
		}
	}
}

// Generation reports the last completed generation
func (s *Simulation) Generation() uint64 {
	return atomic.LoadUint64(&s.generation)
}
