package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"
)

const (
	DEFAULT_RATIO = 0.12 // Probability a cell starts Living
	MAILBOX_SIZE  = 100  // Capacity of each delivery channel
)

var ErrInvalidConfig = errors.New("invalid config")

// Configuration for the pipeline
type Config struct {
	Ratio          float64 // Seeding probability in [0, 1]
	MillisPerFrame int     // Tick interval, 0 drains as fast as frames render
	Capacity       int     // Relay buffer capacity
	Mailbox        int     // Delivery channel capacity
	Seed           uint64  // PRNG seed, 0 picks one from the clock
	Engine         string  // naive, parallel or fft
	Workers        int     // Bands for the parallel engine
	Stats          bool    // Draw a status line over the first row
	LogFile        string  // Log destination, empty discards
}

// DefaultConfig returns the defaults used when no flag is given
func DefaultConfig() Config {
	return Config{
		Ratio:          DEFAULT_RATIO,
		MillisPerFrame: DEFAULT_MILLIS_PER_FRAME,
		Capacity:       RELAY_CAPACITY,
		Mailbox:        MAILBOX_SIZE,
		Engine:         ENGINE_NAIVE,
		Workers:        runtime.NumCPU(),
	}
}

// Validate rejects values the pipeline cannot run with
func (c Config) Validate() error {
	switch {
	case !(c.Ratio >= 0 && c.Ratio <= 1): // also rejects NaN
		return fmt.Errorf("%w: ratio %v outside [0, 1]", ErrInvalidConfig, c.Ratio)
	case c.MillisPerFrame < 0:
		return fmt.Errorf("%w: millis-per-frame %d is negative", ErrInvalidConfig, c.MillisPerFrame)
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d must be positive", ErrInvalidConfig, c.Capacity)
	case c.Mailbox <= 0:
		return fmt.Errorf("%w: mailbox %d must be positive", ErrInvalidConfig, c.Mailbox)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers %d must be positive", ErrInvalidConfig, c.Workers)
	}
	switch c.Engine {
	case ENGINE_NAIVE, ENGINE_PARALLEL, ENGINE_FFT:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownEngine, c.Engine)
	}
	return nil
}

// FrameInterval converts MillisPerFrame to a duration
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.MillisPerFrame) * time.Millisecond
}

// ParseFlags reads args into a validated Config.
// -h returns flag.ErrHelp after printing usage to output.
func ParseFlags(args []string, output io.Writer) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("termlife", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Float64Var(&cfg.Ratio, "ratio", cfg.Ratio, "Probability a cell starts Living.")
	fs.Float64Var(&cfg.Ratio, "r", cfg.Ratio, "Shorthand for -ratio.")
	fs.IntVar(&cfg.MillisPerFrame, "millis-per-frame", cfg.MillisPerFrame, "Milliseconds between frames.")
	fs.IntVar(&cfg.MillisPerFrame, "m", cfg.MillisPerFrame, "Shorthand for -millis-per-frame.")
	fs.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Frames buffered between simulation and display.")
	fs.IntVar(&cfg.Mailbox, "mailbox", cfg.Mailbox, "Capacity of each delivery channel.")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the initial grid (0 picks one from the clock).")
	fs.StringVar(&cfg.Engine, "engine", cfg.Engine, "Step engine: naive, parallel or fft.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Goroutines used by the parallel engine.")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "Draw a status line over the first row.")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to this file.")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidConfig, fs.Args())
	}
	return cfg, cfg.Validate()
}
