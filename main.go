package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit status so deferred cleanup always executes
func run(args []string) int {
	cfg, err := ParseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "termlife:", err)
		return 2
	}

	logger, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "termlife:", err)
		return 1
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "termlife: creating screen:", err)
		return 1
	}
	term, err := NewTerminal(screen, DEFAULT_ALPHABET)
	if err != nil {
		fmt.Fprintln(os.Stderr, "termlife:", err)
		return 1
	}

	// Restore the terminal on every path out, including a panic in main
	defer func() {
		if r := recover(); r != nil {
			term.Close()
			panic(r)
		}
		term.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	pipeline, err := NewPipeline(cfg, term, term, logger)
	if err != nil {
		term.Close()
		fmt.Fprintln(os.Stderr, "termlife:", err)
		return 1
	}
	if cfg.Stats {
		term.SetStatus(func() string {
			s := pipeline.Stats()
			return fmt.Sprintf("buffered %d/%d  evicted %d  dropped ticks %d", s.Buffered, s.Capacity, s.Evictions, s.DroppedTicks)
		})
	}

	go term.ListenForQuit(quit)

	err = pipeline.Run(ctx)
	term.Close() // before printing, so the message lands on the main screen
	if err != nil {
		fmt.Fprintf(os.Stderr, "termlife: %v (seed %d)\n", err, pipeline.Seed())
		return 1
	}
	return 0
}

// Logs go to a file or nowhere: the screen owns stdout and stderr while running
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log: %w", err)
	}
	return log.New(f, "termlife: ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}
