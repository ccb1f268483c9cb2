package main

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid, got %v", err)
	}
	if cfg.Ratio != DEFAULT_RATIO || cfg.MillisPerFrame != DEFAULT_MILLIS_PER_FRAME {
		t.Fatalf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Capacity != RELAY_CAPACITY || cfg.Mailbox != MAILBOX_SIZE || cfg.Engine != ENGINE_NAIVE {
		t.Fatalf("Unexpected defaults: %+v", cfg)
	}
}

func TestParseFlagsWithoutArgs(t *testing.T) {
	cfg, err := ParseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Expected defaults, got %+v", cfg)
	}
}

func TestParseFlagsLongAndShortNames(t *testing.T) {
	cfg, err := ParseFlags([]string{"-r", "0.3", "-m", "50"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Ratio != 0.3 || cfg.MillisPerFrame != 50 {
		t.Fatalf("Shorthands not applied: %+v", cfg)
	}

	cfg, err = ParseFlags([]string{
		"-ratio", "0.2",
		"-millis-per-frame", "0",
		"-capacity", "7",
		"-mailbox", "3",
		"-seed", "99",
		"-engine", "fft",
		"-workers", "2",
		"-stats",
		"-log", "/tmp/termlife.log",
	}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := Config{
		Ratio:          0.2,
		MillisPerFrame: 0,
		Capacity:       7,
		Mailbox:        3,
		Seed:           99,
		Engine:         ENGINE_FFT,
		Workers:        2,
		Stats:          true,
		LogFile:        "/tmp/termlife.log",
	}
	if cfg != expected {
		t.Fatalf("Expected %+v, got %+v", expected, cfg)
	}
}

func TestParseFlagsRejectsInvalidValues(t *testing.T) {
	cases := [][]string{
		{"-ratio", "1.5"},
		{"-ratio", "-0.1"},
		{"-ratio", "NaN"},
		{"-millis-per-frame", "-1"},
		{"-capacity", "0"},
		{"-mailbox", "0"},
		{"-workers", "0"},
		{"extra"},
	}
	for _, args := range cases {
		_, err := ParseFlags(args, io.Discard)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%v: expected ErrInvalidConfig, got %v", args, err)
		}
	}
}

func TestParseFlagsUnknownEngine(t *testing.T) {
	_, err := ParseFlags([]string{"-engine", "quantum"}, io.Discard)
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("Expected invalid config for unknown engine, got %v", err)
	}
}

func TestParseFlagsHelp(t *testing.T) {
	_, err := ParseFlags([]string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("Expected flag.ErrHelp, got %v", err)
	}
}

func TestParseFlagsMalformedValue(t *testing.T) {
	_, err := ParseFlags([]string{"-capacity", "lots"}, io.Discard)
	if err == nil {
		t.Fatal("Expected parse error for non-numeric capacity")
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := Config{MillisPerFrame: 250}
	if got := cfg.FrameInterval(); got != 250*time.Millisecond {
		t.Fatalf("Expected 250ms, got %v", got)
	}
}
