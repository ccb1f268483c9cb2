package main

import "sync"

// Constants defining the relay buffer defaults
const (
	RELAY_CAPACITY = 100 // Frames held between simulation and display
)

// Bounded FIFO ring that evicts its oldest element instead of rejecting a new one.
// Safe for any number of concurrent depositors and drainers: every operation
// runs under a single mutex, and no operation calls out while holding it.
// Generic type T allows storing any type of element.
type RelayBuffer[T any] struct {
	mu      sync.Mutex
	buffer  []T    // Fixed-size circular storage
	head    int    // Index of the oldest element
	count   int    // Elements currently held, 0 <= count <= len(buffer)
	evicted uint64 // Elements discarded to make room

	ready chan struct{} // Signalled after a deposit, holds at most one pending signal
}

// NewRelayBuffer allocates a ring holding at most capacity elements.
// A non-positive capacity is a programming error and panics.
func NewRelayBuffer[T any](capacity int) *RelayBuffer[T] {
	if capacity <= 0 {
		panic("relay buffer capacity must be positive")
	}
	return &RelayBuffer[T]{
		buffer: make([]T, capacity), // preallocate memory for the ring
		ready:  make(chan struct{}, 1),
	}
}

// Deposit appends v at the newest end. When the ring is full the oldest
// element is evicted first, so the length stays at capacity.
// Returns true if an element was evicted.
func (r *RelayBuffer[T]) Deposit(v T) bool {
	r.mu.Lock()
	evicted := false
	if r.count == len(r.buffer) {
		r.popLocked()
		r.evicted++
		evicted = true
	}

	r.buffer[(r.head+r.count)%len(r.buffer)] = v
	r.count++
	r.mu.Unlock()

	select {
	case r.ready <- struct{}{}:
	default: // a signal is already pending
	}
	return evicted
}

// Ready is signalled after deposits. A drainer that found the ring empty
// waits on it instead of polling; a pending signal may be stale, so the
// drainer must tolerate an empty DrainOne after waking.
func (r *RelayBuffer[T]) Ready() <-chan struct{} {
	return r.ready
}

// DrainOne removes and returns the oldest element.
// On an empty ring it returns the zero value and false, leaving the ring untouched.
func (r *RelayBuffer[T]) DrainOne() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		var zero T
		return zero, false
	}
	return r.popLocked(), true
}

// Remove the oldest element; caller holds mu and count > 0
func (r *RelayBuffer[T]) popLocked() T {
	var zero T
	v := r.buffer[r.head]
	r.buffer[r.head] = zero // drop the reference so evicted frames can be collected
	r.head = (r.head + 1) % len(r.buffer)
	r.count--
	return v
}

// Len reports the number of elements currently held
func (r *RelayBuffer[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap reports the fixed capacity
func (r *RelayBuffer[T]) Cap() int {
	return len(r.buffer) // never changes after construction
}

// Evictions reports how many elements have been discarded on overflow
func (r *RelayBuffer[T]) Evictions() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evicted
}
