package engine

import (
	"errors"
	"sync"
)

// Errors returned by the ring buffer.
var (
	ErrInvalidCapacity = errors.New("engine: ring capacity must be positive")
	ErrRingClosed      = errors.New("engine: ring is closed")
)

// Ring is a bounded FIFO of samples shared between the feeder goroutine and
// the device callback. The producer blocks when the ring is full
// (backpressure); the consumer never blocks and takes whatever is
// available. Closing the ring wakes a blocked producer immediately.
type Ring struct {
	mu      sync.Mutex
	notFull sync.Cond

	buf    []float64
	head   int // index of the oldest sample
	size   int
	closed bool
}

// NewRing creates a ring holding at most capacity samples.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	r := &Ring{buf: make([]float64, capacity)}
	r.notFull.L = &r.mu

	return r, nil
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Len returns the number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.size
}

// Push appends all samples, blocking while the ring is full. Samples appear
// to the consumer in push order. Returns ErrRingClosed if the ring is (or
// becomes) closed before everything is written; already-written samples
// remain readable.
func (r *Ring) Push(samples []float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(samples) > 0 {
		for r.size == len(r.buf) && !r.closed {
			r.notFull.Wait()
		}

		if r.closed {
			return ErrRingClosed
		}

		n := min(len(r.buf)-r.size, len(samples))
		tail := (r.head + r.size) % len(r.buf)

		first := min(n, len(r.buf)-tail)
		copy(r.buf[tail:], samples[:first])
		copy(r.buf, samples[first:n])

		r.size += n
		samples = samples[n:]
	}

	return nil
}

// Pop moves up to len(dst) samples into dst and returns how many were
// written. It never blocks; an empty ring yields 0.
func (r *Ring) Pop(dst []float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(r.size, len(dst))
	if n == 0 {
		return 0
	}

	first := min(n, len(r.buf)-r.head)
	copy(dst[:first], r.buf[r.head:r.head+first])
	copy(dst[first:n], r.buf)

	r.head = (r.head + n) % len(r.buf)
	r.size -= n

	r.notFull.Signal()

	return n
}

// Close marks the ring closed and wakes any blocked producer. Buffered
// samples stay readable via Pop.
func (r *Ring) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.notFull.Broadcast()
}
