package engine

import (
	"errors"
	"math"
	"sync"

	"github.com/cwbudde/algo-dsp/dsp/conv"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the convolver.
var (
	ErrNonFiniteIR    = errors.New("engine: impulse response contains non-finite values")
	ErrLengthMismatch = errors.New("engine: output and input blocks must have equal length")
)

// Convolver performs overlap-add block convolution against a hot-swappable
// impulse response.
//
// The impulse response is replace-only: SetImpulseResponse stores a private
// copy under the lock and Process snapshots the current slice at the start
// of each block, so a block is always convolved against one consistent
// response even while a replacement lands concurrently. The overlap tail is
// carried across blocks and across swaps (including a swap to a shorter
// response) so hot-swapping does not click.
//
// Process must be confined to a single goroutine; SetImpulseResponse may be
// called from any.
type Convolver struct {
	mu sync.Mutex
	ir []float64 // current response; contents are never mutated after store

	overlap []float64 // tail owed to upcoming blocks; feeder-goroutine only
	scratch []float64
}

// NewConvolver creates a convolver primed with a unit impulse, so the
// engine passes audio through before the first simulation result arrives.
func NewConvolver() *Convolver {
	return &Convolver{ir: []float64{1}}
}

// SetImpulseResponse replaces the impulse response. A response containing
// NaN or Inf is rejected and the previous one kept. An empty response is
// allowed and yields silence.
func (c *Convolver) SetImpulseResponse(ir []float64) error {
	for _, v := range ir {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFiniteIR
		}
	}

	owned := make([]float64, len(ir))
	copy(owned, ir)

	c.mu.Lock()
	c.ir = owned
	c.mu.Unlock()

	return nil
}

// ImpulseResponseLen returns the length of the current impulse response.
func (c *Convolver) ImpulseResponseLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.ir)
}

// snapshot returns the current response. The slice is immutable by
// convention, so taking the reference under the lock is a consistent copy.
func (c *Convolver) snapshot() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ir
}

// Process convolves one block, writing exactly len(src) samples to dst.
// An empty impulse response produces silence, never a panic.
func (c *Convolver) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return ErrLengthMismatch
	}

	ir := c.snapshot()
	n := len(src)

	if len(ir) == 0 || n == 0 {
		clear(dst)
		return nil
	}

	convLen := n + len(ir) - 1
	if cap(c.scratch) < convLen {
		c.scratch = make([]float64, convLen)
	}

	buf := c.scratch[:convLen]
	conv.DirectTo(buf, src, ir)

	// Fold in the tail owed by previous blocks.
	k := min(len(c.overlap), convLen)
	vecmath.AddBlockInPlace(buf[:k], c.overlap[:k])

	// A swap to a shorter response can leave old tail reaching beyond this
	// block's convolution; that remainder lands right after the new tail in
	// next-block time, so the carried slice is the concatenation.
	var leftover []float64
	if len(c.overlap) > convLen {
		leftover = c.overlap[convLen:]
	}

	copy(dst, buf[:n])

	tail := buf[n:convLen]
	next := make([]float64, len(tail)+len(leftover))
	copy(next, tail)
	copy(next[len(tail):], leftover)
	c.overlap = next

	return nil
}

// Reset clears the overlap tail for a fresh stream.
func (c *Convolver) Reset() {
	c.overlap = nil
}
