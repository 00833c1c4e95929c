package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-muffler/audio/device"
	"github.com/cwbudde/algo-muffler/audio/pump"
)

// ErrNilOutput is returned when a pipeline is created without an output.
var ErrNilOutput = errors.New("engine: output must not be nil")

// Default pipeline configuration.
const (
	DefaultSampleRate   = 44100.0
	DefaultBlockSize    = 512
	defaultRingCapBlock = 8 // ring capacity in blocks, ~93 ms at defaults
)

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	sampleRate   float64
	blockSize    int
	ringCapacity int
}

func defaultConfig() config {
	return config{
		sampleRate: DefaultSampleRate,
		blockSize:  DefaultBlockSize,
	}
}

// WithSampleRate sets the stream sample rate in Hz.
func WithSampleRate(rate float64) Option {
	return func(c *config) {
		if rate > 0 {
			c.sampleRate = rate
		}
	}
}

// WithBlockSize sets the feeder block size in samples.
func WithBlockSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.blockSize = n
		}
	}
}

// WithRingCapacity sets the ring buffer capacity in samples.
func WithRingCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.ringCapacity = n
		}
	}
}

// pumpParams is the snapshot of pump configuration read at the start of
// each feeder block.
type pumpParams struct {
	rpm       float64
	numValves int
	dutyCycle float64
}

// Pipeline owns the feeder goroutine, the convolver, and the ring buffer,
// and exposes the live controls the UI drives while sound is playing.
//
// The zero value is not usable; construct with New.
type Pipeline struct {
	cfg  config
	conv *Convolver
	out  device.Output

	mu     sync.Mutex // guards pump, volume, ring, done
	pump   pumpParams
	volume float64
	ring   *Ring // current stream's ring; republished by Play
	done   chan struct{}

	running atomic.Bool // feeder continuation flag; cleared by Stop
	playing atomic.Bool

	popBuf  []float64   // device-callback scratch, consumer goroutine only
	starved atomic.Bool // edge detector for starvation logging
}

// New creates a stopped pipeline feeding the given output.
func New(out device.Output, opts ...Option) (*Pipeline, error) {
	if out == nil {
		return nil, ErrNilOutput
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.ringCapacity == 0 {
		cfg.ringCapacity = cfg.blockSize * defaultRingCapBlock
	}

	return &Pipeline{
		cfg:  cfg,
		conv: NewConvolver(),
		out:  out,
		pump: pumpParams{rpm: 3000, numValves: 3, dutyCycle: 0.5},

		volume: 0.5,
		popBuf: make([]float64, cfg.blockSize),
	}, nil
}

// SetImpulseResponse hot-swaps the impulse response used by the feeder. A
// block being convolved when the swap lands finishes against the old
// response; the next block picks up the new one. Non-finite responses are
// rejected and the previous response kept.
func (p *Pipeline) SetImpulseResponse(ir []float64) error {
	if err := p.conv.SetImpulseResponse(ir); err != nil {
		return fmt.Errorf("engine: rejecting impulse response: %w", err)
	}

	return nil
}

// SetPumpParams replaces the pump configuration snapshot read at the next
// block boundary.
func (p *Pipeline) SetPumpParams(rpm float64, numValves int, dutyCycle float64) error {
	// Validate with the same rules the source itself applies.
	if _, err := pump.NewSource(rpm, numValves, dutyCycle, p.cfg.sampleRate); err != nil {
		return err
	}

	p.mu.Lock()
	p.pump = pumpParams{rpm: rpm, numValves: numValves, dutyCycle: dutyCycle}
	p.mu.Unlock()

	return nil
}

// SetVolume sets the output level, clamped to [0, 1].
func (p *Pipeline) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = core.Clamp(v, 0, 1)
	p.mu.Unlock()
}

// Volume returns the current output level.
func (p *Pipeline) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.volume
}

// IsPlaying reports whether the pipeline is currently streaming.
func (p *Pipeline) IsPlaying() bool {
	return p.playing.Load()
}

// Play spawns the feeder goroutine and starts the output. Calling Play
// while already playing is a no-op; the feeder is never double-spawned. A
// device failure stops the feeder and surfaces once; there is no retry.
func (p *Pipeline) Play() error {
	if !p.playing.CompareAndSwap(false, true) {
		return nil
	}

	ring, err := NewRing(p.cfg.ringCapacity)
	if err != nil {
		p.playing.Store(false)
		return err
	}

	p.mu.Lock()
	cfg := p.pump
	p.mu.Unlock()

	src, err := pump.NewSource(cfg.rpm, cfg.numValves, cfg.dutyCycle, p.cfg.sampleRate)
	if err != nil {
		p.playing.Store(false)
		return err
	}

	done := make(chan struct{})

	// A previous player's final Read may still be in flight; the ring is
	// republished under the mutex so the callback sees either the old
	// closed ring or the new one, never a torn pointer.
	p.mu.Lock()
	p.ring = ring
	p.done = done
	p.mu.Unlock()

	p.conv.Reset()
	p.running.Store(true)

	go p.feed(src, ring, done)

	if err := p.out.Start(p); err != nil {
		p.running.Store(false)
		ring.Close()
		<-done
		p.playing.Store(false)

		return err
	}

	return nil
}

// Stop clears the running flag, wakes a backpressured feeder, waits for it
// to drain, and stops the output. The feeder observes the flag at block
// granularity, so shutdown completes within about one block of audio.
// Stopping a stopped pipeline is a no-op.
func (p *Pipeline) Stop() error {
	if !p.playing.CompareAndSwap(true, false) {
		return nil
	}

	p.mu.Lock()
	ring, done := p.ring, p.done
	p.mu.Unlock()

	p.running.Store(false)
	ring.Close()
	<-done

	if err := p.out.Stop(); err != nil {
		return fmt.Errorf("engine: stopping output: %w", err)
	}

	return nil
}

// feed is the producer loop: one pump block, one convolution, one push per
// iteration, until the running flag clears or the ring closes. The ring and
// done channel are passed in so the loop never touches the republishable
// struct fields.
func (p *Pipeline) feed(src *pump.Source, ring *Ring, done chan struct{}) {
	defer close(done)

	block := make([]float64, p.cfg.blockSize)
	out := make([]float64, p.cfg.blockSize)

	for p.running.Load() {
		p.mu.Lock()
		cfg := p.pump
		p.mu.Unlock()

		// Parameters were validated when stored.
		_ = src.SetParams(cfg.rpm, cfg.numValves, cfg.dutyCycle)

		src.GenerateTo(block)

		if err := p.conv.Process(out, block); err != nil {
			clear(out)
		}

		if err := ring.Push(out); err != nil {
			return // ring closed by Stop
		}
	}
}

// ReadSamples implements device.Source: it drains up to len(dst) samples
// from the ring, applies the volume scalar, and pads with silence when
// starved. The pipeline mutex is held for the whole call, serializing a
// stale player's final read against a restarted stream; every section
// inside is a short bounded copy, so the device is never blocked on the
// feeder.
func (p *Pipeline) ReadSamples(dst []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ring := p.ring
	vol := p.volume

	if ring == nil {
		clear(dst)
		return
	}

	if len(p.popBuf) < len(dst) {
		p.popBuf = make([]float64, len(dst))
	}

	buf := p.popBuf[:len(dst)]
	n := ring.Pop(buf)

	for i := range n {
		dst[i] = float32(buf[i] * vol)
	}

	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}

	// Log starvation once per episode; steady silence after Stop is normal.
	if n < len(dst) && p.playing.Load() {
		if p.starved.CompareAndSwap(false, true) {
			log.Printf("engine: ring buffer starved, padding %d samples of silence", len(dst)-n)
		}
	} else {
		p.starved.Store(false)
	}
}
