//go:build !headless

package device

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoOutput streams mono float32 samples through an oto v3 player. The
// player pulls data by calling Read from its own goroutine, which makes it
// the device-callback context of the pipeline.
type OtoOutput struct {
	ctx     *oto.Context
	player  *oto.Player
	src     Source
	scratch []float32

	mu sync.Mutex // guards player/src swaps, not the Read hot path
}

// Open creates an audio output at the given sample rate. The context is
// created eagerly so a missing audio subsystem surfaces here, once, as
// ErrDeviceUnavailable.
func Open(sampleRate int) (*OtoOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	<-ready

	return &OtoOutput{
		ctx:     ctx,
		scratch: make([]float32, 2048),
	}, nil
}

// Start begins pulling samples from src.
func (o *OtoOutput) Start(src Source) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return errors.New("device: output already started")
	}

	o.src = src
	o.player = o.ctx.NewPlayer(o)
	o.player.Play()

	return nil
}

// Stop halts playback and releases the player.
func (o *OtoOutput) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}

	err := o.player.Close()
	o.player = nil
	o.src = nil

	if err != nil {
		return fmt.Errorf("device: closing player: %w", err)
	}

	return nil
}

// Read implements io.Reader for the oto player: it pulls len(p)/4 float32
// samples from the source and encodes them little-endian. Always returns
// len(p) bytes so the device never blocks on a short read.
func (o *OtoOutput) Read(p []byte) (int, error) {
	o.mu.Lock()
	src := o.src
	o.mu.Unlock()

	numSamples := len(p) / 4
	if src == nil {
		clear(p)
		return len(p), nil
	}

	if len(o.scratch) < numSamples {
		o.scratch = make([]float32, numSamples)
	}

	samples := o.scratch[:numSamples]
	src.ReadSamples(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	clear(p[numSamples*4:])

	return len(p), nil
}
