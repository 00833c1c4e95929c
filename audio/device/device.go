// Package device binds the audio pipeline to a physical output.
//
// The contract is pull-style: once started, the output repeatedly asks its
// Source for the next batch of frames on its own schedule. Sources must
// always fill the whole destination (silence-padded when starved) and must
// not block beyond a short bounded critical section.
//
// The default backend streams through oto v3. Building with the headless
// tag substitutes a no-op backend for machines without a sound card.
package device

import "errors"

// ErrDeviceUnavailable is returned when the audio output cannot be opened
// or started. Callers surface it once; there is no automatic retry.
var ErrDeviceUnavailable = errors.New("device: audio output unavailable")

// Source supplies mono samples to an output. ReadSamples fills all of dst.
type Source interface {
	ReadSamples(dst []float32)
}

// Output is a pull-style mono audio sink.
type Output interface {
	// Start begins pulling samples from src. Calling Start on a running
	// output is an error.
	Start(src Source) error

	// Stop halts pulling. The output can be started again afterwards.
	Stop() error
}
