package sim

import (
	"github.com/cwbudde/algo-muffler/acoustic/response"
	"github.com/cwbudde/algo-muffler/acoustic/tmm"
)

// Result bundles the outputs of one simulation run.
//
// Frequencies, TransmissionLoss, and TransferFunction share length
// FFTSize/2+1 and index correspondence, with frequencies ascending from 0
// to Nyquist. ImpulseResponse holds FFTSize/2 windowed time-domain samples
// at SampleRate. A Result is replaced wholesale on recomputation, never
// mutated.
type Result struct {
	Frequencies      []float64
	TransmissionLoss []float64
	TransferFunction []complex128
	ImpulseResponse  []float64
	SampleRate       float64
}

// FFTSize is the transform size of the frequency sweep and the
// impulse-response synthesis.
const FFTSize = response.DefaultFFTSize

// Compute runs the full pipeline synchronously: validate parameters, build
// the element chain, sweep the spectrum, and synthesize the impulse
// response. It is deterministic; two calls with equal parameters yield
// numerically identical results.
func Compute(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	med := p.Medium()

	muffler, err := tmm.FromGeometry(p.Geometry, med)
	if err != nil {
		return nil, err
	}

	solver := response.Solver{SampleRate: p.SampleRate, FFTSize: FFTSize}

	spectrum, err := solver.Sweep(muffler, med)
	if err != nil {
		return nil, err
	}

	ir, err := response.ImpulseResponse(spectrum.TransferFunction, FFTSize)
	if err != nil {
		return nil, err
	}

	return &Result{
		Frequencies:      spectrum.Frequencies,
		TransmissionLoss: spectrum.TransmissionLoss,
		TransferFunction: spectrum.TransferFunction,
		ImpulseResponse:  ir,
		SampleRate:       p.SampleRate,
	}, nil
}
