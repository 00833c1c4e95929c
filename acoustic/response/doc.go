// Package response evaluates a muffler chain across the audio spectrum and
// converts the resulting transfer function into a time-domain impulse
// response suited for real-time convolution.
//
// The solver sweeps FFTSize/2+1 linearly spaced bins from 0 Hz to the
// Nyquist frequency, evaluating transmission loss and the complex pressure
// transfer function at each bin. The synthesizer mirrors the half-spectrum
// into its full Hermitian form, forcing the DC and Nyquist bins purely real
// first, inverse-transforms it, and tapers the result with a Hann window.
//
// # Usage
//
//	solver := response.Solver{SampleRate: 44100, FFTSize: 4096}
//	sp, err := solver.Sweep(muffler, med)
//	ir, err := response.ImpulseResponse(sp.TransferFunction, solver.FFTSize)
package response
