package response

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ImpulseResponse converts a transfer function H(f) with fftSize/2+1 bins
// into a real time-domain impulse response of fftSize/2 samples.
//
// A real time-domain result requires the DC and Nyquist bins to be purely
// real; their imaginary parts are forced to zero before inversion. A
// spectrum violating the constraint indicates a defect in the sweep, not a
// user error. After inversion a periodic Hann window tapers the response
// and it is truncated to half the transform size to suppress edge
// artifacts of the finite-length transform.
func ImpulseResponse(transferFunction []complex128, fftSize int) ([]float64, error) {
	full, err := invertSpectrum(transferFunction, fftSize)
	if err != nil {
		return nil, err
	}

	irLen := fftSize / 2

	win, err := window.Hann(irLen, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("response: hann window: %w", err)
	}

	ir := make([]float64, irLen)
	copy(ir, full[:irLen])
	vecmath.MulBlockInPlace(ir, win)

	return ir, nil
}

// invertSpectrum runs the inverse FFT of the transfer function without
// windowing or truncation, returning all fftSize time-domain samples. Kept
// separate so the raw inversion can be verified against a forward
// re-transform.
func invertSpectrum(transferFunction []complex128, fftSize int) ([]float64, error) {
	if fftSize <= 0 || fftSize%2 != 0 {
		return nil, ErrInvalidFFTSize
	}

	if len(transferFunction) != fftSize/2+1 {
		return nil, ErrSpectrumLength
	}

	// Build the full Hermitian spectrum: bins above Nyquist mirror the
	// conjugates of the positive-frequency half, so the inverse transform
	// comes out real. DC and Nyquist must be purely real for the symmetry
	// to hold; their imaginary parts are forced to zero.
	spectrum := make([]complex128, fftSize)
	spectrum[0] = complex(real(transferFunction[0]), 0)
	nyquist := fftSize / 2
	spectrum[nyquist] = complex(real(transferFunction[nyquist]), 0)
	for i := 1; i < nyquist; i++ {
		spectrum[i] = transferFunction[i]
		spectrum[fftSize-i] = cmplx.Conj(transferFunction[i])
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	timeDomain := make([]complex128, fftSize)
	if err := plan.Inverse(timeDomain, spectrum); err != nil {
		return nil, fmt.Errorf("response: inverse FFT failed: %w", err)
	}

	out := make([]float64, fftSize)
	for i, v := range timeDomain {
		out[i] = real(v)
	}

	return out, nil
}
