package response

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-muffler/acoustic/tmm"
)

// Errors returned by the solver and synthesizer.
var (
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("response: fft size must be a positive even number")
	ErrNilMuffler        = errors.New("response: muffler must not be nil")
	ErrSpectrumLength    = errors.New("response: transfer function length must be fftSize/2+1")
)

// Default solver configuration, matching the audio pipeline defaults.
const (
	DefaultSampleRate = 44100.0
	DefaultFFTSize    = 4096
)

// Solver sweeps a muffler's frequency response over a fixed bin bank.
type Solver struct {
	SampleRate float64 // Hz
	FFTSize    int     // transform size; the sweep covers FFTSize/2+1 bins
}

// Validate checks the solver configuration.
func (s Solver) Validate() error {
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) {
		return ErrInvalidSampleRate
	}

	if s.FFTSize <= 0 || s.FFTSize%2 != 0 {
		return ErrInvalidFFTSize
	}

	return nil
}

// Spectrum holds the sampled frequency response of a muffler chain. The
// three slices share length FFTSize/2+1 and index correspondence, with
// frequencies ascending from 0 to Nyquist.
type Spectrum struct {
	Frequencies      []float64    // Hz
	TransmissionLoss []float64    // dB
	TransferFunction []complex128 // pressure transfer H(f)
}

// Sweep evaluates transmission loss and pressure transfer at each bin.
//
// Bins below 1 Hz take the long-wavelength limit (TL = 0 dB, H = 1): the
// chain is acoustically transparent when the wavelength is far longer than
// any element, and the limit keeps the DC bin free of the formula's
// singularity. The call is deterministic and retains no state, so it is
// safe to invoke repeatedly with different mufflers.
func (s Solver) Sweep(m *tmm.Muffler, med tmm.Medium) (*Spectrum, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if m == nil {
		return nil, ErrNilMuffler
	}

	numBins := s.FFTSize/2 + 1
	binWidth := s.SampleRate / float64(s.FFTSize)

	sp := &Spectrum{
		Frequencies:      make([]float64, numBins),
		TransmissionLoss: make([]float64, numBins),
		TransferFunction: make([]complex128, numBins),
	}

	for i := range numBins {
		freq := float64(i) * binWidth
		sp.Frequencies[i] = freq

		if freq < 1 {
			sp.TransmissionLoss[i] = 0
			sp.TransferFunction[i] = 1
			continue
		}

		omega := 2 * math.Pi * freq
		sp.TransmissionLoss[i] = m.TransmissionLoss(omega, med)
		sp.TransferFunction[i] = m.PressureTransfer(omega, med)
	}

	return sp, nil
}
