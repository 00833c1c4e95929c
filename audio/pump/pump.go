// Package pump synthesizes the pressure waveform of a multi-valve
// diaphragm pump, the excitation source for the audio pipeline.
//
// Each valve produces one half-rectified sinusoidal pulse per motor
// revolution, phase-shifted by 2π/valves from the previous valve and active
// for duty·2π of the revolution. The fundamental frequency is therefore
// valves·RPM/60.
package pump

import (
	"errors"
	"math"
)

// Errors returned by the source constructor.
var (
	ErrInvalidRPM        = errors.New("pump: rpm must be positive")
	ErrInvalidValveCount = errors.New("pump: valve count must be at least 1")
	ErrInvalidDutyCycle  = errors.New("pump: duty cycle must be in (0, 1]")
	ErrInvalidSampleRate = errors.New("pump: sample rate must be positive")
)

// Source generates the pump pressure waveform sample by sample. The phase
// accumulator persists across Generate calls and across parameter updates,
// so the waveform stays continuous when the pump speed changes live.
//
// A Source is not safe for concurrent use; the audio pipeline confines it
// to the feeder goroutine.
type Source struct {
	rpm        float64
	numValves  int
	dutyCycle  float64
	sampleRate float64
	phase      float64 // motor shaft angle in radians, wraps at 2π
}

// NewSource creates a pump source.
func NewSource(rpm float64, numValves int, dutyCycle, sampleRate float64) (*Source, error) {
	s := &Source{sampleRate: sampleRate}

	if sampleRate <= 0 || math.IsNaN(sampleRate) {
		return nil, ErrInvalidSampleRate
	}

	if err := s.SetParams(rpm, numValves, dutyCycle); err != nil {
		return nil, err
	}

	return s, nil
}

// FundamentalFrequency returns valves·RPM/60 in Hz.
func (s *Source) FundamentalFrequency() float64 {
	return float64(s.numValves) * s.rpm / 60
}

// SetParams updates motor speed, valve count, and duty cycle without
// resetting the phase accumulator.
func (s *Source) SetParams(rpm float64, numValves int, dutyCycle float64) error {
	if rpm <= 0 || math.IsNaN(rpm) {
		return ErrInvalidRPM
	}

	if numValves < 1 {
		return ErrInvalidValveCount
	}

	if dutyCycle <= 0 || dutyCycle > 1 {
		return ErrInvalidDutyCycle
	}

	s.rpm = rpm
	s.numValves = numValves
	s.dutyCycle = dutyCycle

	return nil
}

// Generate returns count samples of the pump waveform.
func (s *Source) Generate(count int) []float64 {
	out := make([]float64, count)
	s.GenerateTo(out)

	return out
}

// GenerateTo fills dst with the next len(dst) samples. This is the
// zero-allocation path used by the feeder loop.
func (s *Source) GenerateTo(dst []float64) {
	dPhase := 2 * math.Pi * (s.rpm / 60) / s.sampleRate
	activeAngle := s.dutyCycle * 2 * math.Pi

	for i := range dst {
		sample := 0.0

		for v := range s.numValves {
			valvePhase := s.phase + 2*math.Pi*float64(v)/float64(s.numValves)
			theta := math.Mod(valvePhase, 2*math.Pi)

			if theta < activeAngle {
				sample += math.Sin(math.Pi * theta / activeAngle)
			}
		}

		dst[i] = sample

		s.phase += dPhase
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}
