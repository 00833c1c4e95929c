// Package sim runs the full muffler simulation pipeline: parameter
// validation, chain construction, frequency sweep, and impulse-response
// synthesis. Results are consumed by plotting frontends and by the
// real-time audio pipeline.
package sim

import (
	"errors"

	"github.com/cwbudde/algo-muffler/acoustic/tmm"
)

// Errors returned by parameter validation.
var (
	ErrInvalidRPM        = errors.New("sim: rpm must be positive")
	ErrInvalidValveCount = errors.New("sim: valve count must be at least 1")
	ErrInvalidDutyCycle  = errors.New("sim: duty cycle must be in (0, 1]")
	ErrInvalidSampleRate = errors.New("sim: sample rate must be positive")
)

// Params is an immutable snapshot of the physical, geometric, and signal
// inputs of one simulation run. All geometric fields are in metres; a UI
// working in other units converts before calling in.
type Params struct {
	Geometry tmm.Geometry

	// Ambient temperature in °C; speed of sound and air density follow
	// from the ideal-gas relation.
	Temperature float64

	// Pump excitation: motor speed, diaphragm valve count, and the
	// fraction of each revolution a valve is open.
	RPM       float64
	NumValves int
	DutyCycle float64

	// Output level in [0, 1], applied by the audio pipeline.
	Volume float64

	// Audio sample rate in Hz.
	SampleRate float64
}

// DefaultParams returns the reference diaphragm-pump configuration:
// 6 mm × 30 mm inlet and outlet ducts, a 40 mm × 80 mm expansion chamber,
// a 3-valve pump at 3000 RPM with 50 % duty cycle, at 20 °C.
func DefaultParams() Params {
	return Params{
		Geometry: tmm.Geometry{
			InletLength: 30e-3, InletDiameter: 6e-3,
			ChamberLength: 80e-3, ChamberDiameter: 40e-3,
			OutletLength: 30e-3, OutletDiameter: 6e-3,
		},
		Temperature: 20,
		RPM:         3000,
		NumValves:   3,
		DutyCycle:   0.5,
		Volume:      0.5,
		SampleRate:  44100,
	}
}

// PumpFrequency returns the fundamental excitation frequency in Hz:
// valves · RPM / 60.
func (p Params) PumpFrequency() float64 {
	return float64(p.NumValves) * p.RPM / 60
}

// Medium returns the acoustic medium at the configured temperature.
func (p Params) Medium() tmm.Medium {
	return tmm.MediumAt(p.Temperature)
}

// Validate rejects invalid geometry and signal parameters before any
// element is constructed.
func (p Params) Validate() error {
	if err := p.Geometry.Validate(); err != nil {
		return err
	}

	if p.RPM <= 0 {
		return ErrInvalidRPM
	}

	if p.NumValves < 1 {
		return ErrInvalidValveCount
	}

	if p.DutyCycle <= 0 || p.DutyCycle > 1 {
		return ErrInvalidDutyCycle
	}

	if p.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	return nil
}
