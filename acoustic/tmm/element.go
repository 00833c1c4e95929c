package tmm

import (
	"errors"
	"math"
)

// Errors returned by element constructors.
var (
	ErrNonPositiveLength   = errors.New("tmm: element length must be positive")
	ErrNonPositiveDiameter = errors.New("tmm: element diameter must be positive")
)

// Element is an acoustic segment that can produce its transfer matrix at an
// angular frequency. Implementations must be pure: equal inputs yield equal
// matrices, with no retained state, so chains stay composable and
// re-evaluation is safe from any goroutine.
type Element interface {
	// Matrix returns the 2×2 ABCD matrix at angular frequency omega (rad/s)
	// in the given medium.
	Matrix(omega float64, med Medium) Matrix
}

// StraightDuct is a straight cylindrical duct segment.
type StraightDuct struct {
	Length   float64 // m
	Diameter float64 // m
}

// NewStraightDuct creates a straight duct, validating its dimensions.
func NewStraightDuct(length, diameter float64) (StraightDuct, error) {
	if length <= 0 || math.IsNaN(length) {
		return StraightDuct{}, ErrNonPositiveLength
	}

	if diameter <= 0 || math.IsNaN(diameter) {
		return StraightDuct{}, ErrNonPositiveDiameter
	}

	return StraightDuct{Length: length, Diameter: diameter}, nil
}

// Area returns the cross-sectional area in m².
func (d StraightDuct) Area() float64 {
	return AreaFromDiameter(d.Diameter)
}

// Impedance returns the characteristic impedance Z = ρc/S.
func (d StraightDuct) Impedance(med Medium) float64 {
	return med.Density * med.SpeedOfSound / d.Area()
}

// Matrix returns the lossless plane-wave duct matrix
//
//	[ cos(kL)        jZ·sin(kL) ]
//	[ (j/Z)·sin(kL)  cos(kL)    ]
//
// with wavenumber k = ω/c and characteristic impedance Z = ρc/S.
func (d StraightDuct) Matrix(omega float64, med Medium) Matrix {
	k := omega / med.SpeedOfSound
	z := d.Impedance(med)
	kl := k * d.Length

	cosKL := complex(math.Cos(kl), 0)
	jSinKL := complex(0, math.Sin(kl))

	return Matrix{
		A: cosKL,
		B: jSinKL * complex(z, 0),
		C: jSinKL * complex(1/z, 0),
		D: cosKL,
	}
}
