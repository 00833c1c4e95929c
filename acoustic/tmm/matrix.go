package tmm

import (
	"math"
	"math/cmplx"
)

// Matrix is a 2×2 complex transfer matrix in ABCD form:
//
//	[p_in ]   [A  B] [p_out]
//	[U_in ] = [C  D] [U_out]
//
// relating acoustic pressure p and volume velocity U at the element ports.
type Matrix struct {
	A, B, C, D complex128
}

// Identity returns the transfer matrix of a zero-length element.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Chain composes this matrix with the next element toward the load:
// the receiver must be the source-side element. The result is the standard
// matrix product m·other.
func (m Matrix) Chain(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
	}
}

// Det returns the determinant A·D − B·C. Passive reciprocal elements with
// equal port areas have det = 1.
func (m Matrix) Det() complex128 {
	return m.A*m.D - m.B*m.C
}

// denominator evaluates A + B/Zl + Zs·C + Zs·D/Zl, the common term of the
// TMM transmission formulas for source impedance Zs and load impedance Zl.
func (m Matrix) denominator(zSource, zLoad float64) complex128 {
	zs := complex(zSource, 0)
	zl := complex(zLoad, 0)

	return m.A + m.B/zl + zs*m.C + zs*m.D/zl
}

// TransmissionLoss returns the transmission loss in dB for the given source
// and load characteristic impedances:
//
//	TL = 20·log₁₀(|A + B/Zl + Zs·C + Zs·D/Zl| / 2)
//
// A vanishing denominator (total transparency in the limit) maps to 0 dB
// rather than −Inf so downstream plotting and windowing stay finite.
func (m Matrix) TransmissionLoss(zSource, zLoad float64) float64 {
	mag := cmplx.Abs(m.denominator(zSource, zLoad))
	if mag <= 0 || math.IsNaN(mag) {
		return 0
	}

	return 20 * math.Log10(mag/2)
}

// PressureTransfer returns the complex pressure transfer function
//
//	H = 2 / (A + B/Zl + Zs·C + Zs·D/Zl)
//
// A vanishing denominator yields 0, never a division crash.
func (m Matrix) PressureTransfer(zSource, zLoad float64) complex128 {
	den := m.denominator(zSource, zLoad)
	if den == 0 || cmplx.IsNaN(den) {
		return 0
	}

	return 2 / den
}
