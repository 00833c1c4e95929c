// Package testutil provides assertion helpers shared by the acoustic and
// audio tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

// SliceNear fails t if got and want differ in length or any element pair
// differs by more than eps.
func SliceNear(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// ComplexSliceNear fails t if got and want differ in length or any element
// pair has modulus distance above eps.
func ComplexSliceNear(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := cmplx.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (|diff| %v > %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// Finite fails t if any element is NaN or Inf.
func Finite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// StrictlyAscending fails t if data is not strictly increasing.
func StrictlyAscending(t *testing.T, data []float64) {
	t.Helper()

	for i := 1; i < len(data); i++ {
		if data[i] <= data[i-1] {
			t.Fatalf("index %d: %v not above %v", i, data[i], data[i-1])
		}
	}
}
