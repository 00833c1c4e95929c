package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-muffler/acoustic/tmm"
	"github.com/cwbudde/algo-muffler/internal/testutil"
)

func testMuffler(t *testing.T, med tmm.Medium) *tmm.Muffler {
	t.Helper()

	m, err := tmm.FromGeometry(tmm.Geometry{
		InletLength: 30e-3, InletDiameter: 6e-3,
		ChamberLength: 80e-3, ChamberDiameter: 40e-3,
		OutletLength: 30e-3, OutletDiameter: 6e-3,
	}, med)
	if err != nil {
		t.Fatal(err)
	}

	return m
}

func TestSolverValidate(t *testing.T) {
	cases := []struct {
		name    string
		s       Solver
		wantErr error
	}{
		{"valid", Solver{SampleRate: 44100, FFTSize: 4096}, nil},
		{"zero rate", Solver{SampleRate: 0, FFTSize: 4096}, ErrInvalidSampleRate},
		{"negative rate", Solver{SampleRate: -1, FFTSize: 4096}, ErrInvalidSampleRate},
		{"zero size", Solver{SampleRate: 44100, FFTSize: 0}, ErrInvalidFFTSize},
		{"odd size", Solver{SampleRate: 44100, FFTSize: 4095}, ErrInvalidFFTSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.s.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSweepShapeAndOrdering(t *testing.T) {
	med := tmm.MediumAt(20)
	solver := Solver{SampleRate: 44100, FFTSize: 4096}

	sp, err := solver.Sweep(testMuffler(t, med), med)
	if err != nil {
		t.Fatal(err)
	}

	wantBins := solver.FFTSize/2 + 1
	if len(sp.Frequencies) != wantBins || len(sp.TransmissionLoss) != wantBins || len(sp.TransferFunction) != wantBins {
		t.Fatalf("bin counts %d/%d/%d, want %d",
			len(sp.Frequencies), len(sp.TransmissionLoss), len(sp.TransferFunction), wantBins)
	}

	binWidth := solver.SampleRate / float64(solver.FFTSize)
	for i, f := range sp.Frequencies {
		want := float64(i) * binWidth
		if math.Abs(f-want) > 1e-9 {
			t.Fatalf("bin %d frequency %v, want %v", i, f, want)
		}

	}
	testutil.StrictlyAscending(t, sp.Frequencies)

	last := sp.Frequencies[wantBins-1]
	if math.Abs(last-solver.SampleRate/2) > 1e-9 {
		t.Fatalf("last bin %v Hz, want Nyquist %v Hz", last, solver.SampleRate/2)
	}
}

func TestSweepDCLimit(t *testing.T) {
	med := tmm.MediumAt(20)
	solver := Solver{SampleRate: 44100, FFTSize: 4096}

	sp, err := solver.Sweep(testMuffler(t, med), med)
	if err != nil {
		t.Fatal(err)
	}

	if sp.TransmissionLoss[0] != 0 {
		t.Fatalf("DC TL should be 0 dB, got %v", sp.TransmissionLoss[0])
	}

	if sp.TransferFunction[0] != 1 {
		t.Fatalf("DC transfer should be 1, got %v", sp.TransferFunction[0])
	}

	testutil.Finite(t, sp.TransmissionLoss)
}

func TestSweepIdempotent(t *testing.T) {
	med := tmm.MediumAt(20)
	solver := Solver{SampleRate: 44100, FFTSize: 1024}
	m := testMuffler(t, med)

	a, err := solver.Sweep(m, med)
	if err != nil {
		t.Fatal(err)
	}

	b, err := solver.Sweep(m, med)
	if err != nil {
		t.Fatal(err)
	}

	testutil.SliceNear(t, a.TransmissionLoss, b.TransmissionLoss, 1e-12)
	testutil.ComplexSliceNear(t, a.TransferFunction, b.TransferFunction, 1e-12)
}

func TestSweepNilMuffler(t *testing.T) {
	solver := Solver{SampleRate: 44100, FFTSize: 4096}
	if _, err := solver.Sweep(nil, tmm.MediumAt(20)); !errors.Is(err, ErrNilMuffler) {
		t.Fatalf("got %v, want ErrNilMuffler", err)
	}
}
