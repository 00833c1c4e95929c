package response

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-muffler/acoustic/tmm"
)

func TestImpulseResponseLength(t *testing.T) {
	const fftSize = 256
	tf := make([]complex128, fftSize/2+1)
	for i := range tf {
		tf[i] = 1
	}

	ir, err := ImpulseResponse(tf, fftSize)
	if err != nil {
		t.Fatal(err)
	}

	if len(ir) != fftSize/2 {
		t.Fatalf("IR length %d, want %d", len(ir), fftSize/2)
	}
}

func TestImpulseResponseRejectsBadInput(t *testing.T) {
	tf := make([]complex128, 100)

	if _, err := ImpulseResponse(tf, 256); !errors.Is(err, ErrSpectrumLength) {
		t.Fatalf("got %v, want ErrSpectrumLength", err)
	}

	if _, err := ImpulseResponse(tf, 0); !errors.Is(err, ErrInvalidFFTSize) {
		t.Fatalf("got %v, want ErrInvalidFFTSize", err)
	}

	if _, err := ImpulseResponse(tf, 255); !errors.Is(err, ErrInvalidFFTSize) {
		t.Fatalf("got %v, want ErrInvalidFFTSize", err)
	}
}

func TestUnityTransferYieldsDeltaBeforeWindowing(t *testing.T) {
	const fftSize = 256
	tf := make([]complex128, fftSize/2+1)
	for i := range tf {
		tf[i] = 1
	}

	full, err := invertSpectrum(tf, fftSize)
	if err != nil {
		t.Fatal(err)
	}

	peak := 0
	for i, v := range full {
		if math.Abs(v) > math.Abs(full[peak]) {
			peak = i
		}
	}

	if peak != 0 {
		t.Fatalf("delta peak at sample %d, want 0", peak)
	}

	// Away from the peak the response stays near zero.
	for i := 1; i < len(full); i++ {
		if math.Abs(full[i]) > 1e-9*math.Abs(full[0]) {
			t.Fatalf("unexpected energy at sample %d: %v", i, full[i])
		}
	}
}

func TestImpulseResponseDeterministic(t *testing.T) {
	med := tmm.MediumAt(20)
	solver := Solver{SampleRate: 44100, FFTSize: 1024}

	sp, err := solver.Sweep(testMuffler(t, med), med)
	if err != nil {
		t.Fatal(err)
	}

	a, err := ImpulseResponse(sp.TransferFunction, solver.FFTSize)
	if err != nil {
		t.Fatal(err)
	}

	b, err := ImpulseResponse(sp.TransferFunction, solver.FFTSize)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("IR differs at sample %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestInversionRoundTripRecoversTransferFunction(t *testing.T) {
	// Forward sweep → raw inversion → forward re-transform must recover
	// the spectrum within floating tolerance, except at the intentionally
	// zeroed imaginary parts of the DC and Nyquist bins.
	med := tmm.MediumAt(20)
	solver := Solver{SampleRate: 44100, FFTSize: 1024}

	sp, err := solver.Sweep(testMuffler(t, med), med)
	if err != nil {
		t.Fatal(err)
	}

	full, err := invertSpectrum(sp.TransferFunction, solver.FFTSize)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := algofft.NewPlan64(solver.FFTSize)
	if err != nil {
		t.Fatal(err)
	}

	timeDomain := make([]complex128, solver.FFTSize)
	for i, v := range full {
		timeDomain[i] = complex(v, 0)
	}

	recovered := make([]complex128, solver.FFTSize)
	if err := plan.Forward(recovered, timeDomain); err != nil {
		t.Fatal(err)
	}
	recovered = recovered[:solver.FFTSize/2+1]

	last := len(recovered) - 1
	for i, want := range sp.TransferFunction {
		got := recovered[i]

		if i == 0 || i == last {
			// Only the real part survives the enforced symmetry.
			if math.Abs(real(got)-real(want)) > 1e-9 {
				t.Fatalf("bin %d real part: got %v, want %v", i, real(got), real(want))
			}

			if math.Abs(imag(got)) > 1e-9 {
				t.Fatalf("bin %d imaginary part should be zero, got %v", i, imag(got))
			}

			continue
		}

		if cmplx.Abs(got-want) > 1e-9 {
			t.Fatalf("bin %d: got %v, want %v", i, got, want)
		}
	}
}

func TestHannTaperSuppressesEdges(t *testing.T) {
	med := tmm.MediumAt(20)
	solver := Solver{SampleRate: 44100, FFTSize: 1024}

	sp, err := solver.Sweep(testMuffler(t, med), med)
	if err != nil {
		t.Fatal(err)
	}

	ir, err := ImpulseResponse(sp.TransferFunction, solver.FFTSize)
	if err != nil {
		t.Fatal(err)
	}

	// The periodic Hann taper pins the first sample to zero.
	if ir[0] != 0 {
		t.Fatalf("windowed IR should start at zero, got %v", ir[0])
	}

	for i, v := range ir {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite IR sample at %d: %v", i, v)
		}
	}
}
