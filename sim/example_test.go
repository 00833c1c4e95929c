package sim_test

import (
	"fmt"

	"github.com/cwbudde/algo-muffler/sim"
)

func ExampleCompute() {
	params := sim.DefaultParams()

	result, err := sim.Compute(params)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Spectrum bins: %d\n", len(result.Frequencies))
	fmt.Printf("Impulse response: %d samples\n", len(result.ImpulseResponse))
	fmt.Printf("Nyquist: %.0f Hz\n", result.Frequencies[len(result.Frequencies)-1])
	fmt.Printf("Pump fundamental: %.0f Hz\n", params.PumpFrequency())

	// Output:
	// Spectrum bins: 2049
	// Impulse response: 2048 samples
	// Nyquist: 22050 Hz
	// Pump fundamental: 150 Hz
}
