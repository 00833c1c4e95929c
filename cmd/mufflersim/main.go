// Command mufflersim simulates the acoustics of a single expansion-chamber
// muffler and optionally auralizes the result.
//
// Usage:
//
//	mufflersim [flags]
//
// Without flags it simulates the default geometry (6x30 mm ducts around a
// 40x80 mm chamber) and prints the attenuation peaks.
//
// Examples:
//
//	mufflersim -chamber-diameter 60 -chamber-length 120
//	mufflersim -rpm 4500 -valves 4
//	mufflersim -dump
//	mufflersim -play -duration 5
package main

import (
	"flag"
	"fmt"
	"math/cmplx"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-muffler/audio/device"
	"github.com/cwbudde/algo-muffler/audio/engine"
	"github.com/cwbudde/algo-muffler/sim"
)

func main() {
	def := sim.DefaultParams()

	inletDiameter := flag.Float64("inlet-diameter", def.Geometry.InletDiameter*1000, "inlet duct diameter in mm")
	inletLength := flag.Float64("inlet-length", def.Geometry.InletLength*1000, "inlet duct length in mm")
	chamberDiameter := flag.Float64("chamber-diameter", def.Geometry.ChamberDiameter*1000, "expansion chamber diameter in mm")
	chamberLength := flag.Float64("chamber-length", def.Geometry.ChamberLength*1000, "expansion chamber length in mm")
	outletDiameter := flag.Float64("outlet-diameter", def.Geometry.OutletDiameter*1000, "outlet duct diameter in mm")
	outletLength := flag.Float64("outlet-length", def.Geometry.OutletLength*1000, "outlet duct length in mm")
	temperature := flag.Float64("temperature", def.Temperature, "air temperature in degrees Celsius")
	rpm := flag.Float64("rpm", def.RPM, "pump motor speed in revolutions per minute")
	valves := flag.Int("valves", def.NumValves, "number of pump valves")
	duty := flag.Float64("duty", def.DutyCycle, "valve duty cycle in (0, 1]")
	volume := flag.Float64("volume", def.Volume, "playback volume in [0, 1]")
	dump := flag.Bool("dump", false, "print the full frequency/attenuation table")
	play := flag.Bool("play", false, "play the simulated pump sound through the default audio device")
	duration := flag.Duration("duration", 5*time.Second, "playback duration (with -play)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mufflersim [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Simulates an expansion-chamber muffler via transfer matrices and\n")
		fmt.Fprintf(os.Stderr, "prints its transmission loss; -play auralizes a valve pump filtered\n")
		fmt.Fprintf(os.Stderr, "through the muffler.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	params := def
	params.Geometry.InletDiameter = *inletDiameter / 1000
	params.Geometry.InletLength = *inletLength / 1000
	params.Geometry.ChamberDiameter = *chamberDiameter / 1000
	params.Geometry.ChamberLength = *chamberLength / 1000
	params.Geometry.OutletDiameter = *outletDiameter / 1000
	params.Geometry.OutletLength = *outletLength / 1000
	params.Temperature = *temperature
	params.RPM = *rpm
	params.NumValves = *valves
	params.DutyCycle = *duty
	params.Volume = *volume

	result, err := sim.Compute(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printSummary(params, result)

	if *dump {
		printTable(result)
	}

	if *play {
		if err := playback(params, result, *duration); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printSummary(params sim.Params, result *sim.Result) {
	med := params.Medium()

	fmt.Printf("Medium: %.1f m/s at %.1f degC, %.3f kg/m3\n", med.SpeedOfSound, params.Temperature, med.Density)
	fmt.Printf("Pump:   %.0f RPM, %d valves, fundamental %.1f Hz\n", params.RPM, params.NumValves, params.PumpFrequency())
	fmt.Println()

	peaks := attenuationPeaks(result)
	if len(peaks) == 0 {
		fmt.Println("No attenuation peaks below Nyquist.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Peak\tFrequency [Hz]\tAttenuation [dB]\n")
	fmt.Fprintf(tw, "----\t--------------\t----------------\n")
	for i, p := range peaks {
		fmt.Fprintf(tw, "%d\t%.1f\t%.2f\n", i+1, result.Frequencies[p], result.TransmissionLoss[p])
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

// attenuationPeaks returns the indices of local transmission loss maxima,
// skipping ripples below 1 dB.
func attenuationPeaks(result *sim.Result) []int {
	const minPeakDB = 1.0

	tl := result.TransmissionLoss

	var peaks []int
	for i := 1; i < len(tl)-1; i++ {
		if tl[i] >= minPeakDB && tl[i] > tl[i-1] && tl[i] >= tl[i+1] {
			peaks = append(peaks, i)
		}
	}

	return peaks
}

func printTable(result *sim.Result) {
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency [Hz]\tAttenuation [dB]\t|H|\n")
	fmt.Fprintf(tw, "--------------\t----------------\t---\n")
	for i, f := range result.Frequencies {
		fmt.Fprintf(tw, "%.1f\t%.3f\t%.5f\n", f, result.TransmissionLoss[i], cmplx.Abs(result.TransferFunction[i]))
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func playback(params sim.Params, result *sim.Result, duration time.Duration) error {
	out, err := device.Open(int(params.SampleRate))
	if err != nil {
		return err
	}

	pipeline, err := engine.New(out, engine.WithSampleRate(params.SampleRate))
	if err != nil {
		return err
	}

	if err := pipeline.SetImpulseResponse(result.ImpulseResponse); err != nil {
		return err
	}
	if err := pipeline.SetPumpParams(params.RPM, params.NumValves, params.DutyCycle); err != nil {
		return err
	}
	pipeline.SetVolume(params.Volume)

	fmt.Printf("\nPlaying %s of filtered pump noise...\n", duration)

	if err := pipeline.Play(); err != nil {
		return err
	}
	time.Sleep(duration)

	return pipeline.Stop()
}
