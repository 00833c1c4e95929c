package tmm

import "math"

// Medium holds the acoustic properties of the propagation medium.
type Medium struct {
	SpeedOfSound float64 // m/s
	Density      float64 // kg/m³
}

// MediumAt returns air properties at the given temperature in °C using the
// ideal-gas approximation:
//
//	c = 331.3 · √(T/273.15)
//	ρ = p / (R·T), with p = 101325 Pa and R = 287.05 J/(kg·K)
func MediumAt(temperatureC float64) Medium {
	tKelvin := temperatureC + 273.15

	return Medium{
		SpeedOfSound: 331.3 * math.Sqrt(tKelvin/273.15),
		Density:      101325.0 / (287.05 * tKelvin),
	}
}

// AreaFromDiameter returns the cross-sectional area of a circular duct.
// Both diameter and area are in SI units (m, m²).
func AreaFromDiameter(diameter float64) float64 {
	r := diameter / 2
	return math.Pi * r * r
}
