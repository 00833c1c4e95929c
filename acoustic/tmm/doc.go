// Package tmm implements the Transfer Matrix Method for one-dimensional
// duct acoustics.
//
// Each acoustic element (currently straight cylindrical ducts) is described
// by a 2×2 complex ABCD matrix relating acoustic pressure and volume
// velocity at its two ports. Elements chain by matrix multiplication,
// source side first, so an entire muffler reduces to a single matrix per
// frequency from which transmission loss and the complex pressure transfer
// function follow.
//
// # Usage
//
//	med := tmm.MediumAt(20) // 20 °C air
//	m, err := tmm.FromGeometry(tmm.Geometry{
//		InletLength: 30e-3, InletDiameter: 6e-3,
//		ChamberLength: 80e-3, ChamberDiameter: 40e-3,
//		OutletLength: 30e-3, OutletDiameter: 6e-3,
//	}, med)
//	tl := m.TransmissionLoss(2*math.Pi*1000, med) // dB at 1 kHz
package tmm
