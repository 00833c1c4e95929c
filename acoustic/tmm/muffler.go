package tmm

import "errors"

// ErrNoElements is returned when a muffler is built without elements.
var ErrNoElements = errors.New("tmm: muffler needs at least one element")

// Geometry describes a single expansion-chamber muffler: an inlet duct, an
// expansion chamber, and an outlet duct, in flow order. All dimensions in
// metres.
type Geometry struct {
	InletLength     float64
	InletDiameter   float64
	ChamberLength   float64
	ChamberDiameter float64
	OutletLength    float64
	OutletDiameter  float64
}

// Validate checks that every dimension is strictly positive.
func (g Geometry) Validate() error {
	ducts := []struct{ length, diameter float64 }{
		{g.InletLength, g.InletDiameter},
		{g.ChamberLength, g.ChamberDiameter},
		{g.OutletLength, g.OutletDiameter},
	}

	for _, d := range ducts {
		if _, err := NewStraightDuct(d.length, d.diameter); err != nil {
			return err
		}
	}

	return nil
}

// Muffler is an ordered chain of acoustic elements terminated by scalar
// source and load impedances. It is immutable after construction and owns
// its element slice exclusively; evaluation is safe from any goroutine.
type Muffler struct {
	elements []Element
	zSource  float64
	zLoad    float64
}

// New creates a muffler from an element chain (source side first) and the
// characteristic impedances of the source and load terminations.
func New(elements []Element, zSource, zLoad float64) (*Muffler, error) {
	if len(elements) == 0 {
		return nil, ErrNoElements
	}

	owned := make([]Element, len(elements))
	copy(owned, elements)

	return &Muffler{elements: owned, zSource: zSource, zLoad: zLoad}, nil
}

// FromGeometry builds the three-element chain inlet → chamber → outlet.
// The source impedance is that of the inlet duct and the load impedance
// that of the outlet duct. The construction is pure: equal geometry and
// medium produce chains that evaluate identically at every frequency.
func FromGeometry(g Geometry, med Medium) (*Muffler, error) {
	inlet, err := NewStraightDuct(g.InletLength, g.InletDiameter)
	if err != nil {
		return nil, err
	}

	chamber, err := NewStraightDuct(g.ChamberLength, g.ChamberDiameter)
	if err != nil {
		return nil, err
	}

	outlet, err := NewStraightDuct(g.OutletLength, g.OutletDiameter)
	if err != nil {
		return nil, err
	}

	return New(
		[]Element{inlet, chamber, outlet},
		inlet.Impedance(med),
		outlet.Impedance(med),
	)
}

// SourceImpedance returns the source-side termination impedance.
func (m *Muffler) SourceImpedance() float64 { return m.zSource }

// LoadImpedance returns the load-side termination impedance.
func (m *Muffler) LoadImpedance() float64 { return m.zLoad }

// MatrixAt folds the element chain into the end-to-end transfer matrix at
// angular frequency omega, starting from the identity matrix, source side
// first.
func (m *Muffler) MatrixAt(omega float64, med Medium) Matrix {
	total := Identity()
	for _, e := range m.elements {
		total = total.Chain(e.Matrix(omega, med))
	}

	return total
}

// TransmissionLoss returns the chain transmission loss in dB at omega.
func (m *Muffler) TransmissionLoss(omega float64, med Medium) float64 {
	return m.MatrixAt(omega, med).TransmissionLoss(m.zSource, m.zLoad)
}

// PressureTransfer returns the chain pressure transfer function at omega.
func (m *Muffler) PressureTransfer(omega float64, med Medium) complex128 {
	return m.MatrixAt(omega, med).PressureTransfer(m.zSource, m.zLoad)
}
