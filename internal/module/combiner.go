package module

import (
	"math"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/noise"
)

// Add outputs the sum of its two sources.
type Add struct{ sources }

// NewAdd returns an unwired Add.
func NewAdd() *Add { return &Add{sources: newSources(2)} }

func (a *Add) Value(x, y, z float64) float64 {
	return a.src(0).Value(x, y, z) + a.src(1).Value(x, y, z)
}

// Multiply outputs the product of its two sources.
type Multiply struct{ sources }

// NewMultiply returns an unwired Multiply.
func NewMultiply() *Multiply { return &Multiply{sources: newSources(2)} }

func (m *Multiply) Value(x, y, z float64) float64 {
	return m.src(0).Value(x, y, z) * m.src(1).Value(x, y, z)
}

// Max outputs the larger of its two sources.
type Max struct{ sources }

// NewMax returns an unwired Max.
func NewMax() *Max { return &Max{sources: newSources(2)} }

func (m *Max) Value(x, y, z float64) float64 {
	return math.Max(m.src(0).Value(x, y, z), m.src(1).Value(x, y, z))
}

// Min outputs the smaller of its two sources.
type Min struct{ sources }

// NewMin returns an unwired Min.
func NewMin() *Min { return &Min{sources: newSources(2)} }

func (m *Min) Value(x, y, z float64) float64 {
	return math.Min(m.src(0).Value(x, y, z), m.src(1).Value(x, y, z))
}

// SelectControlSlot is the slot index of a Select's control module.
const SelectControlSlot = 2

// Select picks source 1 where the control value lies inside [lower, upper]
// and source 0 outside it. Within falloff of either bound the two sources
// are blended along a cubic s-curve.
type Select struct {
	sources
	lower   float64
	upper   float64
	falloff float64
}

// NewSelect returns a selector with bounds [-1, 1] and no falloff.
func NewSelect() *Select {
	return &Select{sources: newSources(3), lower: -1, upper: 1}
}

// SetControl binds the control module.
func (s *Select) SetControl(m Module) error { return s.SetSource(SelectControlSlot, m) }

// Bounds returns the selection range.
func (s *Select) Bounds() (lower, upper float64) { return s.lower, s.upper }

// SetBounds sets the selection range. lower must be below upper.
func (s *Select) SetBounds(lower, upper float64) error {
	if !(lower < upper) {
		return errs.Invalid(errs.StageConfigure, "select bounds: lower %v must be below upper %v", lower, upper)
	}
	s.lower, s.upper = lower, upper
	s.falloff = s.clampFalloff(s.falloff)
	return nil
}

// EdgeFalloff returns the half-width of the blend band around each bound.
func (s *Select) EdgeFalloff() float64 { return s.falloff }

// SetEdgeFalloff sets the blend half-width. It is clamped to half the
// bound width so the two bands never overlap.
func (s *Select) SetEdgeFalloff(f float64) error {
	if f < 0 || !finite(f) {
		return errs.Invalid(errs.StageConfigure, "select edge falloff %v must be non-negative", f)
	}
	s.falloff = s.clampFalloff(f)
	return nil
}

func (s *Select) clampFalloff(f float64) float64 {
	half := (s.upper - s.lower) / 2
	if f > half {
		return half
	}
	return f
}

func (s *Select) Value(x, y, z float64) float64 {
	control := s.src(SelectControlSlot).Value(x, y, z)
	lo, hi, f := s.lower, s.upper, s.falloff

	if f <= 0 {
		if control < lo || control > hi {
			return s.src(0).Value(x, y, z)
		}
		return s.src(1).Value(x, y, z)
	}

	switch {
	case control < lo-f:
		return s.src(0).Value(x, y, z)
	case control < lo+f:
		alpha := noise.SCurve3((control - (lo - f)) / (2 * f))
		return noise.Lerp(s.src(0).Value(x, y, z), s.src(1).Value(x, y, z), alpha)
	case control < hi-f:
		return s.src(1).Value(x, y, z)
	case control < hi+f:
		alpha := noise.SCurve3((control - (hi - f)) / (2 * f))
		return noise.Lerp(s.src(1).Value(x, y, z), s.src(0).Value(x, y, z), alpha)
	default:
		return s.src(0).Value(x, y, z)
	}
}
