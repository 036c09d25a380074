package module

import (
	"math"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// ScaleBias remaps its source as v*Scale + Bias.
type ScaleBias struct {
	sources
	Scale float64
	Bias  float64
}

// NewScaleBias returns an identity remap.
func NewScaleBias() *ScaleBias {
	return &ScaleBias{sources: newSources(1), Scale: 1}
}

func (s *ScaleBias) Value(x, y, z float64) float64 {
	return s.src(0).Value(x, y, z)*s.Scale + s.Bias
}

// Clamp limits its source to [Lower, Upper].
type Clamp struct {
	sources
	Lower float64
	Upper float64
}

// NewClamp returns a clamp to [-1, 1].
func NewClamp() *Clamp {
	return &Clamp{sources: newSources(1), Lower: -1, Upper: 1}
}

func (c *Clamp) Check() error {
	if c.Lower > c.Upper {
		return errs.Invalid(errs.StageConfigure, "clamp lower %v above upper %v", c.Lower, c.Upper)
	}
	return nil
}

func (c *Clamp) Value(x, y, z float64) float64 {
	return clamp(c.src(0).Value(x, y, z), c.Lower, c.Upper)
}

// Abs outputs the absolute value of its source.
type Abs struct{ sources }

// NewAbs returns an unwired Abs.
func NewAbs() *Abs { return &Abs{sources: newSources(1)} }

func (a *Abs) Value(x, y, z float64) float64 { return math.Abs(a.src(0).Value(x, y, z)) }

// Invert negates its source.
type Invert struct{ sources }

// NewInvert returns an unwired Invert.
func NewInvert() *Invert { return &Invert{sources: newSources(1)} }

func (i *Invert) Value(x, y, z float64) float64 { return -i.src(0).Value(x, y, z) }
