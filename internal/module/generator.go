package module

import (
	"math"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/noise"
)

// generator supplies the no-input half of the Module interface.
type generator struct{}

func (generator) SourceCount() int { return 0 }
func (generator) Source(int) Module { return nil }

// Const outputs the same value everywhere.
type Const struct {
	generator
	Constant float64
}

// NewConst returns a constant generator.
func NewConst(v float64) *Const { return &Const{Constant: v} }

func (c *Const) Value(_, _, _ float64) float64 { return c.Constant }

// Octaves holds the fractal parameters shared by the gradient-noise generators.
type Octaves struct {
	Seed        int32
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	OctaveCount int
	Quality     noise.Quality
}

// DefaultOctaves returns frequency 1, lacunarity 2, persistence 0.5, six
// octaves at standard quality.
func DefaultOctaves() Octaves {
	return Octaves{
		Frequency:   1,
		Lacunarity:  2,
		Persistence: 0.5,
		OctaveCount: 6,
		Quality:     noise.Standard,
	}
}

// Check validates the octave parameters.
func (o *Octaves) Check() error {
	if err := checkOctaves("octave count", o.OctaveCount); err != nil {
		return err
	}
	if !o.Quality.Valid() {
		return errs.Invalid(errs.StageConfigure, "unknown noise quality %d", int(o.Quality))
	}
	if !finite(o.Frequency) || !finite(o.Lacunarity) || !finite(o.Persistence) {
		return errs.Invalid(errs.StageConfigure, "frequency, lacunarity and persistence must be finite")
	}
	return nil
}

// octaveNoise samples one octave of gradient noise.
func (o *Octaves) octaveNoise(x, y, z float64, octave int) float64 {
	return noise.Gradient(
		noise.FitLattice(x),
		noise.FitLattice(y),
		noise.FitLattice(z),
		o.Seed+int32(octave),
		o.Quality,
	)
}

// Perlin sums octaves of signed gradient noise.
type Perlin struct {
	generator
	Octaves
}

// NewPerlin returns a Perlin generator with default octaves.
func NewPerlin() *Perlin { return &Perlin{Octaves: DefaultOctaves()} }

func (p *Perlin) Value(x, y, z float64) float64 {
	x *= p.Frequency
	y *= p.Frequency
	z *= p.Frequency

	value := 0.0
	amp := 1.0
	for o := 0; o < p.OctaveCount; o++ {
		value += p.octaveNoise(x, y, z, o) * amp

		x *= p.Lacunarity
		y *= p.Lacunarity
		z *= p.Lacunarity
		amp *= p.Persistence
	}
	return value
}

// Billow folds every octave into 2|n|-1, giving rounded, cloud-like lumps.
type Billow struct {
	generator
	Octaves
}

// NewBillow returns a Billow generator with default octaves.
func NewBillow() *Billow { return &Billow{Octaves: DefaultOctaves()} }

func (b *Billow) Value(x, y, z float64) float64 {
	x *= b.Frequency
	y *= b.Frequency
	z *= b.Frequency

	value := 0.0
	amp := 1.0
	for o := 0; o < b.OctaveCount; o++ {
		signal := 2*math.Abs(b.octaveNoise(x, y, z, o)) - 1
		value += signal * amp

		x *= b.Lacunarity
		y *= b.Lacunarity
		z *= b.Lacunarity
		amp *= b.Persistence
	}
	return value + 0.5
}

// RidgedMulti builds sharp ridges from 1-|n|, each octave weighted by the
// one before it. Persistence is unused; octave amplitudes fall off as
// 1/frequency.
type RidgedMulti struct {
	generator
	Octaves
}

// NewRidgedMulti returns a ridged multifractal generator with default octaves.
func NewRidgedMulti() *RidgedMulti { return &RidgedMulti{Octaves: DefaultOctaves()} }

func (r *RidgedMulti) Value(x, y, z float64) float64 {
	const (
		offset = 1.0
		gain   = 2.0
	)

	x *= r.Frequency
	y *= r.Frequency
	z *= r.Frequency

	value := 0.0
	weight := 1.0
	freq := 1.0
	for o := 0; o < r.OctaveCount; o++ {
		signal := offset - math.Abs(r.octaveNoise(x, y, z, o))
		signal *= signal
		signal *= weight

		weight = clamp(signal*gain, 0, 1)
		value += signal / freq

		x *= r.Lacunarity
		y *= r.Lacunarity
		z *= r.Lacunarity
		freq *= r.Lacunarity
	}
	return value*1.25 - 1
}

// Cylinders outputs concentric cylinders centered on the y axis. Values
// peak at 1 on each cylinder surface and fall to -1 halfway between them.
type Cylinders struct {
	generator
	Frequency float64
}

// NewCylinders returns cylinders one unit apart.
func NewCylinders() *Cylinders { return &Cylinders{Frequency: 1} }

func (c *Cylinders) Check() error {
	if !finite(c.Frequency) {
		return errs.Invalid(errs.StageConfigure, "cylinders frequency must be finite")
	}
	return nil
}

func (c *Cylinders) Value(x, _, z float64) float64 {
	x *= c.Frequency
	z *= c.Frequency

	dist := math.Hypot(x, z)
	small := dist - math.Floor(dist)
	large := 1 - small
	return 1 - math.Min(small, large)*4
}

// Voronoi partitions space into cells around jittered seed points.
// With EnableDistance the output grows with distance from the nearest seed
// point; Displacement scales a per-cell random value added on top.
type Voronoi struct {
	generator
	Seed           int32
	Frequency      float64
	Displacement   float64
	EnableDistance bool
}

// NewVoronoi returns a Voronoi generator with unit frequency and displacement.
func NewVoronoi() *Voronoi { return &Voronoi{Frequency: 1, Displacement: 1} }

func (v *Voronoi) Check() error {
	if !finite(v.Frequency) || !finite(v.Displacement) {
		return errs.Invalid(errs.StageConfigure, "voronoi frequency and displacement must be finite")
	}
	return nil
}

func (v *Voronoi) Value(x, y, z float64) float64 {
	x = noise.FitLattice(x * v.Frequency)
	y = noise.FitLattice(y * v.Frequency)
	z = noise.FitLattice(z * v.Frequency)

	xi := int32(math.Floor(x))
	yi := int32(math.Floor(y))
	zi := int32(math.Floor(z))

	minDist := math.MaxFloat64
	var cellX, cellY, cellZ int32
	// Seed points are jittered up to one cell away, so search two cells out.
	for zc := zi - 2; zc <= zi+2; zc++ {
		for yc := yi - 2; yc <= yi+2; yc++ {
			for xc := xi - 2; xc <= xi+2; xc++ {
				px := float64(xc) + noise.ValueNoise(xc, yc, zc, v.Seed)
				py := float64(yc) + noise.ValueNoise(xc, yc, zc, v.Seed+1)
				pz := float64(zc) + noise.ValueNoise(xc, yc, zc, v.Seed+2)

				dx, dy, dz := px-x, py-y, pz-z
				d := dx*dx + dy*dy + dz*dz
				if d < minDist {
					minDist = d
					cellX, cellY, cellZ = xc, yc, zc
				}
			}
		}
	}

	value := 0.0
	if v.EnableDistance {
		value = math.Sqrt(minDist)*math.Sqrt(3) - 1
	}
	return value + v.Displacement*noise.ValueNoise(cellX, cellY, cellZ, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
