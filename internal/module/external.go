package module

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// Simplex sums octaves of OpenSimplex noise. The underlying field is built
// from the seed, so the seed is only changed through SetSeed.
type Simplex struct {
	generator
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	OctaveCount int

	seed  int64
	field opensimplex.Noise
}

// NewSimplex returns a simplex generator with four octaves.
func NewSimplex(seed int64) *Simplex {
	s := &Simplex{
		Frequency:   1,
		Lacunarity:  2,
		Persistence: 0.5,
		OctaveCount: 4,
	}
	s.SetSeed(seed)
	return s
}

// Seed returns the seed the field was built from.
func (s *Simplex) Seed() int64 { return s.seed }

// SetSeed rebuilds the underlying field.
func (s *Simplex) SetSeed(seed int64) {
	s.seed = seed
	s.field = opensimplex.New(seed)
}

func (s *Simplex) Check() error {
	if err := checkOctaves("octave count", s.OctaveCount); err != nil {
		return err
	}
	if !finite(s.Frequency) || !finite(s.Lacunarity) || !finite(s.Persistence) {
		return errs.Invalid(errs.StageConfigure, "simplex frequency, lacunarity and persistence must be finite")
	}
	return nil
}

func (s *Simplex) Value(x, y, z float64) float64 {
	x *= s.Frequency
	y *= s.Frequency
	z *= s.Frequency

	value := 0.0
	amp := 1.0
	for o := 0; o < s.OctaveCount; o++ {
		value += s.field.Eval3(x, y, z) * amp

		x *= s.Lacunarity
		y *= s.Lacunarity
		z *= s.Lacunarity
		amp *= s.Persistence
	}
	return value
}

// ClassicPerlin wraps Ken Perlin's original reference noise. Alpha divides
// the amplitude and beta multiplies the frequency from one octave to the next.
type ClassicPerlin struct {
	generator
	Frequency float64

	alpha   float64
	beta    float64
	octaves int
	seed    int64
	field   *perlin.Perlin
}

// NewClassicPerlin builds the reference noise field.
func NewClassicPerlin(alpha, beta float64, octaves int, seed int64) (*ClassicPerlin, error) {
	if err := checkOctaves("octave count", octaves); err != nil {
		return nil, err
	}
	if alpha <= 0 || beta <= 0 || !finite(alpha) || !finite(beta) {
		return nil, errs.Invalid(errs.StageConfigure, "classic perlin alpha %v and beta %v must be positive", alpha, beta)
	}
	return &ClassicPerlin{
		Frequency: 1,
		alpha:     alpha,
		beta:      beta,
		octaves:   octaves,
		seed:      seed,
		field:     perlin.NewPerlin(alpha, beta, int32(octaves), seed),
	}, nil
}

// Seed returns the seed the field was built from.
func (c *ClassicPerlin) Seed() int64 { return c.seed }

// OctaveCount returns the number of octaves summed per sample.
func (c *ClassicPerlin) OctaveCount() int { return c.octaves }

func (c *ClassicPerlin) Value(x, y, z float64) float64 {
	return c.field.Noise3D(x*c.Frequency, y*c.Frequency, z*c.Frequency)
}
