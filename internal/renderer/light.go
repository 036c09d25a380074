package renderer

import (
	"image/color"
	"math"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/noisemap"
)

// Light is a directional light used to shade a rendered map as if its
// values were heights.
type Light struct {
	Enabled bool

	// Azimuth is the compass direction the light comes from, in degrees
	// counterclockwise from +x. Elevation is its angle above the map plane.
	Azimuth   float64
	Elevation float64

	// Contrast scales the height differences used for the surface normal.
	Contrast   float64
	Brightness float64
	Color      color.NRGBA
}

// DefaultLight returns a disabled white light from the north-east at 45°.
func DefaultLight() Light {
	return Light{
		Azimuth:    45,
		Elevation:  45,
		Contrast:   1,
		Brightness: 1,
		Color:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate checks the light parameters. A disabled light is always valid.
func (l Light) Validate() error {
	if !l.Enabled {
		return nil
	}
	for _, v := range []float64{l.Azimuth, l.Elevation, l.Contrast, l.Brightness} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Invalid(errs.StageRender, "light parameters must be finite")
		}
	}
	if l.Contrast < 0 || l.Brightness < 0 {
		return errs.Invalid(errs.StageRender, "light contrast %v and brightness %v must be non-negative", l.Contrast, l.Brightness)
	}
	return nil
}

// direction returns the unit vector pointing towards the light.
func (l Light) direction() (x, y, z float64) {
	sinA, cosA := math.Sincos(l.Azimuth * math.Pi / 180)
	sinE, cosE := math.Sincos(l.Elevation * math.Pi / 180)
	return cosE * cosA, cosE * sinA, sinE
}

// shader precomputes the light direction for a map.
type shader struct {
	light      Light
	lx, ly, lz float64
}

func newShader(l Light) shader {
	s := shader{light: l}
	s.lx, s.ly, s.lz = l.direction()
	return s
}

// intensity returns the light reaching cell (x, y).
func (s shader) intensity(m *noisemap.NoiseMap, x, y int) float64 {
	left := m.At(neighbor(x-1, m.Width, m.Seamless), y)
	right := m.At(neighbor(x+1, m.Width, m.Seamless), y)
	up := m.At(x, neighbor(y-1, m.Height, m.Seamless))
	down := m.At(x, neighbor(y+1, m.Height, m.Seamless))

	nx := s.light.Contrast * (left - right)
	ny := s.light.Contrast * (down - up)
	dot := nx*s.lx + ny*s.ly + s.lz
	return math.Max(0, dot) * s.light.Brightness
}

// apply scales the color channels of c by intensity and the light tint.
func (s shader) apply(c color.NRGBA, intensity float64) color.NRGBA {
	scale := func(v, tint uint8) uint8 {
		out := float64(v) * intensity * float64(tint) / 255
		return uint8(math.Round(math.Max(0, math.Min(255, out))))
	}
	return color.NRGBA{
		R: scale(c.R, s.light.Color.R),
		G: scale(c.G, s.light.Color.G),
		B: scale(c.B, s.light.Color.B),
		A: c.A,
	}
}

// neighbor resolves index i along an axis of size n. Out-of-range indices
// clamp to the edge, or wrap with period n-1 on seamless maps where the
// first and last samples coincide.
func neighbor(i, n int, seamless bool) int {
	if i >= 0 && i < n {
		return i
	}
	if seamless && n > 1 {
		period := n - 1
		return ((i % period) + period) % period
	}
	if i < 0 {
		return 0
	}
	return n - 1
}
