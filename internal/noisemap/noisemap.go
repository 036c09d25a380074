// Package noisemap samples module graphs onto 2D grids.
package noisemap

import (
	"math"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// NoiseMap is a row-major grid of scalar samples.
type NoiseMap struct {
	Width  int
	Height int
	Values []float64

	// Seamless is set by PlaneBuilder when the map tiles; renderers wrap
	// neighbor lookups across the duplicated edge.
	Seamless bool
}

// New allocates a zeroed width x height map.
func New(width, height int) (*NoiseMap, error) {
	if width <= 0 || height <= 0 {
		return nil, errs.Invalid(errs.StageBuild, "noise map size %dx%d must be positive", width, height)
	}
	return &NoiseMap{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}, nil
}

// At returns the sample at column x, row y.
func (m *NoiseMap) At(x, y int) float64 {
	return m.Values[y*m.Width+x]
}

// Set stores v at column x, row y.
func (m *NoiseMap) Set(x, y int, v float64) {
	m.Values[y*m.Width+x] = v
}

// Row returns the samples of row y. The slice aliases the map.
func (m *NoiseMap) Row(y int) []float64 {
	return m.Values[y*m.Width : (y+1)*m.Width]
}

// Range returns the smallest and largest sample.
func (m *NoiseMap) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range m.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
