// Package noise holds the lattice primitives the generator modules are built
// from: integer hashing, gradient and value noise, and interpolation curves.
package noise

import (
	"fmt"
	"math"
	"strings"
)

// Quality selects the interpolation kernel between lattice points.
type Quality int

const (
	// Fast interpolates linearly. Axis-aligned creases are visible.
	Fast Quality = iota
	// Standard uses the cubic s-curve 3t²-2t³.
	Standard
	// Best uses the quintic 6t⁵-15t⁴+10t³, continuous in the second derivative.
	Best
)

func (q Quality) String() string {
	switch q {
	case Fast:
		return "fast"
	case Standard:
		return "standard"
	case Best:
		return "best"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// Valid reports whether q is one of the defined levels.
func (q Quality) Valid() bool { return q >= Fast && q <= Best }

// ParseQuality accepts "fast", "standard"/"std" and "best".
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fast":
		return Fast, nil
	case "standard", "std":
		return Standard, nil
	case "best":
		return Best, nil
	}
	return Standard, fmt.Errorf("unknown noise quality %q", s)
}

// Ease maps t in [0,1] through the kernel for q.
func (q Quality) Ease(t float64) float64 {
	switch q {
	case Fast:
		return t
	case Best:
		return SCurve5(t)
	default:
		return SCurve3(t)
	}
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// SCurve3 is the cubic ease 3t²-2t³.
func SCurve3(t float64) float64 { return t * t * (3 - 2*t) }

// SCurve5 is the quintic ease 6t⁵-15t⁴+10t³.
func SCurve5(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

const latticeLimit = 1073741824.0

// FitLattice folds n into a range where the integer lattice coordinate
// still fits in an int32. Large inputs repeat rather than overflow.
func FitLattice(n float64) float64 {
	if n >= latticeLimit {
		return 2*math.Mod(n, latticeLimit) - latticeLimit
	}
	if n <= -latticeLimit {
		return 2*math.Mod(n, latticeLimit) + latticeLimit
	}
	return n
}

// Hash mixes a lattice coordinate with a seed into 32 well-distributed bits.
func Hash(ix, iy, iz, seed int32) uint32 {
	h := uint32(seed)*0x27d4eb2d ^
		uint32(ix)*0x8da6b343 ^
		uint32(iy)*0xd8163841 ^
		uint32(iz)*0xcb1ab31f
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	h *= 0x297a2d39
	h ^= h >> 15
	return h
}

// ValueNoise returns a pseudo-random value in (-1, 1] for a lattice point.
func ValueNoise(ix, iy, iz, seed int32) float64 {
	return 1 - float64(Hash(ix, iy, iz, seed)&0x7fffffff)/latticeLimit
}

// Cube edge midpoints, padded to 16 so the hash can be masked.
var gradients = [16][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
	{1, 1, 0}, {0, -1, 1}, {-1, 1, 0}, {0, -1, -1},
}

func gradientDot(fx, fy, fz float64, ix, iy, iz, seed int32) float64 {
	g := gradients[Hash(ix, iy, iz, seed)&15]
	return g[0]*(fx-float64(ix)) + g[1]*(fy-float64(iy)) + g[2]*(fz-float64(iz))
}

func latticeFloor(v float64) int32 {
	f := math.Floor(v)
	return int32(f)
}

// Gradient returns coherent gradient noise at (x, y, z), roughly in [-1, 1].
// It is zero on every integer lattice point.
func Gradient(x, y, z float64, seed int32, q Quality) float64 {
	x0 := latticeFloor(x)
	y0 := latticeFloor(y)
	z0 := latticeFloor(z)
	x1, y1, z1 := x0+1, y0+1, z0+1

	sx := q.Ease(x - float64(x0))
	sy := q.Ease(y - float64(y0))
	sz := q.Ease(z - float64(z0))

	n0 := gradientDot(x, y, z, x0, y0, z0, seed)
	n1 := gradientDot(x, y, z, x1, y0, z0, seed)
	ix0 := Lerp(n0, n1, sx)
	n0 = gradientDot(x, y, z, x0, y1, z0, seed)
	n1 = gradientDot(x, y, z, x1, y1, z0, seed)
	ix1 := Lerp(n0, n1, sx)
	iy0 := Lerp(ix0, ix1, sy)

	n0 = gradientDot(x, y, z, x0, y0, z1, seed)
	n1 = gradientDot(x, y, z, x1, y0, z1, seed)
	ix0 = Lerp(n0, n1, sx)
	n0 = gradientDot(x, y, z, x0, y1, z1, seed)
	n1 = gradientDot(x, y, z, x1, y1, z1, seed)
	ix1 = Lerp(n0, n1, sx)
	iy1 := Lerp(ix0, ix1, sy)

	return Lerp(iy0, iy1, sz)
}
