package module

import (
	"math"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// TranslatePoint shifts the sampling point before delegating to source 0.
type TranslatePoint struct {
	sources
	X, Y, Z float64
}

// NewTranslatePoint returns a zero translation.
func NewTranslatePoint() *TranslatePoint {
	return &TranslatePoint{sources: newSources(1)}
}

func (t *TranslatePoint) Value(x, y, z float64) float64 {
	return t.src(0).Value(x+t.X, y+t.Y, z+t.Z)
}

// ScalePoint multiplies each axis of the sampling point.
type ScalePoint struct {
	sources
	X, Y, Z float64
}

// NewScalePoint returns an identity scale.
func NewScalePoint() *ScalePoint {
	return &ScalePoint{sources: newSources(1), X: 1, Y: 1, Z: 1}
}

func (s *ScalePoint) Value(x, y, z float64) float64 {
	return s.src(0).Value(x*s.X, y*s.Y, z*s.Z)
}

// RotatePoint rotates the sampling point about the origin. Angles are in
// degrees; the rotation matrix is derived in SetAngles.
type RotatePoint struct {
	sources
	xAngle, yAngle, zAngle float64
	m                      [3][3]float64
}

// NewRotatePoint returns an identity rotation.
func NewRotatePoint() *RotatePoint {
	r := &RotatePoint{sources: newSources(1)}
	r.SetAngles(0, 0, 0)
	return r
}

// Angles returns the x, y and z rotation in degrees.
func (r *RotatePoint) Angles() (x, y, z float64) { return r.xAngle, r.yAngle, r.zAngle }

// SetAngles sets the rotation around each axis, in degrees.
func (r *RotatePoint) SetAngles(x, y, z float64) {
	xSin, xCos := math.Sincos(x * math.Pi / 180)
	ySin, yCos := math.Sincos(y * math.Pi / 180)
	zSin, zCos := math.Sincos(z * math.Pi / 180)

	r.m = [3][3]float64{
		{ySin*xSin*zSin + yCos*zCos, xCos * zSin, ySin*zCos - yCos*xSin*zSin},
		{ySin*xSin*zCos - yCos*zSin, xCos * zCos, -yCos*xSin*zCos - ySin*zSin},
		{-ySin * xCos, xSin, yCos * xCos},
	}
	r.xAngle, r.yAngle, r.zAngle = x, y, z
}

func (r *RotatePoint) Value(x, y, z float64) float64 {
	nx := r.m[0][0]*x + r.m[0][1]*y + r.m[0][2]*z
	ny := r.m[1][0]*x + r.m[1][1]*y + r.m[1][2]*z
	nz := r.m[2][0]*x + r.m[2][1]*y + r.m[2][2]*z
	return r.src(0).Value(nx, ny, nz)
}

// Turbulence displaces each axis of the sampling point by its own Perlin
// field before delegating to source 0. Power scales the displacement and
// roughness is the octave count of the displacement fields.
type Turbulence struct {
	sources
	power    float64
	xDistort *Perlin
	yDistort *Perlin
	zDistort *Perlin
}

// NewTurbulence returns turbulence with power 1, frequency 1 and roughness 3.
func NewTurbulence() *Turbulence {
	t := &Turbulence{
		sources:  newSources(1),
		power:    1,
		xDistort: NewPerlin(),
		yDistort: NewPerlin(),
		zDistort: NewPerlin(),
	}
	t.SetSeed(0)
	_ = t.SetRoughness(3)
	return t
}

// Seed returns the seed of the x displacement field; y and z use seed+1
// and seed+2.
func (t *Turbulence) Seed() int32 { return t.xDistort.Seed }

// SetSeed reseeds the three displacement fields.
func (t *Turbulence) SetSeed(seed int32) {
	t.xDistort.Seed = seed
	t.yDistort.Seed = seed + 1
	t.zDistort.Seed = seed + 2
}

// Frequency returns the displacement field frequency.
func (t *Turbulence) Frequency() float64 { return t.xDistort.Frequency }

// SetFrequency sets the frequency of the displacement fields.
func (t *Turbulence) SetFrequency(f float64) error {
	if !finite(f) {
		return errs.Invalid(errs.StageConfigure, "turbulence frequency must be finite")
	}
	t.xDistort.Frequency = f
	t.yDistort.Frequency = f
	t.zDistort.Frequency = f
	return nil
}

// Power returns the displacement scale.
func (t *Turbulence) Power() float64 { return t.power }

// SetPower sets the displacement scale.
func (t *Turbulence) SetPower(p float64) error {
	if !finite(p) {
		return errs.Invalid(errs.StageConfigure, "turbulence power must be finite")
	}
	t.power = p
	return nil
}

// Roughness returns the octave count of the displacement fields.
func (t *Turbulence) Roughness() int { return t.xDistort.OctaveCount }

// SetRoughness sets the octave count of the displacement fields.
func (t *Turbulence) SetRoughness(n int) error {
	if err := checkOctaves("roughness", n); err != nil {
		return err
	}
	t.xDistort.OctaveCount = n
	t.yDistort.OctaveCount = n
	t.zDistort.OctaveCount = n
	return nil
}

func (t *Turbulence) Value(x, y, z float64) float64 {
	// Each axis samples its field at a different fractional offset.
	x0, y0, z0 := x+12414.0/65536.0, y+65124.0/65536.0, z+31337.0/65536.0
	x1, y1, z1 := x+26519.0/65536.0, y+18128.0/65536.0, z+60493.0/65536.0
	x2, y2, z2 := x+53820.0/65536.0, y+11213.0/65536.0, z+44845.0/65536.0

	xd := x + t.xDistort.Value(x0, y0, z0)*t.power
	yd := y + t.yDistort.Value(x1, y1, z1)*t.power
	zd := z + t.zDistort.Value(x2, y2, z2)*t.power
	return t.src(0).Value(xd, yd, zd)
}
