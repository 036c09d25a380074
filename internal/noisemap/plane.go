package noisemap

import (
	"context"
	"math"

	"github.com/paulmach/orb"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/module"
)

// PlaneBuilder samples a module on the y=0 plane. Bounds.Min is (x0, z0)
// and Bounds.Max is (x1, z1).
type PlaneBuilder struct {
	Bounds orb.Bound
	Width  int
	Height int

	// Seamless blends each sample with its copies one period over in x
	// and z so that the first and last column (and row) match.
	Seamless bool

	// Workers is the number of goroutines sampling rows. Zero uses one
	// per CPU.
	Workers int
}

func (b PlaneBuilder) validate(m module.Module) error {
	if b.Width <= 0 || b.Height <= 0 {
		return errs.Invalid(errs.StageBuild, "plane size %dx%d must be positive", b.Width, b.Height)
	}
	if err := checkBound(b.Bounds); err != nil {
		return err
	}
	if err := module.Validate(m); err != nil {
		return &errs.Error{Stage: errs.StageBuild, Op: "validate module", Err: err}
	}
	return nil
}

// Build evaluates m at every cell of a Width x Height map.
func (b PlaneBuilder) Build(ctx context.Context, m module.Module) (*NoiseMap, error) {
	if err := b.validate(m); err != nil {
		return nil, err
	}

	nm, err := New(b.Width, b.Height)
	if err != nil {
		return nil, err
	}
	nm.Seamless = b.Seamless

	x0, z0 := b.Bounds.Min.X(), b.Bounds.Min.Y()
	xExtent := b.Bounds.Max.X() - x0
	zExtent := b.Bounds.Max.Y() - z0

	xAxis := newPlaneAxis(x0, xExtent, b.Width, b.Seamless)
	zAxis := newPlaneAxis(z0, zExtent, b.Height, b.Seamless)

	err = fillRows(ctx, b.Height, b.Workers, func(pz int) {
		z, tz := zAxis.at(pz)
		row := nm.Row(pz)
		for px := range row {
			x, tx := xAxis.at(px)
			row[px] = samplePlane(m, x, z, xExtent, zExtent, tx, tz, xAxis.blend, zAxis.blend)
		}
	})
	if err != nil {
		return nil, &errs.Error{Stage: errs.StageBuild, Op: "sample plane", Err: err}
	}
	return nm, nil
}

// planeAxis maps pixel indices to coordinates along one axis.
type planeAxis struct {
	origin float64
	extent float64
	size   int
	blend  bool
}

func newPlaneAxis(origin, extent float64, size int, seamless bool) planeAxis {
	return planeAxis{origin: origin, extent: extent, size: size, blend: seamless && size > 1}
}

// at returns the coordinate of pixel i and, for blended axes, its
// fractional position t in [0, 1] across the tile.
func (a planeAxis) at(i int) (coord, t float64) {
	if !a.blend {
		return a.origin + float64(i)*a.extent/float64(a.size), 1
	}
	t = float64(i) / float64(a.size-1)
	return a.origin + a.extent*t, t
}

func samplePlane(m module.Module, x, z, xExtent, zExtent, tx, tz float64, blendX, blendZ bool) float64 {
	switch {
	case blendX && blendZ:
		sw := m.Value(x, 0, z)
		se := m.Value(x+xExtent, 0, z)
		nw := m.Value(x, 0, z+zExtent)
		ne := m.Value(x+xExtent, 0, z+zExtent)
		south := tx*sw + (1-tx)*se
		north := tx*nw + (1-tx)*ne
		return tz*south + (1-tz)*north
	case blendX:
		return tx*m.Value(x, 0, z) + (1-tx)*m.Value(x+xExtent, 0, z)
	case blendZ:
		return tz*m.Value(x, 0, z) + (1-tz)*m.Value(x, 0, z+zExtent)
	default:
		return m.Value(x, 0, z)
	}
}

func checkBound(bound orb.Bound) error {
	for _, v := range []float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Invalid(errs.StageBuild, "bounds %v must be finite", bound)
		}
	}
	if !(bound.Min.X() < bound.Max.X()) || !(bound.Min.Y() < bound.Max.Y()) {
		return errs.Invalid(errs.StageBuild, "bounds %v are degenerate", bound)
	}
	return nil
}
