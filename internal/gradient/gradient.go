// Package gradient maps scalar noise values to colors.
package gradient

import (
	"image/color"
	"math"
	"sort"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// Point is one control point of a gradient.
type Point struct {
	Pos   float64
	Color color.NRGBA
}

// Gradient is a piecewise-linear color ramp. Points are kept sorted by
// position and no two points share a position.
type Gradient struct {
	points []Point
}

// New builds a gradient from points given in any order.
func New(points ...Point) (*Gradient, error) {
	g := &Gradient{}
	for _, p := range points {
		if err := g.AddPoint(p.Pos, p.Color); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// MustNew is New for gradient literals known to be valid.
func MustNew(points ...Point) *Gradient {
	g, err := New(points...)
	if err != nil {
		panic(err)
	}
	return g
}

// Grayscale returns the two-point ramp from black at -1 to white at 1.
func Grayscale() *Gradient {
	return MustNew(
		Point{Pos: -1, Color: color.NRGBA{A: 255}},
		Point{Pos: 1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	)
}

// Clear removes all points.
func (g *Gradient) Clear() { g.points = g.points[:0] }

// Len returns the number of control points.
func (g *Gradient) Len() int { return len(g.points) }

// Points returns a copy of the control points in ascending order.
func (g *Gradient) Points() []Point {
	out := make([]Point, len(g.points))
	copy(out, g.points)
	return out
}

// AddPoint inserts a control point. Adding a second point at an existing
// position is an error.
func (g *Gradient) AddPoint(pos float64, c color.NRGBA) error {
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return errs.Invalid(errs.StageConfigure, "gradient position %v must be finite", pos)
	}

	i := sort.Search(len(g.points), func(i int) bool { return g.points[i].Pos >= pos })
	if i < len(g.points) && g.points[i].Pos == pos {
		return errs.Invalid(errs.StageConfigure, "gradient already has a point at %v", pos)
	}

	g.points = append(g.points, Point{})
	copy(g.points[i+1:], g.points[i:])
	g.points[i] = Point{Pos: pos, Color: c}
	return nil
}

// Validate reports whether the gradient can be used for rendering.
func (g *Gradient) Validate() error {
	if g == nil || len(g.points) == 0 {
		return errs.Invalid(errs.StageRender, "gradient has no points")
	}
	return nil
}

// Color returns the color at v. Values outside the point range take the
// color of the nearest end point.
func (g *Gradient) Color(v float64) color.NRGBA {
	n := len(g.points)
	if n == 0 {
		return color.NRGBA{}
	}
	if v <= g.points[0].Pos || math.IsNaN(v) {
		return g.points[0].Color
	}
	if v >= g.points[n-1].Pos {
		return g.points[n-1].Color
	}

	// First point strictly above v; its predecessor is at or below.
	i := sort.Search(n, func(i int) bool { return g.points[i].Pos > v })
	lo, hi := g.points[i-1], g.points[i]
	t := (v - lo.Pos) / (hi.Pos - lo.Pos)

	return color.NRGBA{
		R: lerp8(lo.Color.R, hi.Color.R, t),
		G: lerp8(lo.Color.G, hi.Color.G, t),
		B: lerp8(lo.Color.B, hi.Color.B, t),
		A: lerp8(lo.Color.A, hi.Color.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
