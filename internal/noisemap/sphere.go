package noisemap

import (
	"context"
	"math"

	"github.com/paulmach/orb"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/module"
)

// WholeSphere covers every longitude and latitude.
var WholeSphere = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// SphereBuilder samples a module on the unit sphere using an
// equirectangular grid. Bounds.Min is (lon0, lat0) and Bounds.Max is
// (lon1, lat1), in degrees.
//
// Row 0 is lat1 and the last row is lat0, so north is up. Both latitude
// bounds are sampled. Longitude runs from lon0 and stops one column short
// of lon1.
type SphereBuilder struct {
	Bounds  orb.Bound
	Width   int
	Height  int
	Workers int
}

func (b SphereBuilder) validate(m module.Module) error {
	if b.Width <= 0 || b.Height <= 0 {
		return errs.Invalid(errs.StageBuild, "sphere size %dx%d must be positive", b.Width, b.Height)
	}
	if err := checkBound(b.Bounds); err != nil {
		return err
	}
	if b.Bounds.Min.Lat() < -90 || b.Bounds.Max.Lat() > 90 {
		return errs.Invalid(errs.StageBuild, "latitude bounds [%v,%v] outside [-90,90]", b.Bounds.Min.Lat(), b.Bounds.Max.Lat())
	}
	if b.Bounds.Min.Lon() < -180 || b.Bounds.Max.Lon() > 180 {
		return errs.Invalid(errs.StageBuild, "longitude bounds [%v,%v] outside [-180,180]", b.Bounds.Min.Lon(), b.Bounds.Max.Lon())
	}
	if err := module.Validate(m); err != nil {
		return &errs.Error{Stage: errs.StageBuild, Op: "validate module", Err: err}
	}
	return nil
}

// Build evaluates m at every cell of a Width x Height map.
func (b SphereBuilder) Build(ctx context.Context, m module.Module) (*NoiseMap, error) {
	if err := b.validate(m); err != nil {
		return nil, err
	}

	nm, err := New(b.Width, b.Height)
	if err != nil {
		return nil, err
	}

	lon0 := b.Bounds.Min.Lon()
	lonExtent := b.Bounds.Max.Lon() - lon0

	err = fillRows(ctx, b.Height, b.Workers, func(py int) {
		lat := b.rowLat(py)
		row := nm.Row(py)
		for px := range row {
			lon := lon0 + float64(px)*lonExtent/float64(b.Width)
			x, y, z := LatLonToXYZ(lat, lon)
			row[px] = m.Value(x, y, z)
		}
	})
	if err != nil {
		return nil, &errs.Error{Stage: errs.StageBuild, Op: "sample sphere", Err: err}
	}
	return nm, nil
}

// rowLat returns the latitude sampled by row py. The first and last rows
// take the bounds exactly so a pole in the bounds is hit without rounding.
func (b SphereBuilder) rowLat(py int) float64 {
	lat0, lat1 := b.Bounds.Min.Lat(), b.Bounds.Max.Lat()
	switch {
	case py == 0:
		return lat1
	case py == b.Height-1:
		return lat0
	}
	return lat0 + (lat1-lat0)*float64(b.Height-1-py)/float64(b.Height-1)
}

// LatLonToXYZ converts degrees to a point on the unit sphere with y up.
// At the poles x and z are exactly zero, and longitudes -180 and 180
// produce the same point.
func LatLonToXYZ(lat, lon float64) (x, y, z float64) {
	latRad := lat * math.Pi / 180
	y = math.Sin(latRad)
	if math.Abs(lat) == 90 {
		return 0, y, 0
	}

	r := math.Cos(latRad)
	sinLon, cosLon := math.Sincos(normalizeLon(lon) * math.Pi / 180)
	return r * cosLon, y, r * sinLon
}

// normalizeLon folds lon into (-180, 180].
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon, 360)
	switch {
	case lon <= -180:
		lon += 360
	case lon > 180:
		lon -= 360
	}
	return lon
}
