package gradient

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestAddPointKeepsOrder(t *testing.T) {
	g := &Gradient{}
	require.NoError(t, g.AddPoint(1, white))
	require.NoError(t, g.AddPoint(-1, black))
	require.NoError(t, g.AddPoint(0, red))

	pts := g.Points()
	require.Len(t, pts, 3)
	assert.Equal(t, []float64{-1, 0, 1}, []float64{pts[0].Pos, pts[1].Pos, pts[2].Pos})
}

func TestAddPointRejectsDuplicate(t *testing.T) {
	g := Grayscale()
	err := g.AddPoint(1, red)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, white, g.Color(1), "duplicate must not replace the existing point")
}

func TestColorAtControlPoints(t *testing.T) {
	g := MustNew(
		Point{Pos: -1, Color: black},
		Point{Pos: 0.25, Color: red},
		Point{Pos: 1, Color: white},
	)
	assert.Equal(t, black, g.Color(-1))
	assert.Equal(t, red, g.Color(0.25))
	assert.Equal(t, white, g.Color(1))
}

func TestColorInterpolatesAndClamps(t *testing.T) {
	g := Grayscale()

	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, g.Color(0))
	assert.Equal(t, color.NRGBA{R: 191, G: 191, B: 191, A: 255}, g.Color(0.5))
	assert.Equal(t, black, g.Color(-7))
	assert.Equal(t, white, g.Color(42))

	prev := -1
	for v := -1.0; v <= 1.0; v += 0.01 {
		r := int(g.Color(v).R)
		assert.GreaterOrEqual(t, r, prev, "ramp must be monotonic at %v", v)
		prev = r
	}
}

func TestColorInterpolatesAlpha(t *testing.T) {
	g := MustNew(
		Point{Pos: 0, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 0}},
		Point{Pos: 1, Color: white},
	)
	assert.Equal(t, uint8(128), g.Color(0.5).A)
}

func TestSinglePoint(t *testing.T) {
	g := MustNew(Point{Pos: 0, Color: red})
	require.NoError(t, g.Validate())
	assert.Equal(t, red, g.Color(-5))
	assert.Equal(t, red, g.Color(5))
}

func TestClearAndValidate(t *testing.T) {
	g := Grayscale()
	g.Clear()
	assert.Equal(t, 0, g.Len())
	assert.ErrorIs(t, g.Validate(), errs.ErrInvalidParameter)

	var nilGradient *Gradient
	assert.ErrorIs(t, nilGradient.Validate(), errs.ErrInvalidParameter)

	_, err := New(Point{Pos: 0, Color: red}, Point{Pos: 0, Color: white})
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}
