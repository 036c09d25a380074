package renderer

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/gradient"
	"github.com/MeKo-Tech/noisetex/internal/module"
	"github.com/MeKo-Tech/noisetex/internal/noisemap"
)

func constMap(t *testing.T, w, h int, v float64) *noisemap.NoiseMap {
	t.Helper()
	b := noisemap.PlaneBuilder{
		Bounds: orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 1}},
		Width:  w,
		Height: h,
	}
	m, err := b.Build(context.Background(), module.NewConst(v))
	require.NoError(t, err)
	return m
}

// rampMap holds x/width in every row.
func rampMap(t *testing.T, w, h int) *noisemap.NoiseMap {
	t.Helper()
	m, err := noisemap.New(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, float64(x)/float64(w))
		}
	}
	return m
}

func TestRenderConstantMidGray(t *testing.T) {
	m := constMap(t, 4, 4, 0)
	img, err := ImageRenderer{Gradient: gradient.Grayscale()}.Render(m)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, img.NRGBAAt(x, y))
		}
	}
}

func TestRenderConstantHalf(t *testing.T) {
	m := constMap(t, 4, 4, 0.5)
	for _, v := range m.Values {
		require.Equal(t, 0.5, v)
	}

	img, err := ImageRenderer{Gradient: gradient.Grayscale()}.Render(m)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 191, G: 191, B: 191, A: 255}, img.NRGBAAt(2, 3))
}

func TestRenderFlatLightOverhead(t *testing.T) {
	m := constMap(t, 3, 3, 0)
	light := DefaultLight()
	light.Enabled = true
	light.Elevation = 90

	img, err := ImageRenderer{Gradient: gradient.Grayscale(), Light: light}.Render(m)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, img.NRGBAAt(1, 1))
}

func TestRenderLightDirection(t *testing.T) {
	m := rampMap(t, 8, 3)
	g := gradient.MustNew(
		gradient.Point{Pos: -1, Color: color.NRGBA{R: 200, G: 200, B: 200, A: 255}},
		gradient.Point{Pos: 1, Color: color.NRGBA{R: 200, G: 200, B: 200, A: 255}},
	)

	render := func(azimuth float64) color.NRGBA {
		light := DefaultLight()
		light.Enabled = true
		light.Azimuth = azimuth
		light.Elevation = 30
		light.Contrast = 4
		img, err := ImageRenderer{Gradient: g, Light: light}.Render(m)
		require.NoError(t, err)
		return img.NRGBAAt(4, 1)
	}

	// Heights rise towards +x, so a light from -x hits the slope head on.
	fromWest := render(180)
	fromEast := render(0)
	assert.Greater(t, fromWest.R, fromEast.R)
	assert.Equal(t, uint8(255), fromWest.A)
	assert.Equal(t, uint8(255), fromEast.A)
}

func TestRenderLightTint(t *testing.T) {
	m := constMap(t, 2, 2, 1)
	light := DefaultLight()
	light.Enabled = true
	light.Elevation = 90
	light.Color = color.NRGBA{R: 255, G: 0, B: 128, A: 255}

	img, err := ImageRenderer{Gradient: gradient.Grayscale(), Light: light}.Render(m)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 128, A: 255}, img.NRGBAAt(0, 0))
}

func TestRenderOverBackground(t *testing.T) {
	m := constMap(t, 2, 2, 0)
	g := gradient.MustNew(gradient.Point{Pos: 0, Color: color.NRGBA{R: 255, A: 0}})

	bg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			bg.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	img, err := ImageRenderer{Gradient: g, Background: bg}.Render(m)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(1, 1), "transparent layer shows the background")
}

func TestRenderValidation(t *testing.T) {
	m := constMap(t, 2, 2, 0)

	_, err := ImageRenderer{Gradient: &gradient.Gradient{}}.Render(m)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = ImageRenderer{Gradient: gradient.Grayscale()}.Render(nil)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	bg := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	_, err = ImageRenderer{Gradient: gradient.Grayscale(), Background: bg}.Render(m)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	stage, ok := errs.StageOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.StageRender, stage)

	light := DefaultLight()
	light.Enabled = true
	light.Contrast = -1
	_, err = ImageRenderer{Gradient: gradient.Grayscale(), Light: light}.Render(m)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestRenderPasses(t *testing.T) {
	base := constMap(t, 2, 2, 0)
	top := constMap(t, 2, 2, 0)
	cloud := gradient.MustNew(
		gradient.Point{Pos: -1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 0}},
		gradient.Point{Pos: 1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	)

	out, err := RenderPasses(
		Pass{Map: base, Gradient: gradient.MustNew(gradient.Point{Pos: 0, Color: color.NRGBA{B: 200, A: 255}})},
		Pass{Map: top, Gradient: cloud},
	)
	require.NoError(t, err)

	got := out.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), got.A)
	assert.Greater(t, got.R, uint8(100))
	assert.Less(t, got.R, uint8(160))

	_, err = RenderPasses()
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestRenderPassesMatchesBackground(t *testing.T) {
	base := constMap(t, 3, 2, -0.5)
	top := constMap(t, 3, 2, 0.25)
	water := gradient.MustNew(
		gradient.Point{Pos: -1, Color: color.NRGBA{B: 128, A: 255}},
		gradient.Point{Pos: 1, Color: color.NRGBA{G: 200, B: 255, A: 255}},
	)
	cloud := gradient.MustNew(
		gradient.Point{Pos: -1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 0}},
		gradient.Point{Pos: 1, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	)

	bottom, err := ImageRenderer{Gradient: water}.Render(base)
	require.NoError(t, err)
	want, err := ImageRenderer{Gradient: cloud, Background: bottom}.Render(top)
	require.NoError(t, err)

	got, err := RenderPasses(Pass{Map: base, Gradient: water}, Pass{Map: top, Gradient: cloud})
	require.NoError(t, err)
	assert.Equal(t, want.Pix, got.Pix)
}

func TestRenderPassesSizeMismatch(t *testing.T) {
	g := gradient.Grayscale()
	_, err := RenderPasses(
		Pass{Map: constMap(t, 2, 2, 0), Gradient: g},
		Pass{Map: constMap(t, 3, 2, 0), Gradient: g},
	)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}
