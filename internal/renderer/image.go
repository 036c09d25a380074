// Package renderer turns noise maps into colored images.
package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/MeKo-Tech/noisetex/internal/composite"
	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/gradient"
	"github.com/MeKo-Tech/noisetex/internal/noisemap"
)

// ImageRenderer colors a noise map through a gradient, optionally shading
// it with a light and compositing it over a background.
type ImageRenderer struct {
	Gradient   *gradient.Gradient
	Light      Light
	Background image.Image
}

func (r ImageRenderer) validate(m *noisemap.NoiseMap) error {
	if m == nil || m.Width <= 0 || m.Height <= 0 || len(m.Values) != m.Width*m.Height {
		return errs.Invalid(errs.StageRender, "noise map is empty or malformed")
	}
	if err := r.Gradient.Validate(); err != nil {
		return err
	}
	if err := r.Light.Validate(); err != nil {
		return err
	}
	if r.Background != nil {
		want := image.Rect(0, 0, m.Width, m.Height)
		if r.Background.Bounds() != want {
			return errs.Invalid(errs.StageRender, "background bounds %v do not match map %v", r.Background.Bounds(), want)
		}
	}
	return nil
}

// Render produces an image the size of m.
func (r ImageRenderer) Render(m *noisemap.NoiseMap) (*image.NRGBA, error) {
	if err := r.validate(m); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	shade := newShader(r.Light)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := r.Gradient.Color(m.At(x, y))
			if r.Light.Enabled {
				c = shade.apply(c, shade.intensity(m, x, y))
			}
			if r.Background != nil {
				bg := color.NRGBAModel.Convert(r.Background.At(x, y)).(color.NRGBA)
				c = composite.OverColor(c, bg)
			}
			img.SetNRGBA(x, y, c)
		}
	}

	return img, nil
}

// Pass is one layer of a multi-layer render.
type Pass struct {
	Map      *noisemap.NoiseMap
	Gradient *gradient.Gradient
	Light    Light
}

// RenderPasses renders each pass on its own and stacks the results
// bottom-up, so every pass after the first is drawn over the ones below it.
func RenderPasses(passes ...Pass) (*image.NRGBA, error) {
	if len(passes) == 0 {
		return nil, errs.Invalid(errs.StageRender, "no render passes")
	}

	layers := make([]image.Image, len(passes))
	for i, p := range passes {
		r := ImageRenderer{Gradient: p.Gradient, Light: p.Light}
		img, err := r.Render(p.Map)
		if err != nil {
			return nil, &errs.Error{Stage: errs.StageRender, Op: fmt.Sprintf("pass %d", i), Err: err}
		}
		layers[i] = img
	}
	if len(layers) == 1 {
		return layers[0].(*image.NRGBA), nil
	}
	return composite.Stack(layers[0], layers[1:]...)
}
