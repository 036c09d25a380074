// Package composite layers rendered textures with alpha blending.
package composite

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

// Over draws src over dst in place. Both images must share bounds.
func Over(dst *image.NRGBA, src image.Image) error {
	if src.Bounds() != dst.Bounds() {
		return errs.Invalid(errs.StageRender, "layer bounds %v do not match %v", src.Bounds(), dst.Bounds())
	}
	alphaOver(dst, src)
	return nil
}

// Stack copies base and draws each layer over it, bottom to top. Nil
// layers are skipped.
func Stack(base image.Image, layers ...image.Image) (*image.NRGBA, error) {
	if base == nil {
		return nil, errs.Invalid(errs.StageRender, "stack needs a base image")
	}

	bounds := base.Bounds()
	if bounds.Empty() {
		return nil, errs.Invalid(errs.StageRender, "base bounds %v are empty", bounds)
	}
	dst := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x, y, base.At(x, y))
		}
	}

	for i, layer := range layers {
		if layer == nil {
			continue
		}
		if err := Over(dst, layer); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}

	return dst, nil
}

// OverColor blends a single straight-alpha color over another.
func OverColor(top, bottom color.NRGBA) color.NRGBA {
	if top.A == 255 {
		return top
	}
	if top.A == 0 {
		return bottom
	}

	sa := float64(top.A) / 255.0
	da := float64(bottom.A) / 255.0

	outA := sa + da*(1.0-sa)
	if outA == 0 {
		return color.NRGBA{}
	}

	blend := func(srcVal, dstVal uint8) uint8 {
		srcPremult := float64(srcVal) * sa
		dstPremult := float64(dstVal) * da
		outPremult := srcPremult + dstPremult*(1.0-sa)
		return uint8(math.Round(outPremult / outA))
	}

	return color.NRGBA{
		R: blend(top.R, bottom.R),
		G: blend(top.G, bottom.G),
		B: blend(top.B, bottom.B),
		A: uint8(math.Round(outA * 255.0)),
	}
}

func alphaOver(dst *image.NRGBA, src image.Image) {
	bounds := dst.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if s.A == 0 {
				continue
			}
			dst.SetNRGBA(x, y, OverColor(s, dst.NRGBAAt(x, y)))
		}
	}
}
