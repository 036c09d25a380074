package preset

import (
	"github.com/MeKo-Tech/noisetex/internal/gradient"
	"github.com/MeKo-Tech/noisetex/internal/module"
	"github.com/MeKo-Tech/noisetex/internal/noise"
)

func jadeLayers() ([]Layer, error) {
	b := newGraphBuilder()

	primary := module.NewRidgedMulti()
	primary.Frequency = 2
	primary.Lacunarity = 2.20703125
	primary.OctaveCount = 6
	b.add("primary", primary)

	cylinders := module.NewCylinders()
	cylinders.Frequency = 2
	b.add("cylinders", cylinders)

	rotated := module.NewRotatePoint()
	rotated.SetAngles(90, 25, 5)
	b.add("rotated", rotated)
	b.connect("rotated", 0, "cylinders")

	perturbed := module.NewTurbulence()
	perturbed.SetSeed(1)
	b.check(perturbed.SetFrequency(4))
	b.check(perturbed.SetPower(1.0 / 4.0))
	b.check(perturbed.SetRoughness(4))
	b.add("perturbed", perturbed)
	b.connect("perturbed", 0, "rotated")

	secondary := module.NewScaleBias()
	secondary.Scale = 0.25
	b.add("secondary", secondary)
	b.connect("secondary", 0, "perturbed")

	b.add("combined", module.NewAdd())
	b.connect("combined", 0, "primary")
	b.connect("combined", 1, "secondary")

	final := module.NewTurbulence()
	final.SetSeed(2)
	b.check(final.SetFrequency(4))
	b.check(final.SetPower(1.0 / 16.0))
	b.check(final.SetRoughness(2))
	b.add("final", final)
	b.connect("final", 0, "combined")

	root, err := b.root("final")
	if err != nil {
		return nil, err
	}
	return []Layer{{
		Module: root,
		Gradient: gradient.MustNew(
			gradient.Point{Pos: -1, Color: rgb(24, 146, 102)},
			gradient.Point{Pos: 0, Color: rgb(78, 154, 115)},
			gradient.Point{Pos: 0.25, Color: rgb(128, 204, 165)},
			gradient.Point{Pos: 0.375, Color: rgb(78, 154, 115)},
			gradient.Point{Pos: 1, Color: rgb(29, 135, 102)},
		),
	}}, nil
}

func slimeLayers() ([]Layer, error) {
	b := newGraphBuilder()

	large := module.NewBillow()
	large.Frequency = 4
	large.Lacunarity = 2.12109375
	large.OctaveCount = 1
	large.Quality = noise.Best
	b.add("large", large)

	smallBase := module.NewBillow()
	smallBase.Seed = 1
	smallBase.Frequency = 24
	smallBase.Lacunarity = 2.14453125
	smallBase.OctaveCount = 1
	smallBase.Quality = noise.Best
	b.add("small-base", smallBase)

	small := module.NewScaleBias()
	small.Scale = 0.5
	small.Bias = -0.5
	b.add("small", small)
	b.connect("small", 0, "small-base")

	slimeMap := module.NewRidgedMulti()
	slimeMap.Frequency = 2
	slimeMap.Lacunarity = 2.20703125
	slimeMap.OctaveCount = 3
	b.add("map", slimeMap)

	chooser := module.NewSelect()
	b.check(chooser.SetBounds(-0.375, 0.375))
	b.check(chooser.SetEdgeFalloff(0.5))
	b.add("chooser", chooser)
	b.connect("chooser", 0, "large")
	b.connect("chooser", 1, "small")
	b.control("chooser", "map")

	final := module.NewTurbulence()
	final.SetSeed(2)
	b.check(final.SetFrequency(8))
	b.check(final.SetPower(1.0 / 32.0))
	b.check(final.SetRoughness(2))
	b.add("final", final)
	b.connect("final", 0, "chooser")

	root, err := b.root("final")
	if err != nil {
		return nil, err
	}
	return []Layer{{
		Module: root,
		Gradient: gradient.MustNew(
			gradient.Point{Pos: -1, Color: rgb(160, 64, 42)},
			gradient.Point{Pos: 0, Color: rgb(64, 192, 64)},
			gradient.Point{Pos: 1, Color: rgb(128, 255, 128)},
		),
		Light: litLight(),
	}}, nil
}

func woodLayers() ([]Layer, error) {
	b := newGraphBuilder()

	base := module.NewCylinders()
	base.Frequency = 16
	b.add("base", base)

	grainNoise := module.NewPerlin()
	grainNoise.Frequency = 48
	grainNoise.Lacunarity = 2.20703125
	grainNoise.OctaveCount = 3
	b.add("grain-noise", grainNoise)

	scaledGrain := module.NewScalePoint()
	scaledGrain.Y = 0.25
	b.add("scaled-grain", scaledGrain)
	b.connect("scaled-grain", 0, "grain-noise")

	grain := module.NewScaleBias()
	grain.Scale = 0.25
	grain.Bias = 0.125
	b.add("grain", grain)
	b.connect("grain", 0, "scaled-grain")

	b.add("combined", module.NewAdd())
	b.connect("combined", 0, "base")
	b.connect("combined", 1, "grain")

	perturbed := module.NewTurbulence()
	perturbed.SetSeed(1)
	b.check(perturbed.SetFrequency(4))
	b.check(perturbed.SetPower(1.0 / 256.0))
	b.check(perturbed.SetRoughness(4))
	b.add("perturbed", perturbed)
	b.connect("perturbed", 0, "combined")

	translated := module.NewTranslatePoint()
	translated.Z = 1.48
	b.add("translated", translated)
	b.connect("translated", 0, "perturbed")

	rotated := module.NewRotatePoint()
	rotated.SetAngles(84, 0, 0)
	b.add("rotated", rotated)
	b.connect("rotated", 0, "translated")

	final := module.NewTurbulence()
	final.SetSeed(2)
	b.check(final.SetFrequency(2))
	b.check(final.SetPower(1.0 / 64.0))
	b.check(final.SetRoughness(4))
	b.add("final", final)
	b.connect("final", 0, "rotated")

	root, err := b.root("final")
	if err != nil {
		return nil, err
	}
	return []Layer{{
		Module: root,
		Gradient: gradient.MustNew(
			gradient.Point{Pos: -1, Color: rgb(189, 94, 4)},
			gradient.Point{Pos: 0.5, Color: rgb(144, 48, 6)},
			gradient.Point{Pos: 1, Color: rgb(60, 10, 8)},
		),
	}}, nil
}

func skyLayers() ([]Layer, error) {
	water := newGraphBuilder()

	cells := module.NewVoronoi()
	cells.Frequency = 8
	cells.EnableDistance = true
	cells.Displacement = 0
	water.add("cells", cells)

	stretched := module.NewScalePoint()
	stretched.Z = 3
	water.add("stretched", stretched)
	water.connect("stretched", 0, "cells")

	finalWater := module.NewTurbulence()
	finalWater.SetSeed(1)
	water.check(finalWater.SetFrequency(8))
	water.check(finalWater.SetPower(1.0 / 32.0))
	water.check(finalWater.SetRoughness(1))
	water.add("final", finalWater)
	water.connect("final", 0, "stretched")

	waterRoot, err := water.root("final")
	if err != nil {
		return nil, err
	}

	clouds := newGraphBuilder()

	cloudBase := module.NewBillow()
	cloudBase.Seed = 2
	cloudBase.Frequency = 2
	cloudBase.Persistence = 0.375
	cloudBase.Lacunarity = 2.12109375
	cloudBase.OctaveCount = 4
	cloudBase.Quality = noise.Best
	clouds.add("base", cloudBase)

	finalClouds := module.NewTurbulence()
	finalClouds.SetSeed(3)
	clouds.check(finalClouds.SetFrequency(16))
	clouds.check(finalClouds.SetPower(1.0 / 64.0))
	clouds.check(finalClouds.SetRoughness(2))
	clouds.add("final", finalClouds)
	clouds.connect("final", 0, "base")

	cloudRoot, err := clouds.root("final")
	if err != nil {
		return nil, err
	}

	return []Layer{
		{
			Module: waterRoot,
			Gradient: gradient.MustNew(
				gradient.Point{Pos: -1, Color: rgb(48, 64, 192)},
				gradient.Point{Pos: 0.5, Color: rgb(96, 192, 255)},
				gradient.Point{Pos: 1, Color: rgb(255, 255, 255)},
			),
			Light: litLight(),
		},
		{
			Module: cloudRoot,
			Gradient: gradient.MustNew(
				gradient.Point{Pos: -1, Color: rgba(255, 255, 255, 0)},
				gradient.Point{Pos: -0.5, Color: rgba(255, 255, 255, 0)},
				gradient.Point{Pos: 1, Color: rgb(255, 255, 255)},
			),
		},
	}, nil
}

func marbleLayers() ([]Layer, error) {
	b := newGraphBuilder()

	body := module.NewSimplex(4)
	body.Frequency = 2
	body.OctaveCount = 5
	b.add("body", body)

	// Zero crossings of the body field become thin bright ridges.
	ridges := module.NewAbs()
	b.add("ridges", ridges)
	b.connect("ridges", 0, "body")

	veins := module.NewScaleBias()
	veins.Scale = -2
	veins.Bias = 1
	b.add("veins", veins)
	b.connect("veins", 0, "ridges")

	speckle, err := module.NewClassicPerlin(2, 2, 3, 5)
	if err != nil {
		return nil, err
	}
	speckle.Frequency = 16
	b.add("speckle-noise", speckle)

	fine := module.NewScaleBias()
	fine.Scale = 0.125
	b.add("speckle", fine)
	b.connect("speckle", 0, "speckle-noise")

	b.add("combined", module.NewAdd())
	b.connect("combined", 0, "veins")
	b.connect("combined", 1, "speckle")

	clamped := module.NewClamp()
	b.add("clamped", clamped)
	b.connect("clamped", 0, "combined")

	final := module.NewTurbulence()
	final.SetSeed(6)
	b.check(final.SetFrequency(4))
	b.check(final.SetPower(1.0 / 32.0))
	b.check(final.SetRoughness(3))
	b.add("final", final)
	b.connect("final", 0, "clamped")

	root, err := b.root("final")
	if err != nil {
		return nil, err
	}
	return []Layer{{
		Module: root,
		Gradient: gradient.MustNew(
			gradient.Point{Pos: -1, Color: rgb(238, 236, 230)},
			gradient.Point{Pos: 0.6, Color: rgb(205, 204, 200)},
			gradient.Point{Pos: 0.85, Color: rgb(120, 120, 128)},
			gradient.Point{Pos: 1, Color: rgb(58, 60, 72)},
		),
	}}, nil
}
