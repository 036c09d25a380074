// Package preset defines the named textures noisetex can render.
package preset

import (
	"fmt"
	"image/color"
	"sort"

	"go.uber.org/multierr"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/gradient"
	"github.com/MeKo-Tech/noisetex/internal/module"
	"github.com/MeKo-Tech/noisetex/internal/renderer"
)

// Layer is one render pass of a preset.
type Layer struct {
	Module   module.Module
	Gradient *gradient.Gradient
	Light    renderer.Light
}

// Preset is a ready-to-render texture. Layers are drawn bottom-up.
type Preset struct {
	Name        string
	Description string
	Layers      []Layer
}

type definition struct {
	description string
	build       func() ([]Layer, error)
}

var definitions = map[string]definition{
	"jade":   {"green jade with veins of lighter stone", jadeLayers},
	"slime":  {"lit green slime with small and large bubbles", slimeLayers},
	"wood":   {"rotated cylinders forming wood rings with grain", woodLayers},
	"sky":    {"lit rippling water under a layer of clouds", skyLayers},
	"marble": {"pale marble with dark simplex veins", marbleLayers},
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of a preset.
func Describe(name string) (string, bool) {
	d, ok := definitions[name]
	return d.description, ok
}

// Lookup builds a fresh module graph for the named preset. Each call
// returns independent modules, so callers may tweak them freely.
func Lookup(name string) (*Preset, error) {
	d, ok := definitions[name]
	if !ok {
		return nil, errs.Invalid(errs.StageConfigure, "unknown preset %q (have %v)", name, Names())
	}

	layers, err := d.build()
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	return &Preset{Name: name, Description: d.description, Layers: layers}, nil
}

// Lit reports whether any layer of p uses lighting.
func (p *Preset) Lit() bool {
	for _, l := range p.Layers {
		if l.Light.Enabled {
			return true
		}
	}
	return false
}

// graphBuilder wires a module.Graph and collects every wiring error.
type graphBuilder struct {
	g   *module.Graph
	err error
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{g: module.NewGraph()}
}

func (b *graphBuilder) check(err error) {
	b.err = multierr.Append(b.err, err)
}

func (b *graphBuilder) add(name string, m module.Module) {
	b.check(b.g.Add(name, m))
}

func (b *graphBuilder) connect(consumer string, slot int, source string) {
	b.check(b.g.Connect(consumer, slot, source))
}

func (b *graphBuilder) control(selector, control string) {
	b.check(b.g.SetControl(selector, control))
}

// root validates and returns the named module.
func (b *graphBuilder) root(name string) (module.Module, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.g.Validate(name); err != nil {
		return nil, err
	}
	m, _ := b.g.Get(name)
	return m, nil
}

// litLight is the light used by the lit presets.
func litLight() renderer.Light {
	l := renderer.DefaultLight()
	l.Enabled = true
	l.Azimuth = 135
	l.Elevation = 60
	l.Contrast = 2
	return l
}

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

func rgba(r, g, b, a uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: a} }
