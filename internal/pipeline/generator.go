package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/gift"
	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"

	"github.com/MeKo-Tech/noisetex/internal/bitmap"
	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/module"
	"github.com/MeKo-Tech/noisetex/internal/noisemap"
	"github.com/MeKo-Tech/noisetex/internal/preset"
	"github.com/MeKo-Tech/noisetex/internal/renderer"
)

// Projection selects how a preset is sampled.
type Projection string

const (
	ProjectionPlane    Projection = "plane"
	ProjectionSeamless Projection = "seamless"
	ProjectionSphere   Projection = "sphere"
)

// Projections returns every projection in output order.
func Projections() []Projection {
	return []Projection{ProjectionPlane, ProjectionSeamless, ProjectionSphere}
}

// ParseProjection validates a projection name.
func ParseProjection(s string) (Projection, error) {
	p := Projection(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Projections() {
		if p == known {
			return p, nil
		}
	}
	return "", errs.Invalid(errs.StageConfigure, "unknown projection %q (want plane, seamless or sphere)", s)
}

// PlaneBounds is the sampling rectangle for planar projections.
var PlaneBounds = orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 1}}

// Job is one texture to render.
type Job struct {
	Preset     string
	Projection Projection
}

// Name is the output file stem, e.g. "jade_seamless".
func (j Job) Name() string {
	return j.Preset + "_" + string(j.Projection)
}

func (j Job) String() string { return j.Preset + "/" + string(j.Projection) }

// LightOverride replaces parameters of lit layers. Nil fields keep the
// preset's value.
type LightOverride struct {
	Azimuth   *float64
	Elevation *float64
	Contrast  *float64
}

func (o LightOverride) apply(l *renderer.Light) {
	if !l.Enabled {
		return
	}
	if o.Azimuth != nil {
		l.Azimuth = *o.Azimuth
	}
	if o.Elevation != nil {
		l.Elevation = *o.Elevation
	}
	if o.Contrast != nil {
		l.Contrast = *o.Contrast
	}
}

// Options configures a Generator.
type Options struct {
	// Size is the texture height in pixels. Planar textures are square and
	// spherical ones twice as wide as they are tall.
	Size int

	// BuildWorkers is the goroutine count used inside each map build.
	BuildWorkers int

	// ThumbnailSize is the width of an extra downscaled copy; 0 disables it.
	ThumbnailSize int

	Light LightOverride
}

// Generator builds, renders and writes preset textures.
type Generator struct {
	outputDir string
	opts      Options
	logger    *slog.Logger
}

// NewGenerator validates options and prepares a generator.
func NewGenerator(outputDir string, opts Options, logger *slog.Logger) (*Generator, error) {
	if opts.Size <= 0 {
		return nil, errs.Invalid(errs.StageConfigure, "texture size must be positive, got %d", opts.Size)
	}
	if opts.ThumbnailSize < 0 {
		return nil, errs.Invalid(errs.StageConfigure, "thumbnail size must not be negative, got %d", opts.ThumbnailSize)
	}
	if outputDir == "" {
		outputDir = "."
	}

	return &Generator{
		outputDir: outputDir,
		opts:      opts,
		logger:    logger,
	}, nil
}

// Generate renders job and writes <preset>_<projection>.bmp into the
// output directory. Existing files are kept unless force is set.
func (g *Generator) Generate(ctx context.Context, job Job, force bool) (string, error) {
	finalPath := filepath.Join(g.outputDir, job.Name()+".bmp")
	if !force {
		if _, err := os.Stat(finalPath); err == nil {
			g.log().Info("Texture already exists; skipping", "job", job.String(), "path", finalPath)
			return finalPath, nil
		}
	}

	p, err := preset.Lookup(job.Preset)
	if err != nil {
		return "", err
	}

	start := time.Now()
	passes := make([]renderer.Pass, 0, len(p.Layers))
	for i, layer := range p.Layers {
		g.log().Debug("Building noise map", "job", job.String(), "layer", i)
		m, err := g.build(ctx, job.Projection, layer.Module)
		if err != nil {
			return "", fmt.Errorf("failed to build layer %d of %s: %w", i, job, err)
		}

		light := layer.Light
		g.opts.Light.apply(&light)
		passes = append(passes, renderer.Pass{Map: m, Gradient: layer.Gradient, Light: light})
	}

	g.log().Debug("Rendering layers", "job", job.String(), "layers", len(passes))
	img, err := renderer.RenderPasses(passes...)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", job, err)
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", errs.IO(errs.StageWrite, "create output dir", err)
	}

	if err := g.write(img, finalPath); err != nil {
		return "", err
	}
	g.log().Info("Wrote texture",
		"job", job.String(),
		"path", finalPath,
		"size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if g.opts.ThumbnailSize > 0 {
		thumbPath := filepath.Join(g.outputDir, job.Name()+"_thumb.bmp")
		if err := g.write(Thumbnail(img, g.opts.ThumbnailSize), thumbPath); err != nil {
			return "", err
		}
	}

	return finalPath, nil
}

func (g *Generator) build(ctx context.Context, projection Projection, m module.Module) (*noisemap.NoiseMap, error) {
	size := g.opts.Size
	switch projection {
	case ProjectionPlane, ProjectionSeamless:
		return noisemap.PlaneBuilder{
			Bounds:   PlaneBounds,
			Width:    size,
			Height:   size,
			Seamless: projection == ProjectionSeamless,
			Workers:  g.opts.BuildWorkers,
		}.Build(ctx, m)
	case ProjectionSphere:
		return noisemap.SphereBuilder{
			Bounds:  noisemap.WholeSphere,
			Width:   size * 2,
			Height:  size,
			Workers: g.opts.BuildWorkers,
		}.Build(ctx, m)
	default:
		return nil, errs.Invalid(errs.StageBuild, "unknown projection %q", projection)
	}
}

func (g *Generator) write(img image.Image, path string) error {
	if err := bitmap.Write(img, path); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		g.log().Debug("Wrote bitmap", "path", path, "bytes", humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

// Thumbnail downscales img to the given width, keeping its aspect ratio.
func Thumbnail(img image.Image, width int) *image.NRGBA {
	filter := gift.New(gift.Resize(width, 0, gift.LanczosResampling))
	dst := image.NewNRGBA(filter.Bounds(img.Bounds()))
	filter.Draw(dst, img)
	return dst
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}
