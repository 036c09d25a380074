package pipeline

import (
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/noisetex/internal/bitmap"
	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/renderer"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateProjections(t *testing.T) {
	dir := t.TempDir()
	gen, err := NewGenerator(dir, Options{Size: 12, BuildWorkers: 2}, quietLogger())
	require.NoError(t, err)

	tests := []struct {
		projection Projection
		width      int
	}{
		{ProjectionPlane, 12},
		{ProjectionSeamless, 12},
		{ProjectionSphere, 24},
	}

	for _, tc := range tests {
		t.Run(string(tc.projection), func(t *testing.T) {
			path, err := gen.Generate(context.Background(), Job{Preset: "wood", Projection: tc.projection}, true)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "wood_"+string(tc.projection)+".bmp"), path)

			img, err := bitmap.Read(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, tc.width, 12), img.Bounds())
		})
	}
}

func TestGenerateSeamlessEdges(t *testing.T) {
	gen, err := NewGenerator(t.TempDir(), Options{Size: 10}, quietLogger())
	require.NoError(t, err)

	path, err := gen.Generate(context.Background(), Job{Preset: "slime", Projection: ProjectionSeamless}, true)
	require.NoError(t, err)

	img, err := bitmap.Read(path)
	require.NoError(t, err)
	for y := 0; y < 10; y++ {
		assert.Equal(t, img.At(0, y), img.At(9, y), "row %d", y)
	}
}

func TestGenerateSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	gen, err := NewGenerator(dir, Options{Size: 4}, quietLogger())
	require.NoError(t, err)

	existing := filepath.Join(dir, "jade_plane.bmp")
	require.NoError(t, os.WriteFile(existing, []byte("stale"), 0o644))

	path, err := gen.Generate(context.Background(), Job{Preset: "jade", Projection: ProjectionPlane}, false)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))

	_, err = gen.Generate(context.Background(), Job{Preset: "jade", Projection: ProjectionPlane}, true)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BM", string(data[:2]))
}

func TestGenerateThumbnail(t *testing.T) {
	dir := t.TempDir()
	gen, err := NewGenerator(dir, Options{Size: 16, ThumbnailSize: 8}, quietLogger())
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Job{Preset: "marble", Projection: ProjectionSphere}, true)
	require.NoError(t, err)

	thumb, err := bitmap.Read(filepath.Join(dir, "marble_sphere_thumb.bmp"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), thumb.Bounds())
}

func TestGenerateErrors(t *testing.T) {
	_, err := NewGenerator(t.TempDir(), Options{Size: 0}, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	gen, err := NewGenerator(t.TempDir(), Options{Size: 4}, nil)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), Job{Preset: "granite", Projection: ProjectionPlane}, true)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = gen.Generate(context.Background(), Job{Preset: "jade", Projection: "cube"}, true)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Generate(ctx, Job{Preset: "jade", Projection: ProjectionPlane}, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseProjection(t *testing.T) {
	p, err := ParseProjection(" Sphere ")
	require.NoError(t, err)
	assert.Equal(t, ProjectionSphere, p)

	_, err = ParseProjection("mercator")
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestLightOverrideOnlyTouchesLitLayers(t *testing.T) {
	az := 10.0
	o := LightOverride{Azimuth: &az}

	lit := renderer.DefaultLight()
	lit.Enabled = true
	o.apply(&lit)
	assert.Equal(t, 10.0, lit.Azimuth)
	assert.Equal(t, 45.0, lit.Elevation)

	flat := renderer.DefaultLight()
	o.apply(&flat)
	assert.Equal(t, 45.0, flat.Azimuth)
}

func TestThumbnailKeepsAspect(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	assert.Equal(t, image.Rect(0, 0, 10, 5), Thumbnail(src, 10).Bounds())
}
