package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/MeKo-Tech/noisetex/internal/errs"
	"github.com/MeKo-Tech/noisetex/internal/pipeline"
	"github.com/MeKo-Tech/noisetex/internal/preset"
	"github.com/MeKo-Tech/noisetex/internal/worker"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render preset textures",
	Long: `Render one or more presets under one or more projections.

Each texture is written as <preset>_<projection>.bmp into the output directory.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("preset", "p", "all", "Comma-separated presets to render, or \"all\"")
	renderCmd.Flags().String("projection", "all", "Comma-separated projections (plane, seamless, sphere), or \"all\"")
	renderCmd.Flags().IntP("size", "s", 256, "Texture height in pixels; sphere textures are twice as wide")
	renderCmd.Flags().IntP("workers", "w", 0, "Number of textures rendered in parallel (default: number of CPUs)")
	renderCmd.Flags().Int("build-workers", 1, "Goroutines sampling rows inside each noise map build (0: number of CPUs)")
	renderCmd.Flags().Int("thumbnail", 0, "Also write a downscaled copy this many pixels wide (0 disables)")
	renderCmd.Flags().Bool("force", false, "Overwrite textures that already exist")
	renderCmd.Flags().Bool("progress", true, "Show progress bar")
	renderCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some textures fail")
	renderCmd.Flags().Float64("light-azimuth", 135, "Light azimuth in degrees for lit layers")
	renderCmd.Flags().Float64("light-elevation", 60, "Light elevation in degrees for lit layers")
	renderCmd.Flags().Float64("light-contrast", 2, "Light contrast for lit layers")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"render.preset", "preset"},
		{"render.projection", "projection"},
		{"render.size", "size"},
		{"render.workers", "workers"},
		{"render.build_workers", "build-workers"},
		{"render.thumbnail", "thumbnail"},
		{"render.force", "force"},
		{"render.progress", "progress"},
		{"render.allow_failures", "allow-failures"},
		{"render.light_azimuth", "light-azimuth"},
		{"render.light_elevation", "light-elevation"},
		{"render.light_contrast", "light-contrast"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, renderCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	presets, err := parseList(viper.GetString("render.preset"), preset.Names())
	if err != nil {
		return fmt.Errorf("invalid --preset: %w", err)
	}
	projections, err := parseList(viper.GetString("render.projection"), projectionNames())
	if err != nil {
		return fmt.Errorf("invalid --projection: %w", err)
	}

	workers := viper.GetInt("render.workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	outputDir := viper.GetString("output-dir")
	force := viper.GetBool("render.force")
	allowFailures := viper.GetBool("render.allow_failures")

	opts := pipeline.Options{
		Size:          viper.GetInt("render.size"),
		BuildWorkers:  viper.GetInt("render.build_workers"),
		ThumbnailSize: viper.GetInt("render.thumbnail"),
		Light:         lightOverride(),
	}

	gen, err := pipeline.NewGenerator(outputDir, opts, logger)
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}

	tasks := make([]worker.Task, 0, len(presets)*len(projections))
	for _, name := range presets {
		for _, projName := range projections {
			proj, err := pipeline.ParseProjection(projName)
			if err != nil {
				return err
			}
			tasks = append(tasks, worker.Task{
				Job:   pipeline.Job{Preset: name, Projection: proj},
				Force: force,
			})
		}
	}

	logger.Info("Starting texture rendering",
		"presets", strings.Join(presets, ","),
		"projections", strings.Join(projections, ","),
		"textures", len(tasks),
		"size", opts.Size,
		"workers", workers,
		"output_dir", outputDir,
	)

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	progress := worker.NewProgress(len(tasks), viper.GetBool("render.progress"))
	pool := worker.New(worker.Config{
		Workers:    workers,
		Generator:  gen,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	written, failures := collectResults(results)
	logger.Info(progress.Summary(), "output_bytes", humanize.Bytes(written))

	if failures != nil {
		failed := len(multierr.Errors(failures))
		if allowFailures {
			logger.Warn("Some textures failed, but continuing due to --allow-failures flag", "failed_count", failed)
			return nil
		}
		return fmt.Errorf("%d textures failed: %w", failed, failures)
	}
	return nil
}

// lightOverride collects the light flags that were set explicitly on the
// command line, in the config file or in the environment.
func lightOverride() pipeline.LightOverride {
	var o pipeline.LightOverride
	if viper.IsSet("render.light_azimuth") {
		v := viper.GetFloat64("render.light_azimuth")
		o.Azimuth = &v
	}
	if viper.IsSet("render.light_elevation") {
		v := viper.GetFloat64("render.light_elevation")
		o.Elevation = &v
	}
	if viper.IsSet("render.light_contrast") {
		v := viper.GetFloat64("render.light_contrast")
		o.Contrast = &v
	}
	return o
}

// collectResults logs every result and returns the bytes written by the
// successful jobs together with the failures, in task order.
func collectResults(results []worker.Result) (uint64, error) {
	var (
		written  uint64
		failures error
	)
	for _, r := range results {
		switch {
		case r.Canceled():
			logger.Warn("Texture rendering cancelled", "job", r.Task.Job.String())
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", r.Task.Job, r.Err))
		case r.Err != nil:
			logger.Error("Texture rendering failed", "job", r.Task.Job.String(), "error", r.Err)
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", r.Task.Job, r.Err))
		default:
			written += fileSize(r.Path)
			logger.Debug("Texture rendered", "job", r.Task.Job.String(), "path", r.Path, "elapsed", r.Elapsed)
		}
	}
	return written, failures
}

// fileSize returns the size of path, or 0 if it cannot be read.
func fileSize(path string) uint64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return uint64(info.Size())
}

func projectionNames() []string {
	var names []string
	for _, p := range pipeline.Projections() {
		names = append(names, string(p))
	}
	return names
}

// parseList splits a comma-separated selection. "all" (or an empty string)
// selects every known value. Unknown values and duplicates are rejected.
func parseList(s string, known []string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return append([]string(nil), known...), nil
	}

	valid := make(map[string]bool, len(known))
	for _, k := range known {
		valid[k] = true
	}

	seen := make(map[string]bool)
	var out []string
	var err error
	for i, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		switch {
		case name == "":
			err = multierr.Append(err, errs.Invalid(errs.StageConfigure, "empty entry at position %d", i))
		case !valid[name]:
			err = multierr.Append(err, errs.Invalid(errs.StageConfigure, "unknown value %q (have %s)", name, strings.Join(known, ", ")))
		case seen[name]:
			err = multierr.Append(err, errs.Invalid(errs.StageConfigure, "%q listed twice", name))
		default:
			seen[name] = true
			out = append(out, name)
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
