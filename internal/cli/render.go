package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/observability"
	"github.com/matzehuels/heatmap/pkg/pipeline"
)

// defaultOutputBase names output files when --output is not given.
const defaultOutputBase = "heatmap"

// chartFlags are the layout flags shared by render and view. Zero values
// mean "use the configuration".
type chartFlags struct {
	width        float64
	height       float64
	palette      string
	paletteSize  int
	paletteOrder string
	xTicks       int
	title        string
	noCache      bool
	refresh      bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "frame width in pixels (default 1600)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "frame height in pixels (default 600)")
	cmd.Flags().StringVar(&f.palette, "palette", "", "ColorBrewer scheme name or comma-separated hex colours (default RdYlBu)")
	cmd.Flags().IntVar(&f.paletteSize, "palette-size", 0, "number of colours taken from a ColorBrewer scheme (default 11)")
	cmd.Flags().StringVar(&f.paletteOrder, "palette-order", "", "listing order of the palette: warm-first (default), cool-first")
	cmd.Flags().IntVar(&f.xTicks, "x-ticks", 0, "maximum number of year ticks (default 20)")
	cmd.Flags().StringVar(&f.title, "title", "", "chart title")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the dataset and artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "refetch the dataset even if cached")
}

// renderOpts holds the flags of the render command.
type renderOpts struct {
	chartFlags
	output      string
	formats     string
	scale       float64
	metricsFile string
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render the heat map to SVG, HTML, JSON, PNG or PDF",
		Long: `Render loads the dataset from a URL or local JSON file (default: the
freeCodeCamp global temperature dataset) and writes one file per format.

With a single format, --output names the file exactly ("-" writes to stdout).
With several formats, --output is a base path and each format adds its own
extension.`,
		Example: `  heatmap render
  heatmap render data.json -f svg,html -o out/temps
  heatmap render --palette Spectral --palette-size 9 -f png --scale 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.pipelineOptions(cmd, args, &opts.chartFlags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				if popts.Formats, err = pipeline.ParseFormats(opts.formats); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("scale") {
				if opts.scale <= 0 {
					return errors.New(errors.ErrCodeInvalidInput, "--scale must be positive")
				}
				popts.Scale = opts.scale
			}
			if !cmd.Flags().Changed("metrics-file") {
				opts.metricsFile = c.config().MetricsFile
			}
			return c.runRender(cmd.Context(), popts, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), html, json, png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics for this run to a textfile")
	registerFlagCompletions(cmd)

	return cmd
}

// pipelineOptions merges configuration, positional source and changed flags.
func (c *CLI) pipelineOptions(cmd *cobra.Command, args []string, f *chartFlags) (pipeline.Options, error) {
	cfg := c.config()
	opts := pipeline.Options{
		Source:       cfg.Source,
		Width:        cfg.Chart.Width,
		Height:       cfg.Chart.Height,
		Palette:      cfg.Chart.Palette,
		PaletteSize:  cfg.Chart.PaletteSize,
		PaletteOrder: cfg.Chart.PaletteOrder,
		XTicks:       cfg.Chart.XTicks,
		Formats:      slices.Clone(cfg.Chart.Formats),
		Scale:        cfg.Chart.PNGScale,
		Refresh:      f.refresh,
		Logger:       loggerFromContext(cmd.Context()),
	}
	if len(args) == 1 {
		opts.Source = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("palette") {
		opts.Palette = f.palette
	}
	if flags.Changed("palette-size") {
		opts.PaletteSize = f.paletteSize
	}
	if flags.Changed("palette-order") {
		opts.PaletteOrder = f.paletteOrder
	}
	if flags.Changed("x-ticks") {
		opts.XTicks = f.xTicks
	}
	if flags.Changed("title") {
		opts.Title = f.title
	}
	return opts, opts.ValidateAndSetDefaults()
}

// runRender executes the pipeline and writes the artifacts. Nothing is
// written unless every stage succeeds.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	paths, err := outputPaths(opts.output, popts.Formats)
	if err != nil {
		return err
	}

	if opts.metricsFile != "" {
		metrics := observability.NewPrometheus()
		observability.SetPipelineHooks(metrics)
		observability.SetCacheHooks(metrics)
		observability.SetHTTPHooks(metrics)
		defer func() {
			observability.Reset()
			if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
				logger.Warn("write metrics", "path", opts.metricsFile, "error", err)
			} else {
				logger.Debug("wrote metrics", "path", opts.metricsFile)
			}
		}()
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+popts.Source)
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if err := writeOutputs(popts.Formats, paths, result.Artifacts); err != nil {
		return err
	}
	prog.done("Rendered heat map", "formats", popts.Formats)

	if paths[popts.Formats[0]] == "-" {
		return nil
	}
	printSuccess("Rendered %d - %d", result.Chart.MinYear, result.Chart.MaxYear)
	printStats(result.Stats.Records, result.Stats.Cells, result.CacheInfo.DatasetHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	if p, ok := paths[pipeline.FormatHTML]; ok {
		printNextStep("Open in a browser", "open "+p)
	}
	return nil
}

// outputPaths maps each format to its destination.
func outputPaths(output string, formats []string) (map[string]string, error) {
	if err := errors.ValidateOutputPath(output); err != nil {
		return nil, err
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths, nil
	}
	if output == "-" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(formats))
	}

	base := defaultOutputBase
	if output != "" {
		base = output
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			base = strings.TrimSuffix(output, ext)
		}
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

// writeOutputs stages every artifact in a temp file next to its destination
// and renames them into place only once all of them are written.
func writeOutputs(formats []string, paths map[string]string, artifacts map[string][]byte) error {
	if len(formats) == 1 && paths[formats[0]] == "-" {
		_, err := os.Stdout.Write(artifacts[formats[0]])
		return err
	}

	staged := make([]stagedFile, 0, len(formats))
	discard := func() {
		for _, f := range staged {
			_ = os.Remove(f.tmp)
		}
	}
	for _, format := range formats {
		f, err := stageOutput(paths[format], artifacts[format])
		if err != nil {
			discard()
			return err
		}
		staged = append(staged, f)
	}
	for i, f := range staged {
		if err := os.Rename(f.tmp, f.path); err != nil {
			for _, rest := range staged[i:] {
				_ = os.Remove(rest.tmp)
			}
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", f.path)
		}
	}
	return nil
}

type stagedFile struct {
	tmp  string
	path string
}

func stageOutput(path string, data []byte) (stagedFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stagedFile{}, errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stagedFile{}, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(f.Name(), 0o644)
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return stagedFile{}, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return stagedFile{tmp: f.Name(), path: path}, nil
}
