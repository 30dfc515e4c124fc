package cli

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/region-hierarchy/internal/config"
	"github.com/ironsheep/region-hierarchy/internal/export"
	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
	"github.com/ironsheep/region-hierarchy/internal/imaging"
	"github.com/ironsheep/region-hierarchy/internal/ocr"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png" // forest drawn over the source image
)

var buildFormats = []string{formatJSON, formatYAML, formatDOT, formatSVG, formatPNG}

// buildOpts holds the flags of the build command. Threshold flags only
// override the config when set on the command line.
type buildOpts struct {
	output       string
	format       string
	preset       string
	minArea      int
	minXOffset   int
	minYOffset   int
	workers      int
	connectivity string
	threshold    int

	text     bool     // use OCR layout boxes instead of pixel components
	language string   // OCR language
	levels   []string // OCR levels
}

func newBuildCmd() *cobra.Command {
	opts := buildOpts{format: formatJSON, language: "eng"}

	cmd := &cobra.Command{
		Use:   "build <image>",
		Short: "Build the containment forest of an image",
		Example: `  region-hierarchy build scan.png
  region-hierarchy build scan.png --preset document -f dot -o scan.dot
  region-hierarchy build page.png --text --levels line,word -f yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			opts.apply(cmd, cfg)
			return runBuild(cmd.Context(), cmd.OutOrStdout(), args[0], cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	f.StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(buildFormats, ", "))
	f.StringVarP(&opts.preset, "preset", "p", "", "threshold preset (see 'presets')")
	f.IntVar(&opts.minArea, "min-area", 0, "drop regions with a smaller bounding box area")
	f.IntVar(&opts.minXOffset, "min-x-offset", 0, "drop regions starting left of this column")
	f.IntVar(&opts.minYOffset, "min-y-offset", 0, "drop regions starting above this row")
	f.IntVar(&opts.workers, "workers", 0, "goroutines for containment tests (0 or 1: sequential)")
	f.StringVar(&opts.connectivity, "connectivity", "", "pixel neighbourhood: 4 or 8")
	f.IntVar(&opts.threshold, "threshold", 0, "gray level (0-255) at or above which a pixel is foreground")
	f.BoolVar(&opts.text, "text", false, "nest OCR layout boxes instead of pixel components")
	f.StringVar(&opts.language, "lang", opts.language, "OCR language (with --text)")
	f.StringSliceVar(&opts.levels, "levels", nil, "OCR levels (with --text): block, paragraph, line, word")

	return cmd
}

// apply copies flags set on the command line into cfg. A preset flag
// discards the thresholds the config set on top of its own preset; with
// --text and no preset, the "text" preset is used.
func (o *buildOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("preset"):
		cfg.Preset = o.preset
		cfg.MinArea, cfg.MinXOffset, cfg.MinYOffset = nil, nil, nil
	case o.text:
		cfg.Preset = "text"
		cfg.MinArea, cfg.MinXOffset, cfg.MinYOffset = nil, nil, nil
	}
	if flags.Changed("min-area") {
		cfg.MinArea = &o.minArea
	}
	if flags.Changed("min-x-offset") {
		cfg.MinXOffset = &o.minXOffset
	}
	if flags.Changed("min-y-offset") {
		cfg.MinYOffset = &o.minYOffset
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("connectivity") {
		cfg.Connectivity = o.connectivity
	}
	if flags.Changed("threshold") {
		cfg.Threshold = &o.threshold
	}
}

func runBuild(ctx context.Context, stdout io.Writer, path string, cfg *config.Config, o buildOpts) error {
	if !isBuildFormat(o.format) {
		return fmt.Errorf("unknown format %q (expected one of %s)", o.format, strings.Join(buildFormats, ", "))
	}
	logger := loggerFromContext(ctx)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	cache := imaging.NewImageCache()
	prog := newProgress(logger)

	var f *hierarchy.Forest
	if o.text {
		f, err = buildText(cache, path, opts, o)
	} else {
		f, err = buildComponents(cache, path, cfg, opts, logger)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built forest of %d regions, depth %d", f.Len(), f.Depth()))

	data, err := encodeForest(ctx, cache, path, f, o.format)
	if err != nil {
		return err
	}

	if o.output == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}
	logger.Infof("Wrote %s", o.output)
	return nil
}

func buildComponents(cache *imaging.ImageCache, path string, cfg *config.Config, opts hierarchy.Options, logger *log.Logger) (*hierarchy.Forest, error) {
	labeler, err := cfg.Labeler()
	if err != nil {
		return nil, err
	}
	mask, err := cache.LoadMask(path, cfg.ThresholdLevel())
	if err != nil {
		return nil, err
	}
	return hierarchy.NewBuilder(labeler, opts, logger).Hierarchy(mask)
}

func buildText(cache *imaging.ImageCache, path string, opts hierarchy.Options, o buildOpts) (*hierarchy.Forest, error) {
	src := &ocr.TextSource{Language: o.language}
	for _, name := range o.levels {
		level, err := ocr.ParseLevel(name)
		if err != nil {
			return nil, err
		}
		src.Levels = append(src.Levels, level)
	}

	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	regions, err := src.FindRegions(img)
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(regions, opts)
}

func encodeForest(ctx context.Context, cache *imaging.ImageCache, path string, f *hierarchy.Forest, format string) ([]byte, error) {
	switch format {
	case formatYAML:
		return export.ToYAML(f)
	case formatDOT:
		return []byte(export.ToDOT(f)), nil
	case formatSVG:
		return export.RenderSVG(ctx, export.ToDOT(f))
	case formatPNG:
		img, err := cache.Load(path)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		overlay := imaging.Overlay(img, f, imaging.RenderOptions{Thickness: 2, Labels: true})
		if err := png.Encode(&buf, overlay); err != nil {
			return nil, fmt.Errorf("encode overlay: %w", err)
		}
		return buf.Bytes(), nil
	default:
		b, err := export.ToJSON(f)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	}
}

func isBuildFormat(s string) bool {
	for _, f := range buildFormats {
		if f == s {
			return true
		}
	}
	return false
}
