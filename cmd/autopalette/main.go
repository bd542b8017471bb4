// Command autopalette extracts a ranked color palette from a raster
// image. It is a thin external collaborator over the autopalette
// library (spec.md §6): it owns image decoding, flag parsing, output
// formatting and clipboard access, none of which belong to the core
// extraction pipeline.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/colorcluster/autopalette"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliOptions struct {
	algorithm    string
	theme        string
	count        int
	colorSpace   string
	outputFormat string
	noResize     bool
	clipboard    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "autopalette [OPTIONS] <PATH|--clipboard>",
		Short: "Extract a ranked color palette from an image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.algorithm, "algorithm", "a", "dbscan",
		"Segmentation algorithm: dbscan, dbscan++, kmeans, slic, snic")
	flags.StringVarP(&opts.theme, "theme", "t", "",
		"Aesthetic theme: colorful, vivid, muted, light, dark (default: un-themed)")
	flags.IntVarP(&opts.count, "count", "n", 5, "Number of swatches to return")
	flags.StringVarP(&opts.colorSpace, "color-space", "c", "hex",
		"Output color space: hex, rgb, ansi16, ansi256")
	flags.StringVarP(&opts.outputFormat, "output-format", "o", "text",
		"Output format: json, text, table")
	flags.BoolVar(&opts.noResize, "no-resize", false, "Disable downscaling large images before extraction")
	flags.BoolVar(&opts.clipboard, "clipboard", false, "Read the image from the system clipboard")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *cliOptions) error {
	algorithm, err := autopalette.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}
	theme, err := autopalette.ParseTheme(opts.theme)
	if err != nil {
		return err
	}
	if opts.count < 0 {
		return fmt.Errorf("count must be >= 0")
	}

	var pixels []byte
	var width, height int

	switch {
	case opts.clipboard:
		data, w, h, err := readClipboardImage()
		if err != nil {
			return fmt.Errorf("reading clipboard: %w", err)
		}
		pixels, width, height = data, w, h
	case len(args) == 1:
		data, w, h, err := readImageFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		pixels, width, height = data, w, h
	default:
		return fmt.Errorf("provide an image path or --clipboard")
	}

	img, err := autopalette.NewImageData(width, height, pixels)
	if err != nil {
		return err
	}

	palOpts := autopalette.DefaultOptions()
	palOpts.Algorithm = algorithm
	palOpts.Resize = !opts.noResize

	palette, err := autopalette.Extract(img, palOpts)
	if err != nil {
		return err
	}

	var swatches []autopalette.Swatch
	if theme == autopalette.ThemeNone {
		swatches = palette.FindSwatches(opts.count)
	} else {
		swatches = palette.FindSwatchesWithTheme(opts.count, theme)
	}

	return printSwatches(cmd, swatches, opts.colorSpace, opts.outputFormat)
}

func readImageFile(path string) (pixels []byte, width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", autopalette.ErrUnsupportedFormat, err)
	}
	return rgbaBytesFromImage(img)
}

func rgbaBytesFromImage(img image.Image) (pixels []byte, width, height int, err error) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]byte, width*height*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			pixels[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return pixels, width, height, nil
}

type swatchView struct {
	Hex        string  `json:"hex"`
	Col        int     `json:"col"`
	Row        int     `json:"row"`
	Population int     `json:"population"`
	Ratio      float64 `json:"ratio"`
}

func printSwatches(cmd *cobra.Command, swatches []autopalette.Swatch, colorSpace, format string) error {
	views := make([]swatchView, len(swatches))
	for i, s := range swatches {
		col, row := s.Position()
		views[i] = swatchView{
			Hex:        formatColor(s, colorSpace),
			Col:        col,
			Row:        row,
			Population: s.Population(),
			Ratio:      s.Ratio(),
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "table":
		w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "COLOR\tPOSITION\tPOPULATION\tRATIO")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t(%d,%d)\t%d\t%.4f\n", v.Hex, v.Col, v.Row, v.Population, v.Ratio)
		}
		return w.Flush()
	default: // text
		for _, v := range views {
			fmt.Fprintf(out, "%s  pos=(%d,%d)  population=%d  ratio=%.4f\n",
				v.Hex, v.Col, v.Row, v.Population, v.Ratio)
		}
		return nil
	}
}

// formatColor renders a swatch in the requested color space. Only hex,
// rgb and the built-in ANSI tables of ansi.go are implemented here — the rest of
// spec.md §6's output encodings belong to a color-space conversion
// collaborator this CLI does not implement (see SPEC_FULL.md §4.10).
func formatColor(s autopalette.Swatch, colorSpace string) string {
	rgba := s.RGBA()
	switch colorSpace {
	case "rgb":
		return fmt.Sprintf("rgb(%d,%d,%d)", rgba.R, rgba.G, rgba.B)
	case "ansi16":
		return nearestANSI(rgba, ansi16Palette)
	case "ansi256":
		return nearestANSI(rgba, ansi256Palette)
	default:
		return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
	}
}
