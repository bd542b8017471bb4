package autopalette

import "fmt"

// Algorithm selects which segmentation algorithm Palette.Extract uses to
// reduce the 5-D point cloud to clusters (spec.md §6).
type Algorithm int

const (
	AlgorithmDBSCAN Algorithm = iota
	AlgorithmDBSCANPP
	AlgorithmKMeans
	AlgorithmSLIC
	AlgorithmSNIC
)

// ParseAlgorithm maps a case-sensitive algorithm name (as used by the
// CLI's -a/--algorithm flag) to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "dbscan":
		return AlgorithmDBSCAN, nil
	case "dbscan++", "dbscanpp":
		return AlgorithmDBSCANPP, nil
	case "kmeans":
		return AlgorithmKMeans, nil
	case "slic":
		return AlgorithmSLIC, nil
	case "snic":
		return AlgorithmSNIC, nil
	default:
		return AlgorithmDBSCAN, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidParameter, name)
	}
}

// defaultSeed is the fixed PRNG seed used when Options.Seed is zero and
// the caller has not explicitly asked for a different one; it makes
// DBSCAN++ subsampling reproducible by default, per spec.md §5. KMeans
// uses no PRNG and ignores the seed.
const defaultSeed = 0x5eed

// Options controls Palette.Extract, mirroring spec.md §6.
type Options struct {
	Algorithm   Algorithm
	Filter      PixelFilter
	MaxSwatches int // 0 means no cap
	Resize      bool
	Seed        int64

	// MergeThreshold overrides tau_merge (spec.md §4.7) when positive.
	MergeThreshold float64

	DBSCAN DBSCANPPParams
	KMeans KMeansParams
	SLIC   SLICParams
}

// DefaultOptions matches spec.md §6's stated defaults: DBSCAN, the
// default alpha>=128 filter, no swatch cap, resize enabled, fixed seed.
func DefaultOptions() Options {
	return Options{
		Algorithm: AlgorithmDBSCAN,
		Filter:    DefaultPixelFilter,
		Resize:    true,
		Seed:      defaultSeed,
		DBSCAN:    DefaultDBSCANPPParams(),
		KMeans:    DefaultKMeansParams(),
		SLIC:      DefaultSLICParams(),
	}
}

// ImageData is the raw pixel buffer the pipeline operates on: row-major
// interleaved RGBA bytes.
type ImageData struct {
	Width, Height int
	Pixels        []byte
}

// NewImageData validates and wraps a raw RGBA buffer. It fails with
// ErrInvalidDimensions if width*height*4 != len(pixels) or either
// dimension is zero (spec.md §6).
func NewImageData(width, height int, pixels []byte) (*ImageData, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d", ErrInvalidDimensions, width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidDimensions, width*height*4, len(pixels))
	}
	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

// Palette is the ordered, immutable result of one extraction: swatches
// sorted by descending population, with no two swatches whose centroids
// are within the post-merge delta-E threshold of each other (spec.md
// §3). Selection methods (FindSwatches, FindSwatchesWithTheme) return
// new, shorter lists without mutating the palette.
type Palette struct {
	swatches []Swatch
	width    int
	height   int
}

// Swatches returns every swatch in the palette, sorted by descending
// population. The returned slice must not be mutated by the caller.
func (p *Palette) Swatches() []Swatch { return p.swatches }

// Len returns the number of swatches in the palette.
func (p *Palette) Len() int { return len(p.swatches) }

// Extract runs the full pipeline of spec.md §2's data flow: FeatureEncoder
// turns img into 5-D points, the selected Algorithm reduces them to a
// ClusterModel, and SwatchAssembler turns that into the final,
// merge-deduplicated palette.
//
// An empty point set after filtering (EmptyInput, spec.md §7) is not an
// error: Extract returns an empty, valid Palette.
func Extract(img *ImageData, opts Options) (*Palette, error) {
	if opts.Filter == nil {
		opts.Filter = DefaultPixelFilter
	}
	if opts.Seed == 0 {
		opts.Seed = defaultSeed
	}

	enc := encodeFeatures(img, opts.Filter, opts.Resize)
	if len(enc.points) == 0 {
		return &Palette{width: img.Width, height: img.Height}, nil
	}

	model, err := runAlgorithm(enc.points, enc.width, enc.height, opts)
	if err != nil {
		return nil, err
	}

	mergeThreshold := opts.MergeThreshold
	if mergeThreshold <= 0 {
		mergeThreshold = defaultMergeThreshold
	}
	swatches := assembleSwatches(model, enc.width, enc.height, mergeThreshold, enc.kept)

	if opts.MaxSwatches > 0 && len(swatches) > opts.MaxSwatches {
		swatches = swatches[:opts.MaxSwatches]
	}

	return &Palette{swatches: swatches, width: img.Width, height: img.Height}, nil
}

func runAlgorithm(points []Point5D, width, height int, opts Options) (*ClusterModel, error) {
	switch opts.Algorithm {
	case AlgorithmDBSCAN:
		params := opts.DBSCAN.DBSCANParams
		if params.Epsilon <= 0 {
			params = DefaultDBSCANParams()
		}
		return runDBSCAN(points, params), nil
	case AlgorithmDBSCANPP:
		params := opts.DBSCAN
		if params.Epsilon <= 0 {
			params = DefaultDBSCANPPParams()
		}
		return runDBSCANPP(points, params, opts.Seed), nil
	case AlgorithmKMeans:
		params := opts.KMeans
		if params.K <= 0 {
			params = DefaultKMeansParams()
		}
		return runKMeans(points, params), nil
	case AlgorithmSLIC:
		params := opts.SLIC
		if params.K <= 0 {
			params = DefaultSLICParams()
		}
		return runSLIC(points, params), nil
	case AlgorithmSNIC:
		params := SNICParams{K: opts.SLIC.K, Compactness: opts.SLIC.Compactness}
		if params.K <= 0 {
			d := DefaultSNICParams()
			params = d
		}
		return runSNIC(points, width, height, params), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidParameter, opts.Algorithm)
	}
}

// FindSwatches implements spec.md §4.9's un-themed selector: population-
// weighted diversity sampling over every swatch in the palette. It
// always returns min(n, palette size) swatches with no duplicates; the
// first result is always the highest-population swatch.
func (p *Palette) FindSwatches(n int) []Swatch {
	if n < 0 || len(p.swatches) == 0 {
		return nil
	}
	scores := make([]float64, len(p.swatches))
	for i, s := range p.swatches {
		scores[i] = scoreSwatch(s, ThemeNone)
	}
	return selectDiverse(p.swatches, scores, n)
}

// FindSwatchesWithTheme implements spec.md §4.9's themed selector: scores
// every swatch with theme's Gaussian scoring function, then runs the
// same weighted farthest-point sampling. If every swatch scores below
// the floor, it returns an empty slice (spec.md §9).
func (p *Palette) FindSwatchesWithTheme(n int, theme Theme) []Swatch {
	if n < 0 || len(p.swatches) == 0 {
		return nil
	}
	scores := make([]float64, len(p.swatches))
	for i, s := range p.swatches {
		scores[i] = scoreSwatch(s, theme)
	}
	return selectDiverse(p.swatches, scores, n)
}
