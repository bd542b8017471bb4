package autopalette

import "errors"

// Error kinds returned by value from the extraction pipeline. None of them
// are raised for malformed-but-well-formed input (an algorithm producing
// fewer than N clusters just returns a shorter list); they mark genuine
// precondition violations at the API boundary.
var (
	// ErrInvalidDimensions is returned by NewImageData when width*height*4
	// does not match len(pixels), or either dimension is zero.
	ErrInvalidDimensions = errors.New("autopalette: invalid image dimensions")

	// ErrUnsupportedFormat is reserved for the external image-decode
	// collaborator; the core never raises it itself.
	ErrUnsupportedFormat = errors.New("autopalette: unsupported image format")

	// ErrInvalidParameter is returned for unknown algorithm or theme names.
	// Other out-of-range options do not produce it: Extract replaces a
	// non-positive epsilon with the default DBSCAN parameters, and
	// FindSwatches/FindSwatchesWithTheme return an empty result for a
	// negative count.
	ErrInvalidParameter = errors.New("autopalette: invalid parameter")

	// ErrInterrupted is reserved for host cancellation; the core itself
	// never raises it.
	ErrInterrupted = errors.New("autopalette: interrupted")
)
