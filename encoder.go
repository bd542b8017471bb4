package autopalette

import (
	"image"
	"runtime"
	"sync"

	"golang.org/x/image/draw"
)

// PixelFilter is a predicate over a pixel's RGBA channels (each 0-255).
// The default filter keeps pixels with alpha >= 128.
type PixelFilter func(r, g, b, a uint8) bool

// DefaultPixelFilter keeps opaque-enough pixels, matching spec.md §4.2.
func DefaultPixelFilter(r, g, b, a uint8) bool { return a >= 128 }

// defaultResizeLongEdge is the longer-edge pixel count above which
// FeatureEncoder downscales before encoding when resize is enabled. This
// is a pure performance knob (spec.md §4.2): disabling it changes only
// precision and cost, never the kinds of colors found.
const defaultResizeLongEdge = 256

// encodeResult carries the points produced by FeatureEncoder plus enough
// bookkeeping to map swatch positions back to the original image.
type encodeResult struct {
	points        []Point5D
	total         int // total points before filtering (pixel count of the encoded, possibly resized, buffer)
	kept          int // points that survived the filter
	width, height int // ORIGINAL dimensions, for denormalizing positions
}

// encodeFeatures turns an ImageData into the 5-D point sequence consumed
// by every segmentation algorithm. When resize is true and the image's
// longer edge exceeds defaultResizeLongEdge, the buffer is downscaled
// first with golang.org/x/image/draw's Catmull-Rom resampler (the same
// package the teacher imports for image work); reported positions are
// always denormalized against the ORIGINAL width/height, never the
// resized intermediate, per spec.md §4.2.
func encodeFeatures(img *ImageData, filter PixelFilter, resize bool) encodeResult {
	if filter == nil {
		filter = DefaultPixelFilter
	}

	width, height := img.Width, img.Height
	pixels := img.Pixels

	if resize {
		longEdge := width
		if height > longEdge {
			longEdge = height
		}
		if longEdge > defaultResizeLongEdge {
			scale := float64(defaultResizeLongEdge) / float64(longEdge)
			rw := maxInt(1, int(float64(width)*scale))
			rh := maxInt(1, int(float64(height)*scale))
			pixels, width, height = resizeRGBA(pixels, width, height, rw, rh)
		}
	}

	points := encodeScanlines(pixels, width, height, filter)

	return encodeResult{
		points: points,
		total:  width * height,
		kept:   len(points),
		width:  img.Width,
		height: img.Height,
	}
}

// encodeScanlines assigns each row to a worker; rows are independent
// (spec.md §5, "FeatureEncoder per scanline"), so they run concurrently
// and are concatenated back in row order for a deterministic result.
func encodeScanlines(pixels []byte, width, height int, filter PixelFilter) []Point5D {
	rowPoints := make([][]Point5D, height)

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	rowsPerWorker := (height + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := minInt(start+rowsPerWorker, height)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for row := start; row < end; row++ {
				rowPoints[row] = encodeRow(pixels, width, height, row, filter)
			}
		}(start, end)
	}
	wg.Wait()

	var out []Point5D
	for _, rp := range rowPoints {
		out = append(out, rp...)
	}
	return out
}

func encodeRow(pixels []byte, width, height, row int, filter PixelFilter) []Point5D {
	var out []Point5D
	base := row * width * 4
	for col := 0; col < width; col++ {
		off := base + col*4
		r, g, b, a := pixels[off], pixels[off+1], pixels[off+2], pixels[off+3]
		if !filter(r, g, b, a) {
			continue
		}
		lab := srgbToLab(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0)
		out = append(out, Point5D{
			L: lab.L,
			A: lab.A,
			B: lab.B,
			X: float64(col+1) / float64(width),
			Y: float64(row+1) / float64(height),
		})
	}
	return out
}

// resizeRGBA downscales an interleaved RGBA buffer to (rw, rh) using
// golang.org/x/image/draw's Catmull-Rom resampler.
func resizeRGBA(pixels []byte, width, height, rw, rh int) (out []byte, ow, oh int) {
	src := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	dst := image.NewRGBA(image.Rect(0, 0, rw, rh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst.Pix, rw, rh
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
