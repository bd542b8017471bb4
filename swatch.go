package autopalette

import "image/color"

// Swatch is one extracted color together with its representative pixel
// position, population, and ratio. Swatches are owned by exactly one
// Palette and are immutable after construction (spec.md §3).
type Swatch struct {
	color      LAB
	col, row   int
	population int
	ratio      float64
}

// Lab returns the swatch's color in CIE L*a*b*.
func (s Swatch) Lab() LAB { return s.color }

// LCh returns the swatch's color in polar LCh form, used by ThemeScorer.
func (s Swatch) LCh() LCh { return labToLCh(s.color) }

// RGBA converts the swatch's perceptual color back to sRGB for display.
// This is the one output conversion the core keeps (spec.md §4.10); the
// rest of the encodings spec.md §6 lists (HSL/HSV/Oklab/CMYK/ANSI/hex)
// belong to a downstream formatting collaborator.
func (s Swatch) RGBA() color.RGBA {
	r, g, b := labToSRGB(s.color)
	return color.RGBA{
		R: uint8(clamp(r*255, 0, 255)),
		G: uint8(clamp(g*255, 0, 255)),
		B: uint8(clamp(b*255, 0, 255)),
		A: 255,
	}
}

// Position returns the swatch's representative pixel coordinates within
// the original image, 0 <= col < width, 0 <= row < height.
func (s Swatch) Position() (col, row int) { return s.col, s.row }

// Population is the number of contributing pixels the swatch represents.
func (s Swatch) Population() int { return s.population }

// Ratio is population / total_contributing_pixels, in (0,1].
func (s Swatch) Ratio() float64 { return s.ratio }
