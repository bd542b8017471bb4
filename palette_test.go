package autopalette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// solidImage builds a width x height opaque RGBA buffer filled with one
// color, matching spec.md §8 scenario 1.
func solidImage(t *testing.T, width, height int, r, g, b byte) *ImageData {
	t.Helper()
	pixels := make([]byte, width*height*4)
	for i := 0; i < width*height; i++ {
		off := i * 4
		pixels[off] = r
		pixels[off+1] = g
		pixels[off+2] = b
		pixels[off+3] = 255
	}
	img, err := NewImageData(width, height, pixels)
	require.NoError(t, err)
	return img
}

// quadrantImage builds a width x height image split into four solid
// color quadrants (spec.md §8 scenario 2).
func quadrantImage(t *testing.T, width, height int, tl, tr, bl, br [3]byte) *ImageData {
	t.Helper()
	pixels := make([]byte, width*height*4)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			var c [3]byte
			switch {
			case col < width/2 && row < height/2:
				c = tl
			case col >= width/2 && row < height/2:
				c = tr
			case col < width/2 && row >= height/2:
				c = bl
			default:
				c = br
			}
			off := (row*width + col) * 4
			pixels[off] = c[0]
			pixels[off+1] = c[1]
			pixels[off+2] = c[2]
			pixels[off+3] = 255
		}
	}
	img, err := NewImageData(width, height, pixels)
	require.NoError(t, err)
	return img
}

func TestExtractSolidRed4x4(t *testing.T) {
	img := solidImage(t, 4, 4, 0xFF, 0x00, 0x00)
	opts := DefaultOptions()
	opts.Resize = false

	p, err := Extract(img, opts)
	require.NoError(t, err)
	require.Len(t, p.Swatches(), 1)

	s := p.Swatches()[0]
	require.Equal(t, 16, s.Population())
	require.InDelta(t, 1.0, s.Ratio(), 1e-6)

	want := LAB{L: 53.24, A: 80.09, B: 67.20}
	require.Less(t, deltaE76(s.Lab(), want), 2.0)
}

func TestExtractFourColorQuadrants(t *testing.T) {
	img := quadrantImage(t, 64, 64,
		[3]byte{0xFF, 0x00, 0x00}, // TL red
		[3]byte{0x00, 0xFF, 0x00}, // TR green
		[3]byte{0x00, 0x00, 0xFF}, // BL blue
		[3]byte{0xFF, 0xFF, 0x00}, // BR yellow
	)
	opts := DefaultOptions()
	opts.Resize = false

	p, err := Extract(img, opts)
	require.NoError(t, err)
	require.Len(t, p.Swatches(), 4)

	wantColors := []LAB{
		srgbToLab(1, 0, 0),
		srgbToLab(0, 1, 0),
		srgbToLab(0, 0, 1),
		srgbToLab(1, 1, 0),
	}
	for _, want := range wantColors {
		found := false
		for _, s := range p.Swatches() {
			if deltaE76(s.Lab(), want) <= 5.0 {
				found = true
				require.Equal(t, 1024, s.Population())
				require.InDelta(t, 0.25, s.Ratio(), 0.01)
				break
			}
		}
		require.Truef(t, found, "no swatch within deltaE<=5 of %+v", want)
	}
}

func TestExtractFullyTransparentImageYieldsEmptyPalette(t *testing.T) {
	img := solidImage(t, 10, 10, 0x12, 0x34, 0x56)
	for i := 3; i < len(img.Pixels); i += 4 {
		img.Pixels[i] = 0
	}
	opts := DefaultOptions()
	opts.Resize = false

	p, err := Extract(img, opts)
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())
	require.Empty(t, p.FindSwatches(5))
}

func TestExtractAlphaSplitImage(t *testing.T) {
	const w, h = 100, 100
	pixels := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			off := (row*w + col) * 4
			if col < w/2 {
				pixels[off+3] = 0 // transparent
			} else {
				pixels[off] = 0x5E
				pixels[off+1] = 0xCC
				pixels[off+2] = 0xFD
				pixels[off+3] = 255
			}
		}
	}
	img, err := NewImageData(w, h, pixels)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Resize = false
	p, err := Extract(img, opts)
	require.NoError(t, err)
	require.Len(t, p.Swatches(), 1)

	s := p.Swatches()[0]
	require.Equal(t, 5000, s.Population())
	require.InDelta(t, 1.0, s.Ratio(), 1e-6)
	require.Less(t, deltaE76(s.Lab(), srgbToLab(0x5E/255.0, 0xCC/255.0, 0xFD/255.0)), 2.0)
}

func TestFindSwatchesThemeLightAndDark(t *testing.T) {
	hexColors := []string{"#6DE1D2", "#F7CFD8", "#FF6F61", "#3F4F44", "#210F37", "#2A0A1D"}
	swatches := make([]Swatch, len(hexColors))
	for i, hex := range hexColors {
		r, g, b := mustParseHex(t, hex)
		lab := srgbToLab(float64(r)/255, float64(g)/255, float64(b)/255)
		swatches[i] = Swatch{color: lab, col: i, row: 0, population: 100, ratio: 0.2}
	}
	p := &Palette{swatches: swatches, width: 10, height: 10}

	light := p.FindSwatchesWithTheme(3, ThemeLight)
	require.Len(t, light, 3)
	for _, s := range light {
		lch := s.LCh()
		require.Greaterf(t, lch.L, 50.0, "expected a light color, got L=%v", lch.L)
	}

	dark := p.FindSwatchesWithTheme(3, ThemeDark)
	require.Len(t, dark, 3)
	for _, s := range dark {
		lch := s.LCh()
		require.Lessf(t, lch.L, 55.0, "expected a dark color, got L=%v", lch.L)
	}
}

func TestFindSwatchesReturnsHighestPopulationFirst(t *testing.T) {
	swatches := []Swatch{
		{color: LAB{L: 50, A: 10, B: 10}, population: 5, ratio: 0.1},
		{color: LAB{L: 60, A: -10, B: 10}, population: 50, ratio: 0.5},
		{color: LAB{L: 40, A: 10, B: -10}, population: 20, ratio: 0.2},
	}
	p := &Palette{swatches: swatches}

	result := p.FindSwatches(3)
	require.Len(t, result, 3)
	require.Equal(t, 50, result[0].Population())
}

func mustParseHex(t *testing.T, hex string) (r, g, b byte) {
	t.Helper()
	require.Len(t, hex, 7)
	require.Equal(t, byte('#'), hex[0])
	var v uint64
	for i := 1; i < 7; i++ {
		v = v << 4
		c := hex[i]
		switch {
		case c >= '0' && c <= '9':
			v |= uint64(c - '0')
		case c >= 'A' && c <= 'F':
			v |= uint64(c-'A') + 10
		case c >= 'a' && c <= 'f':
			v |= uint64(c-'a') + 10
		}
	}
	return byte(v >> 16), byte(v >> 8), byte(v)
}
