package autopalette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeFeaturesDefaultFilterDropsTransparent(t *testing.T) {
	pixels := []byte{
		0xFF, 0x00, 0x00, 0xFF, // opaque red
		0x00, 0xFF, 0x00, 0x00, // fully transparent green
	}
	img, err := NewImageData(2, 1, pixels)
	require.NoError(t, err)

	res := encodeFeatures(img, DefaultPixelFilter, false)
	require.Len(t, res.points, 1)
	require.Equal(t, 2, res.total)
	require.Equal(t, 1, res.kept)
}

func TestEncodeFeaturesSpatialCoordinatesAreOneIndexed(t *testing.T) {
	pixels := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	img, err := NewImageData(1, 1, pixels)
	require.NoError(t, err)

	res := encodeFeatures(img, DefaultPixelFilter, false)
	require.Len(t, res.points, 1)
	require.Equal(t, 1.0, res.points[0].X)
	require.Equal(t, 1.0, res.points[0].Y)
}

func TestEncodeFeaturesRowMajorOrder(t *testing.T) {
	// 2x2 image; distinct lightness per pixel lets us check ordering.
	pixels := []byte{
		0x00, 0x00, 0x00, 0xFF, // row0 col0: black
		0x40, 0x40, 0x40, 0xFF, // row0 col1
		0x80, 0x80, 0x80, 0xFF, // row1 col0
		0xFF, 0xFF, 0xFF, 0xFF, // row1 col1: white
	}
	img, err := NewImageData(2, 2, pixels)
	require.NoError(t, err)

	res := encodeFeatures(img, DefaultPixelFilter, false)
	require.Len(t, res.points, 4)
	for i := 1; i < len(res.points); i++ {
		require.LessOrEqual(t, res.points[i-1].L, res.points[i].L)
	}
}

func TestEncodeFeaturesResizePreservesOriginalDimensionsForPositions(t *testing.T) {
	const w, h = 512, 300
	pixels := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		off := i * 4
		pixels[off], pixels[off+1], pixels[off+2], pixels[off+3] = 0x22, 0x88, 0xCC, 0xFF
	}
	img, err := NewImageData(w, h, pixels)
	require.NoError(t, err)

	res := encodeFeatures(img, DefaultPixelFilter, true)
	require.Equal(t, w, res.width)
	require.Equal(t, h, res.height)
	require.NotEmpty(t, res.points)
}
