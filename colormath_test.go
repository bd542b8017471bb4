package autopalette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSrgbToLabKnownColors(t *testing.T) {
	cases := []struct {
		name       string
		r, g, b    float64
		wantL      float64
		wantA      float64
		wantB      float64
	}{
		{"red", 1, 0, 0, 53.24, 80.09, 67.20},
		{"white", 1, 1, 1, 100, 0, 0},
		{"black", 0, 0, 0, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := srgbToLab(c.r, c.g, c.b)
			want := LAB{L: c.wantL, A: c.wantA, B: c.wantB}
			require.Lessf(t, deltaE76(got, want), 1.0,
				"got %+v want ~%+v", got, want)
		})
	}
}

func TestSrgbLabRoundTrip(t *testing.T) {
	inputs := [][3]float64{
		{0.93, 0.2, 0.4},
		{0.1, 0.8, 0.3},
		{0.5, 0.5, 0.5},
	}
	for _, in := range inputs {
		lab := srgbToLab(in[0], in[1], in[2])
		r, g, b := labToSRGB(lab)
		back := srgbToLab(r, g, b)
		require.Less(t, deltaE76(lab, back), 1.0)
	}
}

func TestLabToLChNormalizesHue(t *testing.T) {
	lch := labToLCh(LAB{L: 50, A: -10, B: -10})
	require.GreaterOrEqual(t, lch.H, 0.0)
	require.Less(t, lch.H, 2*math.Pi)
}

func TestDeltaE76Symmetric(t *testing.T) {
	a := LAB{L: 50, A: 10, B: -20}
	b := LAB{L: 55, A: 5, B: -15}
	require.Equal(t, deltaE76(a, b), deltaE76(b, a))
	require.Zero(t, deltaE76(a, a))
}

func TestGaussianPeaksAtMu(t *testing.T) {
	peak := gaussian(60, 60, 25)
	require.InDelta(t, 1.0, peak, 1e-9)
	off := gaussian(10, 60, 25)
	require.Less(t, off, peak)
}
