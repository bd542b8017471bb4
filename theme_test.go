package autopalette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseThemeKnownNames(t *testing.T) {
	cases := map[string]Theme{
		"colorful": ThemeColorful,
		"vivid":    ThemeVivid,
		"muted":    ThemeMuted,
		"light":    ThemeLight,
		"dark":     ThemeDark,
		"":         ThemeNone,
	}
	for name, want := range cases {
		got, err := ParseTheme(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseThemeUnknownIsInvalidParameter(t *testing.T) {
	_, err := ParseTheme("nonexistent")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestScoreSwatchUnthemedIsPopulation(t *testing.T) {
	s := Swatch{color: LAB{L: 50}, population: 42}
	require.Equal(t, 42.0, scoreSwatch(s, ThemeNone))
}

func TestScoreSwatchLightFavorsHighLightness(t *testing.T) {
	bright := Swatch{color: LAB{L: 90, A: 0, B: 0}}
	dim := Swatch{color: LAB{L: 20, A: 0, B: 0}}
	require.Greater(t, scoreSwatch(bright, ThemeLight), scoreSwatch(dim, ThemeLight))
}

func TestScoreSwatchDarkFavorsLowLightness(t *testing.T) {
	bright := Swatch{color: LAB{L: 90, A: 0, B: 0}}
	dim := Swatch{color: LAB{L: 20, A: 0, B: 0}}
	require.Greater(t, scoreSwatch(dim, ThemeDark), scoreSwatch(bright, ThemeDark))
}

func TestScoreSwatchVividFavorsHighChroma(t *testing.T) {
	vivid := Swatch{color: LAB{L: 55, A: 90, B: 40}}
	muted := Swatch{color: LAB{L: 55, A: 5, B: 5}}
	require.Greater(t, scoreSwatch(vivid, ThemeVivid), scoreSwatch(muted, ThemeVivid))
}
