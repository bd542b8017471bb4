package autopalette

// Theme is a closed sum type over the five aesthetic themes spec.md §4.8
// names, plus the un-themed (population-weighted) mode used by
// Palette.FindSwatches. Adding a theme means adding a constant and its
// scoring function below — no inheritance hierarchy, per spec.md §9.
type Theme int

const (
	ThemeNone Theme = iota
	ThemeColorful
	ThemeVivid
	ThemeMuted
	ThemeLight
	ThemeDark
)

// ParseTheme maps a case-sensitive theme name (as used by the CLI's
// -t/--theme flag) to a Theme, returning ErrInvalidParameter for unknown
// names (spec.md §7).
func ParseTheme(name string) (Theme, error) {
	switch name {
	case "colorful":
		return ThemeColorful, nil
	case "vivid":
		return ThemeVivid, nil
	case "muted":
		return ThemeMuted, nil
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	case "", "none":
		return ThemeNone, nil
	default:
		return ThemeNone, ErrInvalidParameter
	}
}

// themeGaussianParams holds the (mu, sigma) pairs from spec.md §4.8,
// exposed as tunable constants per the spec's note that implementations
// should match the tested scenarios in §8 rather than hard-code a single
// canonical set.
type themeGaussianParams struct {
	lMu, lSigma float64
	cMu, cSigma float64
	useChroma   bool
}

var themeParams = map[Theme]themeGaussianParams{
	ThemeColorful: {lMu: 60, lSigma: 25, cMu: 80, cSigma: 40, useChroma: true},
	ThemeVivid:    {lMu: 55, lSigma: 20, cMu: 100, cSigma: 30, useChroma: true},
	ThemeMuted:    {lMu: 55, lSigma: 20, cMu: 30, cSigma: 20, useChroma: true},
	ThemeLight:    {lMu: 85, lSigma: 10},
	ThemeDark:     {lMu: 20, lSigma: 12},
}

// scoreSwatch returns the swatch's score in [0,1] for theme. For
// ThemeNone it returns the swatch's population directly (spec.md §4.8:
// "population directly (no Gaussian; used by find_swatches)").
func scoreSwatch(s Swatch, theme Theme) float64 {
	if theme == ThemeNone {
		return float64(s.population)
	}
	params, ok := themeParams[theme]
	if !ok {
		return 0
	}
	lch := s.LCh()
	score := gaussian(lch.L, params.lMu, params.lSigma)
	if params.useChroma {
		score *= gaussian(lch.C, params.cMu, params.cSigma)
	}
	return score
}
