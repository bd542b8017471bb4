package main

import (
	"fmt"
	"image/color"
	"math"
)

type ansiEntry struct {
	code  int
	color color.RGBA
}

// ansi16Palette is the standard 16-color terminal palette (codes 30-37,
// 90-97 as foreground SGR codes), used for --color-space ansi16.
var ansi16Palette = []ansiEntry{
	{30, color.RGBA{0, 0, 0, 255}},
	{31, color.RGBA{170, 0, 0, 255}},
	{32, color.RGBA{0, 170, 0, 255}},
	{33, color.RGBA{170, 85, 0, 255}},
	{34, color.RGBA{0, 0, 170, 255}},
	{35, color.RGBA{170, 0, 170, 255}},
	{36, color.RGBA{0, 170, 170, 255}},
	{37, color.RGBA{170, 170, 170, 255}},
	{90, color.RGBA{85, 85, 85, 255}},
	{91, color.RGBA{255, 85, 85, 255}},
	{92, color.RGBA{85, 255, 85, 255}},
	{93, color.RGBA{255, 255, 85, 255}},
	{94, color.RGBA{85, 85, 255, 255}},
	{95, color.RGBA{255, 85, 255, 255}},
	{96, color.RGBA{85, 255, 255, 255}},
	{97, color.RGBA{255, 255, 255, 255}},
}

// ansi256Palette is the standard xterm 256-color palette: 16 system
// colors, a 6x6x6 color cube (codes 16-231), and a 24-step grayscale
// ramp (codes 232-255).
var ansi256Palette = buildANSI256Palette()

func buildANSI256Palette() []ansiEntry {
	entries := make([]ansiEntry, 0, 256)
	for i, e := range ansi16Palette {
		entries = append(entries, ansiEntry{code: i, color: e.color})
	}

	steps := []uint8{0, 95, 135, 175, 215, 255}
	code := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				entries = append(entries, ansiEntry{
					code:  code,
					color: color.RGBA{steps[r], steps[g], steps[b], 255},
				})
				code++
			}
		}
	}

	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		entries = append(entries, ansiEntry{code: 232 + i, color: color.RGBA{v, v, v, 255}})
	}
	return entries
}

// nearestANSI finds the closest entry in palette to c by Euclidean
// distance in sRGB space and renders the swatch's hex in that entry's
// color: "ESC[<code>m #HEX" for the 16-color palette, whose codes are SGR
// foreground codes, and "ESC[38;5;<code>m #HEX" for the 256-color
// palette, whose codes are xterm color indices.
func nearestANSI(c color.RGBA, palette []ansiEntry) string {
	best := palette[0]
	bestDist := math.MaxFloat64
	for _, entry := range palette {
		dr := float64(c.R) - float64(entry.color.R)
		dg := float64(c.G) - float64(entry.color.G)
		db := float64(c.B) - float64(entry.color.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = entry
		}
	}
	if len(palette) <= len(ansi16Palette) {
		return fmt.Sprintf("\x1b[%dm#%02X%02X%02X\x1b[0m", best.code, c.R, c.G, c.B)
	}
	return fmt.Sprintf("\x1b[38;5;%dm#%02X%02X%02X\x1b[0m", best.code, c.R, c.G, c.B)
}
