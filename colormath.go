package autopalette

import "math"

// LAB is a color in the CIE L*a*b* space under the D65 illuminant.
// L is in [0,100]; a and b are unbounded in principle but fall roughly in
// [-128,127] for colors reachable from sRGB.
type LAB struct {
	L, A, B float64
}

// LCh is the polar form of L*a*b*: lightness, chroma and hue (radians,
// normalized to [0, 2*pi)).
type LCh struct {
	L, C, H float64
}

var (
	srgbToLinearLUT [256]float64
	linearToSRGBLUT [4096]uint8
)

func init() {
	for i := 0; i < 256; i++ {
		f := float64(i) / 255.0
		if f > 0.04045 {
			srgbToLinearLUT[i] = math.Pow((f+0.055)/1.055, 2.4)
		} else {
			srgbToLinearLUT[i] = f / 12.92
		}
	}
	for i := 0; i < len(linearToSRGBLUT); i++ {
		f := float64(i) / float64(len(linearToSRGBLUT)-1)
		var s float64
		if f > 0.0031308 {
			s = 1.055*math.Pow(f, 1.0/2.4) - 0.055
		} else {
			s = f * 12.92
		}
		linearToSRGBLUT[i] = uint8(clamp(math.Round(s*255), 0, 255))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// srgbToLab converts an sRGB triplet (each channel in [0,1], clamped on
// entry) to CIE L*a*b* under D65, by way of linear RGB and CIE XYZ.
func srgbToLab(r, g, b float64) LAB {
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)

	lr := srgbChannelToLinear(r)
	lg := srgbChannelToLinear(g)
	lb := srgbChannelToLinear(b)

	x := lr*0.4124564 + lg*0.3575761 + lb*0.1804375
	y := lr*0.2126729 + lg*0.7151522 + lb*0.0721750
	z := lr*0.0193339 + lg*0.1191920 + lb*0.9503041

	const (
		xn = 0.95047
		yn = 1.00000
		zn = 1.08883
	)
	fx := labF(x / xn)
	fy := labF(y / yn)
	fz := labF(z / zn)

	return LAB{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// labToSRGB is the inverse of srgbToLab, used only for round-trip tests
// and CLI preview rendering; it is not on the core extraction path.
func labToSRGB(c LAB) (r, g, b float64) {
	fy := (c.L + 16.0) / 116.0
	fx := c.A/500.0 + fy
	fz := fy - c.B/200.0

	const (
		xn = 0.95047
		yn = 1.00000
		zn = 1.08883
	)
	x := labFInv(fx) * xn
	y := labFInv(fy) * yn
	z := labFInv(fz) * zn

	lr := x*3.2404542 - y*1.5371385 - z*0.4985314
	lg := -x*0.9692660 + y*1.8760108 + z*0.0415560
	lb := x*0.0556434 - y*0.2040259 + z*1.0572252

	return linearToSRGBChannel(lr), linearToSRGBChannel(lg), linearToSRGBChannel(lb)
}

func srgbChannelToLinear(c float64) float64 {
	if c <= 1 && c >= 0 {
		idx := int(math.Round(c * 255))
		if idx >= 0 && idx < 256 {
			return srgbToLinearLUT[idx]
		}
	}
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

func linearToSRGBChannel(c float64) float64 {
	c = clamp(c, 0, 1)
	idx := int(math.Round(c * float64(len(linearToSRGBLUT)-1)))
	return float64(linearToSRGBLUT[idx]) / 255.0
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

// labToLCh converts L*a*b* to its polar LCh form with hue normalized to
// [0, 2*pi).
func labToLCh(c LAB) LCh {
	chroma := math.Hypot(c.A, c.B)
	h := math.Atan2(c.B, c.A)
	if h < 0 {
		h += 2 * math.Pi
	}
	return LCh{L: c.L, C: chroma, H: h}
}

// deltaE76 is the Euclidean distance between two L*a*b* colors (CIE76).
// Used both as the SwatchAssembler merge criterion and inside the DBSCAN
// epsilon for the color axes.
func deltaE76(a, b LAB) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// gaussian evaluates G(v; mu, sigma) = exp(-(v-mu)^2 / (2*sigma^2)),
// used by ThemeScorer.
func gaussian(v, mu, sigma float64) float64 {
	d := v - mu
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}
