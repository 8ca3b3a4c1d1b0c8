package mix

import "math"

// Oklab is a colour in Björn Ottosson's Oklab space. L is nominally in
// [0,1]; a and b are unbounded.
type Oklab struct {
	L, A, B float64
}

// OklabFromLinear converts linear-light sRGB to Oklab.
func OklabFromLinear(c LinearRGB) Oklab {
	l := 0.4122214708*c.R + 0.5363325363*c.G + 0.0514459929*c.B
	m := 0.2119034982*c.R + 0.6806995451*c.G + 0.1073969566*c.B
	s := 0.0883024619*c.R + 0.2817188376*c.G + 0.6299787005*c.B

	lp, mp, sp := math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)

	return Oklab{
		L: 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp,
		A: 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp,
		B: 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp,
	}
}

// Linear converts back to linear-light sRGB. The result is not clamped.
func (o Oklab) Linear() LinearRGB {
	lp := o.L + 0.3963377774*o.A + 0.2158037573*o.B
	mp := o.L - 0.1055613458*o.A - 0.0638541728*o.B
	sp := o.L - 0.0894841775*o.A - 1.2914855480*o.B

	l, m, s := lp*lp*lp, mp*mp*mp, sp*sp*sp

	return LinearRGB{
		R: 4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
	}
}

// Lerp interpolates component-wise.
func (o Oklab) Lerp(to Oklab, t float64) Oklab {
	return Oklab{L: lerp(o.L, to.L, t), A: lerp(o.A, to.A, t), B: lerp(o.B, to.B, t)}
}

// OkHSV is the polar form of Oklab used by the okhsv algorithm: H is the
// hue as a fraction of a turn in [0,1), S the Oklab chroma and V the Oklab
// lightness. It is not gamut-mapped; colours outside sRGB clip on output.
type OkHSV struct {
	H, S, V float64
}

// HSV converts to the polar form.
func (o Oklab) HSV() OkHSV {
	h := math.Atan2(o.B, o.A) / (2 * math.Pi)
	return OkHSV{H: wrapUnit(h), S: math.Hypot(o.A, o.B), V: o.L}
}

// Oklab converts back to rectangular coordinates.
func (p OkHSV) Oklab() Oklab {
	sin, cos := math.Sincos(2 * math.Pi * p.H)
	return Oklab{L: p.V, A: p.S * cos, B: p.S * sin}
}

// wrapUnit wraps v into [0,1).
func wrapUnit(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		v = 0
	}
	return v
}
