package cam

// fitIterations bounds the chroma-reduction search in Fit.
const fitIterations = 40

// HCTFromRGB converts gamma-encoded channels of gamut g to HCT.
func HCTFromRGB(g Gamut, r, gr, b float64, vw *View) HCT {
	x, y, z := g.Decode(r, gr, b)
	return HCTFromXYZ(x, y, z, vw)
}

// Fit maps an HCT colour into gamut g and returns gamma-encoded channels.
// In-gamut colours are converted directly. Otherwise chroma is reduced by
// bisection with hue and tone held fixed, and any residual excursion is
// clipped.
func (h HCT) Fit(g Gamut, vw *View) (r, gr, b float64, err error) {
	x, y, z, err := h.XYZ(vw)
	if err == nil && g.Contains(x, y, z) {
		r, gr, b = g.Encode(x, y, z)
		return r, gr, b, nil
	}

	lo, hi := 0.0, h.Chroma
	best := HCT{Hue: h.Hue, Chroma: 0, Tone: h.Tone}
	for range fitIterations {
		mid := HCT{Hue: h.Hue, Chroma: 0.5 * (lo + hi), Tone: h.Tone}
		if mid.InGamut(g, vw) {
			lo = mid.Chroma
			best = mid
		} else {
			hi = mid.Chroma
		}
	}

	x, y, z, err = best.XYZ(vw)
	if err != nil {
		return 0, 0, 0, err
	}
	r, gr, b = g.Encode(x, y, z)
	return r, gr, b, nil
}

// MaxChroma finds the largest chroma at (hue, tone) known to lie inside g by
// bisection between 0 and hi. If hi itself is inside the gamut it is
// returned unchanged. The result is always in gamut; more iterations can
// only raise it.
func MaxChroma(g Gamut, hue, tone, hi float64, iterations int, vw *View) float64 {
	if (HCT{Hue: hue, Chroma: hi, Tone: tone}).InGamut(g, vw) {
		return hi
	}
	lo := 0.0
	for range max(1, iterations) {
		mid := 0.5 * (lo + hi)
		if (HCT{Hue: hue, Chroma: mid, Tone: tone}).InGamut(g, vw) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
