package mix

import (
	"math"

	"github.com/jmylchreest/tincture/internal/cache"
	"github.com/jmylchreest/tincture/internal/cam"
	"github.com/jmylchreest/tincture/internal/colour"
)

// HCTMixOptions tunes the mix_hct policy.
type HCTMixOptions struct {
	// ClampTones bounds the endpoint tones so the ends keep usable chroma.
	ClampTones [2]float64
	// KSat shapes the saturation curve; smaller values spend more of the
	// [0,1] range on low chroma.
	KSat float64
	// SFreeze is the saturation below which the hue snaps to the nearer
	// endpoint instead of sweeping through greys. Zero disables it.
	SFreeze float64
	// CmaxHi is the chroma ceiling searched for the gamut envelope.
	CmaxHi float64
	// CmaxIters is the bisection depth of the envelope search.
	CmaxIters int
	// QuantHue and QuantTone quantise envelope lookups for caching.
	QuantHue  float64
	QuantTone float64
	// HueWarp and HueUnwarp map hue into and out of the space the arc is
	// interpolated in. Nil means identity.
	HueWarp   func(float64) float64
	HueUnwarp func(float64) float64
}

// DefaultHCTMixOptions returns the standard tuning.
func DefaultHCTMixOptions() HCTMixOptions {
	return HCTMixOptions{
		ClampTones: [2]float64{2, 98},
		KSat:       0.6,
		SFreeze:    0.02,
		CmaxHi:     120,
		CmaxIters:  8,
		QuantHue:   0.25,
		QuantTone:  0.25,
	}
}

// withDefaults returns the defaults for zero-value options. Otherwise zero
// fields that have no meaning of their own take the default, while SFreeze
// is kept so zero disables the hue freeze.
func (o HCTMixOptions) withDefaults() HCTMixOptions {
	d := DefaultHCTMixOptions()
	if o.isZero() {
		d.HueWarp, d.HueUnwarp = o.HueWarp, o.HueUnwarp
		return d
	}
	if o.ClampTones == [2]float64{} {
		o.ClampTones = d.ClampTones
	}
	if o.KSat <= 0 {
		o.KSat = d.KSat
	}
	if o.SFreeze < 0 {
		o.SFreeze = 0
	}
	if o.CmaxHi <= 0 {
		o.CmaxHi = d.CmaxHi
	}
	if o.CmaxIters <= 0 {
		o.CmaxIters = d.CmaxIters
	}
	if o.QuantHue <= 0 {
		o.QuantHue = d.QuantHue
	}
	if o.QuantTone <= 0 {
		o.QuantTone = d.QuantTone
	}
	return o
}

func (o HCTMixOptions) isZero() bool {
	return o.ClampTones == [2]float64{} && o.KSat == 0 && o.SFreeze == 0 &&
		o.CmaxHi == 0 && o.CmaxIters == 0 && o.QuantHue == 0 && o.QuantTone == 0
}

func identity(h float64) float64 { return h }

// SatMapper converts between chroma and a gamut-relative saturation in [0,1]
// using an asinh curve.
type SatMapper struct {
	k    float64
	norm float64
}

// NewSatMapper creates a mapper with shape k.
func NewSatMapper(k float64) SatMapper {
	return SatMapper{k: k, norm: math.Asinh(1 / k)}
}

// Encode maps chroma c against envelope cmax to saturation. A non-positive
// envelope yields 0.
func (m SatMapper) Encode(c, cmax float64) float64 {
	if cmax <= 0 {
		return 0
	}
	return math.Asinh((max(0, c)/cmax)/m.k) / m.norm
}

// Decode maps saturation s back to chroma under envelope cmax.
func (m SatMapper) Decode(s, cmax float64) float64 {
	return cmax * m.k * math.Sinh(clamp01(s)*m.norm)
}

func quantise(v, step float64) float64 {
	return math.Round(v/step) * step
}

// cmax returns the memoised gamut envelope at (hue, tone).
func (e *Engine) cmax(hue, tone float64) float64 {
	o := e.hctMix
	key := cache.Key{
		Gamut:      e.gamut.Name(),
		Hue:        quantise(hue, o.QuantHue),
		Tone:       quantise(tone, o.QuantTone),
		Hi:         o.CmaxHi,
		Iterations: o.CmaxIters,
	}
	return cache.GetOrCreate(e.cache, key, func() float64 {
		return cam.MaxChroma(e.gamut, key.Hue, key.Tone, key.Hi, key.Iterations, e.view)
	})
}

// MixHCT runs the mix_hct policy directly.
func (e *Engine) MixHCT(a, b colour.RGB01, n int) ([]colour.RGB01, error) {
	return e.Palette(Request{A: a, B: b, Steps: n, Algorithm: AlgorithmMixHCT})
}

func (e *Engine) mixHCT(a, b colour.RGB01, n int) ([]colour.RGB01, error) {
	o := e.hctMix
	warp, unwarp := o.HueWarp, o.HueUnwarp
	if warp == nil {
		warp = identity
	}
	if unwarp == nil {
		unwarp = identity
	}
	sat := NewSatMapper(o.KSat)

	ha, hb := e.hctOf(a), e.hctOf(b)
	lo, hi := o.ClampTones[0], o.ClampTones[1]
	ta := math.Max(lo, math.Min(hi, ha.Tone))
	tb := math.Max(lo, math.Min(hi, hb.Tone))

	sa := sat.Encode(ha.Chroma, e.cmax(ha.Hue, ta))
	sb := sat.Encode(hb.Chroma, e.cmax(hb.Hue, tb))
	wa, wb := warp(ha.Hue), warp(hb.Hue)
	arc := math.Mod(wb-wa+180, 360)
	if arc < 0 {
		arc += 360
	}
	arc -= 180

	e.logger.Trace("mix_hct endpoints", "a", ha.String(), "b", hb.String(), "sa", sa, "sb", sb)

	out := make([]colour.RGB01, n)
	for i := range out {
		t := float64(i) / float64(n-1)
		tone := lerp(ta, tb, t)
		hue := cam.SanitizeDegrees(unwarp(wa + t*arc))
		env := e.cmax(hue, tone)

		s := lerp(sa, sb, t)
		if s < o.SFreeze {
			if t < 0.5 {
				hue = ha.Hue
			} else {
				hue = hb.Hue
			}
			env = e.cmax(hue, tone)
		}

		c, err := e.fit(cam.HCT{Hue: hue, Chroma: sat.Decode(s, env), Tone: tone}, e.gamut)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}

	out[0], out[n-1] = e.inGamut(a), e.inGamut(b)
	return out, nil
}

// inGamut re-encodes an sRGB colour in the engine's output gamut.
func (e *Engine) inGamut(c colour.RGB01) colour.RGB01 {
	c = c.Clamped()
	if e.gamut.Name() == cam.SRGB.Name() {
		return c
	}
	r, g, b := e.gamut.Encode(cam.SRGB.Decode(c.R, c.G, c.B))
	return colour.RGB01{R: r, G: g, B: b}
}
