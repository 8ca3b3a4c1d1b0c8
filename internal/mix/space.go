package mix

import (
	"fmt"
	"math"

	"github.com/jmylchreest/tincture/internal/cam"
	"github.com/jmylchreest/tincture/internal/colour"
)

// greyTolerance is the channel spread below which an sRGB input is grey and
// its hue undefined.
const greyTolerance = 1e-9

func isGrey(c colour.RGB01) bool {
	return math.Abs(c.R-c.G) < greyTolerance && math.Abs(c.G-c.B) < greyTolerance
}

// SRGBInterp lerps gamma-encoded channels.
func SRGBInterp(a, b colour.RGB01, t float64) colour.RGB01 {
	return colour.RGB01{R: lerp(a.R, b.R, t), G: lerp(a.G, b.G, t), B: lerp(a.B, b.B, t)}
}

func (e *Engine) srgbStep(a, b colour.RGB01) stepFunc {
	return func(t float64) (colour.RGB01, error) {
		return SRGBInterp(a, b, t).Clamped(), nil
	}
}

func (e *Engine) linearStep(a, b colour.RGB01) stepFunc {
	la, lb := Linearise(e.transfer, a), Linearise(e.transfer, b)
	return func(t float64) (colour.RGB01, error) {
		l := LinearRGB{R: lerp(la.R, lb.R, t), G: lerp(la.G, lb.G, t), B: lerp(la.B, lb.B, t)}
		return Encode(e.transfer, l), nil
	}
}

func (e *Engine) oklabStep(a, b colour.RGB01) stepFunc {
	oa := OklabFromLinear(Linearise(e.transfer, a))
	ob := OklabFromLinear(Linearise(e.transfer, b))
	return func(t float64) (colour.RGB01, error) {
		return Encode(e.transfer, oa.Lerp(ob, t).Linear()), nil
	}
}

func (e *Engine) okhsvStep(a, b colour.RGB01, policy HuePolicy) stepFunc {
	ha := OklabFromLinear(Linearise(e.transfer, a)).HSV()
	hb := OklabFromLinear(Linearise(e.transfer, b)).HSV()
	ha.H, hb.H = resolveAchromatic(ha.H, hb.H, isGrey(a), isGrey(b))
	return func(t float64) (colour.RGB01, error) {
		p := OkHSV{
			H: interpHue(ha.H, hb.H, t, 1, policy),
			S: lerp(ha.S, hb.S, t),
			V: lerp(ha.V, hb.V, t),
		}
		return Encode(e.transfer, p.Oklab().Linear()), nil
	}
}

// camOf converts an sRGB colour to CAM16 under the engine's view.
func (e *Engine) camOf(c colour.RGB01) cam.CAM {
	x, y, z := cam.SRGB.Decode(c.R, c.G, c.B)
	return cam.FromXYZ(x, y, z, e.view)
}

// hctOf converts an sRGB colour to HCT under the engine's view.
func (e *Engine) hctOf(c colour.RGB01) cam.HCT {
	return cam.HCTFromRGB(cam.SRGB, c.R, c.G, c.B, e.view)
}

// fromCAM converts an appearance colour to sRGB, fitting it into the gamut
// by chroma reduction when it lies outside.
func (e *Engine) fromCAM(cm cam.CAM) (colour.RGB01, error) {
	x, y, z := cm.XYZ(e.view)
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		return colour.RGB01{}, fmt.Errorf("%w: J=%.3f C=%.3f h=%.3f has no XYZ solution", ErrConversion, cm.Lightness, cm.Chroma, cm.Hue)
	}
	if cam.SRGB.Contains(x, y, z) {
		r, g, b := cam.SRGB.Encode(x, y, z)
		return colour.RGB01{R: r, G: g, B: b}, nil
	}
	return e.fit(cam.HCT{Hue: cm.Hue, Chroma: cm.Chroma, Tone: cam.LstarFromY(y)}, cam.SRGB)
}

// fit converts an HCT colour into gamut g.
func (e *Engine) fit(h cam.HCT, g cam.Gamut) (colour.RGB01, error) {
	r, gr, b, err := h.Fit(g, e.view)
	if err != nil {
		return colour.RGB01{}, fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return colour.RGB01{R: r, G: gr, B: b}, nil
}

func (e *Engine) ucsStep(a, b colour.RGB01) stepFunc {
	ua, ub := e.camOf(a).UCS(), e.camOf(b).UCS()
	return func(t float64) (colour.RGB01, error) {
		u := cam.UCS{J: lerp(ua.J, ub.J, t), A: lerp(ua.A, ub.A, t), B: lerp(ua.B, ub.B, t)}
		return e.fromCAM(u.CAM(e.view))
	}
}

func (e *Engine) jmhStep(a, b colour.RGB01, policy HuePolicy) stepFunc {
	ja, jb := e.camOf(a).JMh(), e.camOf(b).JMh()
	ja.H, jb.H = resolveAchromatic(ja.H, jb.H, isGrey(a), isGrey(b))
	return func(t float64) (colour.RGB01, error) {
		p := cam.JMh{
			J: lerp(ja.J, jb.J, t),
			M: lerp(ja.M, jb.M, t),
			H: interpHue(ja.H, jb.H, t, 360, policy),
		}
		return e.fromCAM(p.CAM(e.view))
	}
}

func (e *Engine) hctStep(a, b colour.RGB01, policy HuePolicy) stepFunc {
	ha, hb := e.hctOf(a), e.hctOf(b)
	ha.Hue, hb.Hue = resolveAchromatic(ha.Hue, hb.Hue, isGrey(a), isGrey(b))
	return func(t float64) (colour.RGB01, error) {
		h := cam.HCT{
			Hue:    interpHue(ha.Hue, hb.Hue, t, 360, policy),
			Chroma: lerp(ha.Chroma, hb.Chroma, t),
			Tone:   lerp(ha.Tone, hb.Tone, t),
		}
		return e.fit(h, cam.SRGB)
	}
}
