package cam

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// gamutEpsilon is the tolerance on linear channels when testing membership.
const gamutEpsilon = 1e-7

// Gamut is an RGB target colour space sharing the sRGB transfer curve.
type Gamut struct {
	name    string
	toLin   func(x, y, z float64) (r, g, b float64)
	fromLin func(r, g, b float64) (x, y, z float64)
}

var (
	// SRGB is the IEC 61966-2-1 sRGB gamut.
	SRGB = Gamut{name: "srgb", toLin: colorful.XyzToLinearRgb, fromLin: colorful.LinearRgbToXyz}

	// DisplayP3 uses the DCI-P3 primaries with a D65 white.
	DisplayP3 = Gamut{name: "display-p3", toLin: xyzToLinearP3, fromLin: linearP3ToXyz}
)

// GamutNames lists the supported gamut names.
func GamutNames() []string {
	return []string{SRGB.name, DisplayP3.name}
}

// ParseGamut looks up a gamut by name.
func ParseGamut(name string) (Gamut, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "srgb":
		return SRGB, nil
	case "display-p3", "p3":
		return DisplayP3, nil
	}
	return Gamut{}, fmt.Errorf("unknown gamut %q (valid: %s)", name, strings.Join(GamutNames(), ", "))
}

// Name returns the canonical gamut name.
func (g Gamut) Name() string {
	if g.name == "" {
		return SRGB.name
	}
	return g.name
}

func (g Gamut) resolve() Gamut {
	if g.toLin == nil {
		return SRGB
	}
	return g
}

// Linear converts 100-based XYZ to linear channels of the gamut.
func (g Gamut) Linear(x, y, z float64) (r, gr, b float64) {
	return g.resolve().toLin(x/100, y/100, z/100)
}

// XYZ converts linear channels of the gamut to 100-based XYZ.
func (g Gamut) XYZ(r, gr, b float64) (x, y, z float64) {
	x, y, z = g.resolve().fromLin(r, gr, b)
	return x * 100, y * 100, z * 100
}

// Contains reports whether the 100-based XYZ colour lies inside the gamut.
func (g Gamut) Contains(x, y, z float64) bool {
	r, gr, b := g.Linear(x, y, z)
	return inUnit(r) && inUnit(gr) && inUnit(b)
}

// Encode converts 100-based XYZ to gamma-encoded channels, clipping to the
// unit range.
func (g Gamut) Encode(x, y, z float64) (r, gr, b float64) {
	lr, lg, lb := g.Linear(x, y, z)
	c := colorful.LinearRgb(clamp(lr, 0, 1), clamp(lg, 0, 1), clamp(lb, 0, 1))
	return c.R, c.G, c.B
}

// Decode converts gamma-encoded channels of the gamut to 100-based XYZ.
func (g Gamut) Decode(r, gr, b float64) (x, y, z float64) {
	lr, lg, lb := colorful.Color{R: r, G: gr, B: b}.LinearRgb()
	return g.XYZ(lr, lg, lb)
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= -gamutEpsilon && v <= 1+gamutEpsilon
}

func xyzToLinearP3(x, y, z float64) (r, g, b float64) {
	r = 2.4934969119414254*x - 0.9313836179191239*y - 0.40271078445071684*z
	g = -0.8294889695615747*x + 1.7626640603183463*y + 0.023624685841943577*z
	b = 0.03584583024378447*x - 0.07617238926804182*y + 0.9568845240076872*z
	return
}

func linearP3ToXyz(r, g, b float64) (x, y, z float64) {
	x = 0.4865709486482162*r + 0.26566769316909306*g + 0.1982172852343625*b
	y = 0.2289745640697488*r + 0.6917385218365064*g + 0.079286914093745*b
	z = 0.0*r + 0.04511338185890264*g + 1.043944368900976*b
	return
}
