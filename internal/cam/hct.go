package cam

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence is returned when an HCT colour cannot be solved back to
// XYZ within the iteration budget.
var ErrNoConvergence = errors.New("hct solver did not converge")

const (
	// achromaticChroma is the chroma below which a colour is treated as grey.
	achromaticChroma = 1e-4
	newtonIterations = 100
	bisectIterations = 200
	solveTolerance   = 1e-10
)

// HCT is a colour as hue (degrees), chroma (CAM16 C) and tone (L*).
type HCT struct {
	Hue    float64
	Chroma float64
	Tone   float64
}

// String returns a readable form for logs.
func (h HCT) String() string {
	return fmt.Sprintf("hct(%.2f, %.2f, %.2f)", h.Hue, h.Chroma, h.Tone)
}

// HCTFromXYZ computes HCT for a 100-based XYZ colour.
func HCTFromXYZ(x, y, z float64, vw *View) HCT {
	cm := FromXYZ(x, y, z, vw)
	return HCT{Hue: cm.Hue, Chroma: cm.Chroma, Tone: LstarFromY(y)}
}

// XYZ solves the HCT colour back to 100-based XYZ. Tone fixes Y exactly;
// CAM16 lightness J is searched so the solved colour has that Y.
func (h HCT) XYZ(vw *View) (x, y, z float64, err error) {
	target := YFromLstar(h.Tone)
	if h.Chroma < achromaticChroma || h.Tone < 1e-4 || h.Tone > 99.9999 {
		return vw.WhitePoint[0] * target / 100, target, vw.WhitePoint[2] * target / 100, nil
	}

	if x, y, z, ok := h.solveNewton(target, vw); ok {
		return x, y, z, nil
	}
	if x, y, z, ok := h.solveBisect(target, vw); ok {
		return x, y, z, nil
	}
	return 0, 0, 0, fmt.Errorf("%w: %s", ErrNoConvergence, h)
}

func (h HCT) yAt(j float64, vw *View) (x, y, z float64) {
	return FromJCh(j, h.Chroma, h.Hue, vw).XYZ(vw)
}

func converged(fy, target float64) bool {
	return math.Abs(fy-target) <= solveTolerance*math.Max(1, target)
}

func (h HCT) solveNewton(target float64, vw *View) (x, y, z float64, ok bool) {
	j := math.Sqrt(h.Tone) * 11
	for range newtonIterations {
		x, fy, z := h.yAt(j, vw)
		if math.IsNaN(fy) || fy <= 0 {
			return 0, 0, 0, false
		}
		if converged(fy, target) {
			return x, fy, z, true
		}
		j -= (fy - target) * j / (2 * fy)
		if j <= 0 || math.IsNaN(j) {
			return 0, 0, 0, false
		}
	}
	return 0, 0, 0, false
}

func (h HCT) solveBisect(target float64, vw *View) (x, y, z float64, ok bool) {
	lo, hi := 0.0, 100.0
	for range 8 {
		if _, fy, _ := h.yAt(hi, vw); fy >= target {
			break
		}
		hi *= 2
	}
	for range bisectIterations {
		mid := 0.5 * (lo + hi)
		x, fy, z := h.yAt(mid, vw)
		if math.IsNaN(fy) {
			return 0, 0, 0, false
		}
		if converged(fy, target) {
			return x, fy, z, true
		}
		if fy < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, 0, 0, false
}

// InGamut reports whether the HCT colour solves to a point inside g.
// Colours the solver cannot reach are outside every gamut.
func (h HCT) InGamut(g Gamut, vw *View) bool {
	x, y, z, err := h.XYZ(vw)
	if err != nil {
		return false
	}
	return g.Contains(x, y, z)
}
