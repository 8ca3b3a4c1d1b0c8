// Package cam implements the CAM16 colour appearance model, its uniform
// colour space (CAM16-UCS), the polar JMh form and HCT (hue, chroma, tone),
// together with target gamuts and HCT gamut fitting.
//
// All XYZ values in this package are 100-based (Y of the reference white is
// 100).
package cam

import (
	"math"
	"sync"
)

// View holds CAM16 viewing conditions and the quantities derived from them.
// Construct with NewView; the derived fields are read-only.
type View struct {
	// WhitePoint is the XYZ of the adopted white.
	WhitePoint [3]float64
	// AdaptingLuminance is La in cd/m².
	AdaptingLuminance float64
	// BackgroundLstar is the L* of the background.
	BackgroundLstar float64
	// Surround is 0 (dark) to 2 (average).
	Surround float64
	// Discounting assumes full adaptation to the illuminant.
	Discounting bool

	N      float64
	AW     float64
	NBB    float64
	NCB    float64
	C      float64
	NC     float64
	RGBD   [3]float64
	FL     float64
	FLRoot float64
	Z      float64
}

// NewView derives a View from the given viewing conditions.
func NewView(whitePoint [3]float64, adaptingLuminance, backgroundLstar, surround float64, discounting bool) *View {
	vw := &View{
		WhitePoint:        whitePoint,
		AdaptingLuminance: adaptingLuminance,
		BackgroundLstar:   backgroundLstar,
		Surround:          surround,
		Discounting:       discounting,
	}
	if vw.AdaptingLuminance <= 0 {
		vw.AdaptingLuminance = 200 / math.Pi * YFromLstar(50) / 100
	}
	bgL := math.Max(0.1, vw.BackgroundLstar)

	rW, gW, bW := xyzToLMS(whitePoint[0], whitePoint[1], whitePoint[2])

	f := 0.8 + vw.Surround/10
	if f >= 0.9 {
		vw.C = lerp(0.59, 0.69, (f-0.9)*10)
	} else {
		vw.C = lerp(0.525, 0.59, (f-0.8)*10)
	}
	vw.NC = f

	la := vw.AdaptingLuminance
	d := 1.0
	if !discounting {
		d = clamp(f*(1-(1/3.6)*math.Exp((-la-42)/92)), 0, 1)
	}
	vw.RGBD = [3]float64{
		d*(100/rW) + 1 - d,
		d*(100/gW) + 1 - d,
		d*(100/bW) + 1 - d,
	}

	k := 1 / (5*la + 1)
	k4 := k * k * k * k
	k4F := 1 - k4
	vw.FL = k4*la + 0.1*k4F*k4F*math.Cbrt(5*la)
	vw.FLRoot = math.Pow(vw.FL, 0.25)

	vw.N = YFromLstar(bgL) / whitePoint[1]
	vw.Z = 1.48 + math.Sqrt(vw.N)
	vw.NBB = 0.725 / math.Pow(vw.N, 0.2)
	vw.NCB = vw.NBB

	var rgbA [3]float64
	for i, w := range [3]float64{rW, gW, bW} {
		fa := math.Pow(vw.FL*vw.RGBD[i]*w/100, 0.42)
		rgbA[i] = 400 * fa / (fa + 27.13)
	}
	vw.AW = (2*rgbA[0] + rgbA[1] + 0.05*rgbA[2]) * vw.NBB
	return vw
}

// D65 is the 100-based XYZ of the sRGB reference white.
var D65 = [3]float64{95.047, 100.0, 108.883}

var (
	stdViewOnce sync.Once
	stdView     *View
)

// StdView returns the default sRGB viewing conditions: D65 white, adapting
// luminance of 200/π·Y(L*=50), mid-grey background and average surround.
// The value is shared and must not be modified.
func StdView() *View {
	stdViewOnce.Do(func() {
		stdView = NewView(D65, 0, 50, 2, false)
	})
	return stdView
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
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

// xyzToLMS applies the CAT16 cone transform.
func xyzToLMS(x, y, z float64) (l, m, s float64) {
	l = 0.401288*x + 0.650173*y - 0.051461*z
	m = -0.250268*x + 1.204414*y + 0.045854*z
	s = -0.002079*x + 0.048952*y + 0.953127*z
	return
}

// lmsToXYZ is the inverse of xyzToLMS.
func lmsToXYZ(l, m, s float64) (x, y, z float64) {
	x = 1.86206786*l - 1.01125463*m + 0.14918677*s
	y = 0.38752654*l + 0.62144744*m - 0.00897398*s
	z = -0.01584150*l - 0.03412294*m + 1.04996444*s
	return
}
