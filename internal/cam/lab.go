package cam

import "github.com/lucasb-eyer/go-colorful"

// YFromLstar converts CIE L* (0-100) to 100-based relative luminance Y.
func YFromLstar(lstar float64) float64 {
	_, y, _ := colorful.LabToXyz(lstar/100, 0, 0)
	return y * 100
}

// LstarFromY converts 100-based relative luminance Y to CIE L* (0-100).
// Only Y participates in L*, so the chromatic coordinates are set to the
// white point.
func LstarFromY(y float64) float64 {
	yr := y / 100
	l, _, _ := colorful.XyzToLab(colorful.D65[0]*yr, yr, colorful.D65[2]*yr)
	return l * 100
}
