package cam

import "math"

// CAM is a colour in the CAM16 appearance model.
type CAM struct {
	// Hue (h) in degrees, [0, 360).
	Hue float64
	// Chroma (C).
	Chroma float64
	// Colorfulness (M).
	Colorfulness float64
	// Saturation (s).
	Saturation float64
	// Brightness (Q).
	Brightness float64
	// Lightness (J).
	Lightness float64
}

// FromXYZ computes CAM16 attributes of a 100-based XYZ colour.
func FromXYZ(x, y, z float64, vw *View) CAM {
	l, m, s := xyzToLMS(x, y, z)
	lA := adapt(l, vw.RGBD[0], vw.FL)
	mA := adapt(m, vw.RGBD[1], vw.FL)
	sA := adapt(s, vw.RGBD[2], vw.FL)

	redVgreen := (11*lA - 12*mA + sA) / 11
	yellowVblue := (lA + mA - 2*sA) / 9
	greyNorm := (20*lA + 20*mA + 21*sA) / 20
	grey := (40*lA + 20*mA + sA) / 20

	hue := SanitizeDegrees(math.Atan2(yellowVblue, redVgreen) * 180 / math.Pi)
	ac := grey * vw.NBB

	j := 100 * math.Pow(ac/vw.AW, vw.C*vw.Z)
	q := (4 / vw.C) * math.Sqrt(j/100) * (vw.AW + 4) * vw.FLRoot

	huePrime := hue
	if hue < 20.14 {
		huePrime += 360
	}
	eHue := 0.25 * (math.Cos(huePrime*math.Pi/180+2) + 3.8)
	p1 := 50000.0 / 13 * eHue * vw.NC * vw.NCB
	t := p1 * math.Hypot(redVgreen, yellowVblue) / (greyNorm + 0.305)
	alpha := math.Pow(t, 0.9) * math.Pow(1.64-math.Pow(0.29, vw.N), 0.73)

	c := alpha * math.Sqrt(j/100)
	return CAM{
		Hue:          hue,
		Chroma:       c,
		Colorfulness: c * vw.FLRoot,
		Saturation:   50 * math.Sqrt(alpha*vw.C/(vw.AW+4)),
		Brightness:   q,
		Lightness:    j,
	}
}

// FromJCh builds a CAM from lightness, chroma and hue.
func FromJCh(j, c, h float64, vw *View) CAM {
	cm := CAM{Lightness: j, Chroma: c, Hue: SanitizeDegrees(h)}
	cm.Brightness = (4 / vw.C) * math.Sqrt(j/100) * (vw.AW + 4) * vw.FLRoot
	cm.Colorfulness = c * vw.FLRoot
	if j > 0 {
		alpha := c / math.Sqrt(j/100)
		cm.Saturation = 50 * math.Sqrt(alpha*vw.C/(vw.AW+4))
	}
	return cm
}

// XYZ returns the 100-based XYZ coordinates of the colour.
func (cm CAM) XYZ(vw *View) (x, y, z float64) {
	alpha := 0.0
	if cm.Chroma != 0 && cm.Lightness > 0 {
		alpha = cm.Chroma / math.Sqrt(cm.Lightness/100)
	}
	t := math.Pow(alpha/math.Pow(1.64-math.Pow(0.29, vw.N), 0.73), 1/0.9)

	hRad := cm.Hue * math.Pi / 180
	eHue := 0.25 * (math.Cos(hRad+2) + 3.8)
	ac := vw.AW * math.Pow(math.Max(cm.Lightness, 0)/100, 1/vw.C/vw.Z)
	p1 := eHue * (50000.0 / 13) * vw.NC * vw.NCB
	p2 := ac / vw.NBB

	hSin, hCos := math.Sincos(hRad)
	gamma := 23 * (p2 + 0.305) * t / (23*p1 + 11*t*hCos + 108*t*hSin)
	a := gamma * hCos
	b := gamma * hSin

	rA := (460*p2 + 451*a + 288*b) / 1403
	gA := (460*p2 - 891*a - 261*b) / 1403
	bA := (460*p2 - 220*a - 6300*b) / 1403

	rF := unadapt(rA, vw.FL) / vw.RGBD[0]
	gF := unadapt(gA, vw.FL) / vw.RGBD[1]
	bF := unadapt(bA, vw.FL) / vw.RGBD[2]
	return lmsToXYZ(rF, gF, bF)
}

// adapt applies the chromatic and luminance adaptation to one cone response.
func adapt(v, d, fl float64) float64 {
	vd := v * d
	f := math.Pow(fl*math.Abs(vd)/100, 0.42)
	return sign(vd) * 400 * f / (f + 27.13)
}

// unadapt inverts the post-adaptation compression of adapt.
func unadapt(a, fl float64) float64 {
	base := math.Max(0, 27.13*math.Abs(a)/(400-math.Abs(a)))
	return sign(a) * (100 / fl) * math.Pow(base, 1/0.42)
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// SanitizeDegrees wraps degrees into [0, 360).
func SanitizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// UCS is a CAM16-UCS coordinate (J', a', b').
type UCS struct {
	J, A, B float64
}

// UCS returns the CAM16-UCS coordinates of the colour.
func (cm CAM) UCS() UCS {
	j := 1.7 * cm.Lightness / (1 + 0.007*cm.Lightness)
	m := math.Log1p(0.0228*cm.Colorfulness) / 0.0228
	s, c := math.Sincos(cm.Hue * math.Pi / 180)
	return UCS{J: j, A: m * c, B: m * s}
}

// CAM converts CAM16-UCS coordinates back to appearance attributes.
func (u UCS) CAM(vw *View) CAM {
	m := math.Hypot(u.A, u.B)
	colorfulness := math.Expm1(m*0.0228) / 0.0228
	c := colorfulness / vw.FLRoot
	h := SanitizeDegrees(math.Atan2(u.B, u.A) * 180 / math.Pi)
	j := u.J / (1 - (u.J-100)*0.007)
	return FromJCh(j, c, h, vw)
}

// JMh is the polar CAM16 form using lightness, colorfulness and hue.
type JMh struct {
	J, M, H float64
}

// JMh returns the lightness, colorfulness and hue of the colour.
func (cm CAM) JMh() JMh {
	return JMh{J: cm.Lightness, M: cm.Colorfulness, H: cm.Hue}
}

// CAM converts JMh back to appearance attributes.
func (p JMh) CAM(vw *View) CAM {
	return FromJCh(p.J, p.M/vw.FLRoot, p.H, vw)
}
