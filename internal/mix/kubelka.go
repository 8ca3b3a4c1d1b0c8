package mix

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/tincture/internal/colour"
)

// Spectrum is a reflectance curve sampled every 10 nm from 380 to 750 nm.
type Spectrum [numSamples]float64

// Reflectance bounds. The floor keeps K/S finite.
const (
	minReflectance = 1e-6
	maxReflectance = 1.0
)

// spectralTables holds the D65-weighted observer, normalised so a perfect
// reflector has Y = 1, and the white balance that maps such a reflector to
// linear sRGB (1, 1, 1).
type spectralTables struct {
	weights [3][numSamples]float64
	balance [3]float64
}

var (
	tablesOnce sync.Once
	tables     spectralTables
)

func spectral() *spectralTables {
	tablesOnce.Do(func() {
		var sumY float64
		for i := range numSamples {
			sumY += cmf[i][1] * d65[i]
		}
		for i := range numSamples {
			for k := range 3 {
				tables.weights[k][i] = cmf[i][k] * d65[i] / sumY
			}
		}
		var white Spectrum
		for i := range white {
			white[i] = 1
		}
		r, g, b := colorful.XyzToLinearRgb(tables.xyz(&white))
		tables.balance = [3]float64{r, g, b}
	})
	return &tables
}

// xyz integrates s against the weights. It must not call spectral, which
// uses it while the tables are being built.
func (t *spectralTables) xyz(s *Spectrum) (x, y, z float64) {
	for i, r := range s {
		x += t.weights[0][i] * r
		y += t.weights[1][i] * r
		z += t.weights[2][i] * r
	}
	return x, y, z
}

// SpectrumFromLinear decomposes a linear-light colour into white, secondary
// and primary amounts and sums the matching basis curves.
func SpectrumFromLinear(c LinearRGB) Spectrum {
	r, g, b := clamp01(c.R), clamp01(c.G), clamp01(c.B)

	w := min(r, g, b)
	r, g, b = r-w, g-w, b-w

	cyan := min(g, b)
	magenta := min(r, b)
	yellow := min(r, g)
	red := max(0, min(r-b, r-g))
	green := max(0, min(g-b, g-r))
	blue := max(0, min(b-g, b-r))

	var s Spectrum
	for i := range s {
		v := w*basisWhite[i] +
			cyan*basisCyan[i] + magenta*basisMagenta[i] + yellow*basisYellow[i] +
			red*basisRed[i] + green*basisGreen[i] + blue*basisBlue[i]
		s[i] = min(maxReflectance, max(minReflectance, v))
	}
	return s
}

// XYZ integrates the spectrum under D65. Y is 1 for a perfect reflector.
func (s *Spectrum) XYZ() (x, y, z float64) {
	return spectral().xyz(s)
}

// Luminance is the CIE Y of the spectrum in [0,1].
func (s *Spectrum) Luminance() float64 {
	t := spectral()
	var y float64
	for i, r := range s {
		y += t.weights[1][i] * r
	}
	return y
}

// Linear converts the spectrum to white-balanced linear-light sRGB.
func (s *Spectrum) Linear() LinearRGB {
	t := spectral()
	r, g, b := colorful.XyzToLinearRgb(t.xyz(s))
	return LinearRGB{R: r / t.balance[0], G: g / t.balance[1], B: b / t.balance[2]}
}

// ksFromReflectance is the Kubelka–Munk absorption/scattering ratio.
func ksFromReflectance(r float64) float64 {
	return (1 - r) * (1 - r) / (2 * r)
}

// reflectanceFromKS inverts ksFromReflectance.
func reflectanceFromKS(ks float64) float64 {
	return 1 + ks - math.Sqrt(ks*ks+2*ks)
}

// KMMix mixes two colours like pigments. Each endpoint's concentration is
// (1-t)² or t² scaled by the luminance of its reflectance, so lighter
// pigments dominate. K/S is averaged per band and inverted back to
// reflectance before integrating to sRGB.
func KMMix(tr Transfer, a, b colour.RGB01, t float64) colour.RGB01 {
	return newKMPair(tr, a, b).at(tr, t)
}

// kmPair caches the endpoint spectra of a palette.
type kmPair struct {
	ksA, ksB Spectrum
	lumA     float64
	lumB     float64
}

func newKMPair(tr Transfer, a, b colour.RGB01) kmPair {
	sa := SpectrumFromLinear(Linearise(tr, a))
	sb := SpectrumFromLinear(Linearise(tr, b))
	p := kmPair{lumA: sa.Luminance(), lumB: sb.Luminance()}
	for i := range numSamples {
		p.ksA[i] = ksFromReflectance(sa[i])
		p.ksB[i] = ksFromReflectance(sb[i])
	}
	return p
}

func (p kmPair) at(tr Transfer, t float64) colour.RGB01 {
	wa := (1 - t) * (1 - t) * p.lumA
	wb := t * t * p.lumB
	total := wa + wb
	if total == 0 {
		total = 1
	}

	var mixed Spectrum
	for i := range mixed {
		ks := (p.ksA[i]*wa + p.ksB[i]*wb) / total
		mixed[i] = reflectanceFromKS(ks)
	}
	return Encode(tr, mixed.Linear())
}

func (e *Engine) kmStep(a, b colour.RGB01) stepFunc {
	p := newKMPair(e.transfer, a, b)
	return func(t float64) (colour.RGB01, error) {
		return p.at(e.transfer, t), nil
	}
}
