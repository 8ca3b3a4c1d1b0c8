package mix

import (
	"fmt"
	"strings"
)

// Algorithm names a palette generation algorithm.
type Algorithm string

const (
	// AlgorithmSRGB lerps gamma-encoded sRGB channels.
	AlgorithmSRGB Algorithm = "srgb"

	// AlgorithmLinear lerps linear-light sRGB channels.
	AlgorithmLinear Algorithm = "linear"

	// AlgorithmOklab lerps Oklab coordinates.
	AlgorithmOklab Algorithm = "oklab"

	// AlgorithmOkHSV lerps the polar Oklab form with hue arc control.
	AlgorithmOkHSV Algorithm = "okhsv"

	// AlgorithmCAM16UCS lerps CAM16-UCS coordinates.
	AlgorithmCAM16UCS Algorithm = "cam16ucs"

	// AlgorithmCAM16JMh lerps CAM16 lightness, colorfulness and hue.
	AlgorithmCAM16JMh Algorithm = "cam16jmh"

	// AlgorithmHCT lerps hue, chroma and tone.
	AlgorithmHCT Algorithm = "hct"

	// AlgorithmKubelkaMunk mixes reconstructed reflectance spectra.
	AlgorithmKubelkaMunk Algorithm = "km_sub"

	// AlgorithmHCTTone sweeps the tone of a single seed colour.
	AlgorithmHCTTone Algorithm = "hct_tone"

	// AlgorithmMixHCT blends HCT with gamut-relative saturation.
	AlgorithmMixHCT Algorithm = "mix_hct"
)

// Step count limits.
const (
	MinSteps     = 2
	MinRampSteps = 3
	MaxSteps     = 512
)

// ValidAlgorithms returns all supported algorithms in display order.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmSRGB,
		AlgorithmLinear,
		AlgorithmOklab,
		AlgorithmOkHSV,
		AlgorithmCAM16UCS,
		AlgorithmCAM16JMh,
		AlgorithmHCT,
		AlgorithmKubelkaMunk,
		AlgorithmHCTTone,
		AlgorithmMixHCT,
	}
}

// AlgorithmNames returns the keys of ValidAlgorithms as strings.
func AlgorithmNames() []string {
	algs := ValidAlgorithms()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = string(a)
	}
	return names
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ParseAlgorithm parses an algorithm key, case-insensitively. The empty
// string selects srgb.
func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if alg == "" {
		return AlgorithmSRGB, nil
	}
	if !IsValidAlgorithm(alg) {
		return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownAlgorithm, s, joinNames(ValidAlgorithms()))
	}
	return alg, nil
}

// Model returns the colour model the algorithm interpolates in.
func (a Algorithm) Model() string {
	switch a {
	case AlgorithmSRGB:
		return "gamma sRGB"
	case AlgorithmLinear:
		return "linear-light sRGB"
	case AlgorithmOklab:
		return "oklab"
	case AlgorithmOkHSV:
		return "okhsv"
	case AlgorithmCAM16UCS:
		return "cam16 ucs"
	case AlgorithmCAM16JMh:
		return "cam16 jmh"
	case AlgorithmHCT, AlgorithmHCTTone, AlgorithmMixHCT:
		return "hct"
	case AlgorithmKubelkaMunk:
		return "kubelka-munk spectral"
	}
	return "unknown"
}

// Description returns a one-line summary of the algorithm.
func (a Algorithm) Description() string {
	switch a {
	case AlgorithmSRGB:
		return "straight lerp of gamma-encoded channels"
	case AlgorithmLinear:
		return "lerp in linear light, physically additive"
	case AlgorithmOklab:
		return "lerp of Oklab L, a, b"
	case AlgorithmOkHSV:
		return "polar Oklab with hue arc policy"
	case AlgorithmCAM16UCS:
		return "euclidean lerp in CAM16-UCS"
	case AlgorithmCAM16JMh:
		return "CAM16 lightness, colorfulness and hue"
	case AlgorithmHCT:
		return "hue, chroma and tone with gamut fit"
	case AlgorithmKubelkaMunk:
		return "subtractive pigment-like mixing of reflectance spectra"
	case AlgorithmHCTTone:
		return "single-seed tone ramp from 100 to 0"
	case AlgorithmMixHCT:
		return "HCT with gamut-relative saturation and grey hue freeze"
	}
	return ""
}

// SingleSeed reports whether the algorithm uses only the first endpoint.
func (a Algorithm) SingleSeed() bool {
	return a == AlgorithmHCTTone
}

// MinSteps returns the smallest palette the algorithm produces.
func (a Algorithm) MinSteps() int {
	if a.SingleSeed() {
		return MinRampSteps
	}
	return MinSteps
}

// ClampSteps clamps n into the algorithm's supported range.
func ClampSteps(a Algorithm, n int) int {
	return max(a.MinSteps(), min(n, MaxSteps))
}

func checkSteps(a Algorithm, n, minimum int) error {
	if n < minimum || n > MaxSteps {
		return fmt.Errorf("%w: %d not in [%d, %d] for %s", ErrStepCount, n, minimum, MaxSteps, a)
	}
	return nil
}
