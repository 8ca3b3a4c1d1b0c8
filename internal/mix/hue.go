package mix

import (
	"fmt"
	"math"
	"strings"
)

// HuePolicy selects which arc hue interpolation follows, as in CSS Color 4.
type HuePolicy string

// Hue arc policies.
const (
	HueShorter    HuePolicy = "shorter"
	HueLonger     HuePolicy = "longer"
	HueIncreasing HuePolicy = "increasing"
	HueDecreasing HuePolicy = "decreasing"
	HueSpecified  HuePolicy = "specified"
)

// ValidHuePolicies returns all supported hue policies.
func ValidHuePolicies() []HuePolicy {
	return []HuePolicy{HueShorter, HueLonger, HueIncreasing, HueDecreasing, HueSpecified}
}

// ParseHuePolicy parses a policy name. The empty string selects shorter.
func ParseHuePolicy(s string) (HuePolicy, error) {
	p := HuePolicy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return HueShorter, nil
	}
	for _, v := range ValidHuePolicies() {
		if p == v {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownHue, s, joinNames(ValidHuePolicies()))
}

// interpHue interpolates between two hues on a circle of the given period
// (360 for degrees, 1 for turns) and wraps the result into [0, period).
func interpHue(h1, h2, t, period float64, policy HuePolicy) float64 {
	half := period / 2
	switch policy {
	case HueSpecified:
		return wrapPeriod(lerp(h1, h2, t), period)
	case HueLonger:
		d := h2 - h1
		if d > 0 && d < half {
			h1 += period
		} else if d > -half && d <= 0 {
			h2 += period
		}
	case HueIncreasing:
		if h2 < h1 {
			h2 += period
		}
	case HueDecreasing:
		if h1 < h2 {
			h1 += period
		}
	default:
		d := wrapPeriod(h2-h1+half, period) - half
		return wrapPeriod(h1+d*t, period)
	}
	return wrapPeriod(lerp(h1, h2, t), period)
}

func wrapPeriod(v, period float64) float64 {
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	if v >= period {
		v = 0
	}
	return v
}

// resolveAchromatic gives an endpoint with no meaningful hue the hue of
// the other endpoint so that greys do not drag the interpolation through
// an arbitrary angle.
func resolveAchromatic(h1, h2 float64, grey1, grey2 bool) (float64, float64) {
	switch {
	case grey1 && !grey2:
		return h2, h2
	case grey2 && !grey1:
		return h1, h1
	}
	return h1, h2
}

func joinNames[T ~string](vs []T) string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
