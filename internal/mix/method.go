package mix

import (
	"fmt"
	"strings"
)

// Method is the interpolation method between colour stops.
type Method string

// Interpolation methods.
const (
	MethodLinear     Method = "linear"
	MethodCSSLinear  Method = "css-linear"
	MethodContinuous Method = "continuous"
	MethodBSpline    Method = "bspline"
	MethodNatural    Method = "natural"
	MethodMonotone   Method = "monotone"
	MethodCatmullRom Method = "catrom"
)

// ValidMethods returns all supported interpolation methods.
func ValidMethods() []Method {
	return []Method{
		MethodLinear, MethodCSSLinear, MethodContinuous, MethodBSpline,
		MethodNatural, MethodMonotone, MethodCatmullRom,
	}
}

// ParseMethod parses a method name. The empty string selects linear.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return MethodLinear, nil
	}
	for _, v := range ValidMethods() {
		if m == v {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownMethod, s, joinNames(ValidMethods()))
}

// progress maps the palette position t to the blend weight between the two
// stops. Palettes only ever have two stops, and every supported spline
// through two points with natural or clamped ends is the straight segment
// between them, so all methods share linear progress. Opaque colours make
// css-linear premultiplication a no-op.
func (m Method) progress(t float64) float64 {
	return t
}
