// Package colour provides the colour value types shared by the mixing engine
// and its front ends: 8-bit and unit-range sRGB, hex canonicalisation and
// palette formatting.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a 3 or 6 digit hex colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGB01 converts the 8-bit colour to unit range.
func (rgb RGB) RGB01() RGB01 {
	return RGB01{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
}

// RGB01 is a gamma-encoded sRGB colour with nominal channel range [0,1].
// Values may stray outside the range during conversion; they are clamped
// only when quantised to 8 bits.
type RGB01 struct {
	R, G, B float64
}

// Clamped returns the colour with every channel clamped to [0,1].
func (c RGB01) Clamped() RGB01 {
	return RGB01{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// InRange reports whether every channel already lies in [0,1].
func (c RGB01) InRange() bool {
	return c.R >= 0 && c.R <= 1 && c.G >= 0 && c.G <= 1 && c.B >= 0 && c.B <= 1
}

// RGB quantises to 8 bits: clamp, then round half away from zero.
func (c RGB01) RGB() RGB {
	return RGB{R: quantise(c.R), G: quantise(c.G), B: quantise(c.B)}
}

// Hex returns the lowercase "#rrggbb" form of the quantised colour.
func (c RGB01) Hex() string {
	return c.RGB().Hex()
}

// RGBA implements image/color.Color.
func (c RGB01) RGBA() (r, g, b, a uint32) {
	q := c.RGB()
	r = uint32(q.R) * 0x101
	g = uint32(q.G) * 0x101
	b = uint32(q.B) * 0x101
	return r, g, b, 0xffff
}

// Colorful converts to a go-colorful value.
func (c RGB01) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// FromColorful converts a go-colorful value without clamping.
func FromColorful(c colorful.Color) RGB01 {
	return RGB01{R: c.R, G: c.G, B: c.B}
}

// Luminance returns the WCAG relative luminance of the clamped colour.
func (c RGB01) Luminance() float64 {
	r, g, b := c.Clamped().Colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func quantise(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CanonicalHex normalises s to "#rrggbb". Surrounding whitespace and the
// leading '#' are optional; 3-digit shorthand is expanded.
func CanonicalHex(s string) (string, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) == 3 && isHexDigits(raw) {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	if len(raw) != 6 || !isHexDigits(raw) {
		return "", fmt.Errorf("%w: %q must be 3 or 6 hex digits", ErrInvalidHex, s)
	}
	return "#" + strings.ToLower(raw), nil
}

// ParseHex canonicalises s and decodes it.
func ParseHex(s string) (RGB01, error) {
	canon, err := CanonicalHex(s)
	if err != nil {
		return RGB01{}, err
	}
	c, err := colorful.Hex(canon)
	if err != nil {
		return RGB01{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return FromColorful(c), nil
}

// MustParseHex is ParseHex for constants known to be valid.
func MustParseHex(s string) RGB01 {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
