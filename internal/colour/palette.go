package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Palette is an ordered sequence of interpolated colours.
type Palette struct {
	Colours   []RGB01
	Algorithm string
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(algorithm string, colours []RGB01) *Palette {
	return &Palette{
		Colours:   colours,
		Algorithm: algorithm,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// ToHex converts the palette colours to lowercase hex strings.
func (p *Palette) ToHex() []string {
	out := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		out[i] = c.Hex()
	}
	return out
}

// ToRGBSlice quantises the palette colours to 8 bits.
func (p *Palette) ToRGBSlice() []RGB {
	out := make([]RGB, len(p.Colours))
	for i, c := range p.Colours {
		out[i] = c.RGB()
	}
	return out
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex string `json:"hex"`
	RGB RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Algorithm string       `json:"algorithm,omitempty"`
	Count     int          `json:"count"`
	Colours   []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		rgb := c.RGB()
		colours[i] = ColourJSON{Hex: rgb.Hex(), RGB: rgb}
	}

	return json.MarshalIndent(PaletteJSON{
		Algorithm: p.Algorithm,
		Count:     len(p.Colours),
		Colours:   colours,
	}, "", "  ")
}

// String returns a human-readable listing of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette (%s) with %d colours:\n", p.Algorithm, len(p.Colours))
	for i, c := range p.Colours {
		rgb := c.RGB()
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i+1, rgb.Hex(), rgb.String())
	}
	return sb.String()
}

// Get returns the colour at the specified index.
func (p *Palette) Get(index int) (RGB01, error) {
	if index < 0 || index >= len(p.Colours) {
		return RGB01{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}
