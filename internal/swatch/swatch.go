// Package swatch renders palettes as PNG strips with hex labels.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/tincture/internal/colour"
)

// Options controls the swatch layout.
type Options struct {
	// CellWidth and Height are the size of each colour cell in pixels.
	CellWidth int
	Height    int
	// Labels draws the hex value at the foot of each cell.
	Labels bool
}

// DefaultOptions returns a labelled 80x120 cell layout.
func DefaultOptions() Options {
	return Options{CellWidth: 80, Height: 120, Labels: true}
}

// labelThreshold is the luminance above which labels are drawn in black.
const labelThreshold = 0.179

// Render draws one cell per colour, left to right.
func Render(colours []colour.RGB01, opts Options) (*image.RGBA, error) {
	if len(colours) == 0 {
		return nil, fmt.Errorf("no colours to render")
	}
	if opts.CellWidth <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid cell size %dx%d", opts.CellWidth, opts.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.CellWidth*len(colours), opts.Height))
	face := basicfont.Face7x13
	for i, c := range colours {
		cell := image.Rect(i*opts.CellWidth, 0, (i+1)*opts.CellWidth, opts.Height)
		draw.Draw(img, cell, image.NewUniform(c), image.Point{}, draw.Src)

		if !opts.Labels {
			continue
		}
		label := c.Hex()
		var ink color.Color = color.White
		if c.Luminance() > labelThreshold {
			ink = color.Black
		}
		d := &font.Drawer{Dst: img, Src: image.NewUniform(ink), Face: face}
		width := d.MeasureString(label).Ceil()
		if width > opts.CellWidth {
			continue
		}
		x := cell.Min.X + (opts.CellWidth-width)/2
		y := opts.Height - face.Descent - 4
		d.Dot = fixed.P(x, y)
		d.DrawString(label)
	}
	return img, nil
}

// Encode renders the palette and writes it as PNG.
func Encode(w io.Writer, colours []colour.RGB01, opts Options) error {
	img, err := Render(colours, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// WriteFile renders the palette to a PNG file.
func WriteFile(path string, colours []colour.RGB01, opts Options) error {
	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create swatch file: %w", err)
	}
	if err := Encode(f, colours, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write swatch file: %w", err)
	}
	return nil
}
