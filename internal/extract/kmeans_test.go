package extract

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// quadrants builds an image with four solid blocks of unequal size.
func quadrants() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := range 40 {
		for x := range 40 {
			var c color.NRGBA
			switch {
			case y < 20:
				c = color.NRGBA{R: 255, A: 255} // half the image
			case x < 20:
				c = color.NRGBA{G: 255, A: 255}
			case x < 30:
				c = color.NRGBA{B: 255, A: 255}
			default:
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestExtract(t *testing.T) {
	clusters, err := NewExtractor().Extract(quadrants(), 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	got := make([]string, len(clusters))
	for i, c := range clusters {
		got[i] = c.Hex
	}
	want := []string{"#ff0000", "#00ff00", "#0000ff", "#ffffff"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("clusters mismatch (-want +got):\n%s", diff)
	}

	total := 0.0
	for _, c := range clusters {
		total += c.Weight
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("weights sum to %v, want 1", total)
	}
	if math.Abs(clusters[0].Weight-0.5) > 1e-9 {
		t.Errorf("red weight = %v, want 0.5", clusters[0].Weight)
	}
}

func TestExtractDeterministic(t *testing.T) {
	img := quadrants()
	first, err := NewExtractor().Extract(img, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for range 3 {
		again, err := NewExtractor().Extract(img, 3)
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Extract() not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestExtractFewerColours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	clusters, err := NewExtractor().Extract(img, 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(clusters) != 1 || clusters[0].Hex != "#0a141e" {
		t.Errorf("clusters = %+v, want a single #0a141e", clusters)
	}
}

func TestExtractErrors(t *testing.T) {
	transparent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	tests := []struct {
		name  string
		img   image.Image
		count int
	}{
		{"nil image", nil, 3},
		{"zero count", quadrants(), 0},
		{"too many", quadrants(), MaxColours + 1},
		{"fully transparent", transparent, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewExtractor().Extract(tt.img, tt.count); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMostDistinct(t *testing.T) {
	clusters, err := NewExtractor().Extract(quadrants(), 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	a, b, err := MostDistinct(clusters)
	if err != nil {
		t.Fatalf("MostDistinct() error = %v", err)
	}
	pair := map[string]bool{a.Hex: true, b.Hex: true}
	// Green and blue are the farthest pair in Oklab.
	if !pair["#00ff00"] || !pair["#0000ff"] {
		t.Errorf("MostDistinct() = %s, %s", a.Hex, b.Hex)
	}

	if _, _, err := MostDistinct(nil); err == nil {
		t.Error("expected error for no clusters")
	}
}
