package mix_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/mix"
)

func kmHex(t *testing.T, a, b string, ts ...float64) []string {
	t.Helper()
	ca, cb := mustHex(t, a), mustHex(t, b)
	out := make([]string, len(ts))
	for i, v := range ts {
		out[i] = mix.KMMix(mix.ExactTransfer{}, ca, cb, v).Hex()
	}
	return out
}

func TestKMKnownMixes(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		ts   []float64
		want []string
	}{
		{
			name: "red into white",
			a:    "#ff0000",
			b:    "#ffffff",
			ts:   []float64{0, 0.25, 0.5, 0.75, 1},
			want: []string{"#ff0000", "#ff1716", "#ff3c48", "#ff7593", "#ffffff"},
		},
		{
			name: "blue and yellow make green",
			a:    "#0000ff",
			b:    "#ffff00",
			ts:   []float64{0.5},
			want: []string{"#4b7d5a"},
		},
		{
			name: "black and white",
			a:    "#000000",
			b:    "#ffffff",
			ts:   []float64{0.5},
			want: []string{"#a6a6a6"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, kmHex(t, tt.a, tt.b, tt.ts...), tt.want, 1)
		})
	}
}

func TestKMIdentity(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff", "#7f7f7f", "#3a6b9c", "#f0e68c"} {
		t.Run(hex, func(t *testing.T) {
			for _, v := range []float64{0, 0.3, 0.5, 1} {
				if got := kmHex(t, hex, hex, v)[0]; got != hex {
					t.Errorf("KMMix(%s, %s, %.1f) = %s", hex, hex, v, got)
				}
			}
		})
	}
}

func TestKMEndpoints(t *testing.T) {
	for _, pair := range endpointPairs {
		t.Run(pair[0]+pair[1], func(t *testing.T) {
			got := kmHex(t, pair[0], pair[1], 0, 1)
			if diff := cmp.Diff([]string{pair[0], pair[1]}, got); diff != "" {
				t.Errorf("endpoints mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKMSymmetry(t *testing.T) {
	a, b := mustHex(t, "#d2691e"), mustHex(t, "#4682b4")
	for _, v := range []float64{0.1, 0.35, 0.5, 0.8} {
		ab := mix.KMMix(mix.ExactTransfer{}, a, b, v)
		ba := mix.KMMix(mix.ExactTransfer{}, b, a, 1-v)
		if math.Abs(ab.R-ba.R) > 1e-9 || math.Abs(ab.G-ba.G) > 1e-9 || math.Abs(ab.B-ba.B) > 1e-9 {
			t.Errorf("t=%.2f: %+v != %+v", v, ab, ba)
		}
	}
}

func TestKMLuminanceMonotone(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		steps int
	}{
		{"black to white", "#000000", "#ffffff", 11},
		{"red to white", "#ff0000", "#ffffff", 11},
		{"red to white fine", "#ff0000", "#ffffff", 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := mustHex(t, tt.a), mustHex(t, tt.b)
			prev := -1.0
			for i := range tt.steps {
				c := mix.KMMix(mix.ExactTransfer{}, a, b, float64(i)/float64(tt.steps-1))
				if !c.InRange() {
					t.Fatalf("step %d = %+v out of range", i, c)
				}
				y := c.Luminance()
				if y < prev-1e-12 {
					t.Errorf("step %d (%s) luminance %.6f below previous %.6f", i, c.Hex(), y, prev)
				}
				prev = y
			}
		})
	}
}

func TestSpectrumRoundTrip(t *testing.T) {
	for _, hex := range []string{"#ffffff", "#ff0000", "#00ffff", "#ff00ff", "#ffff00", "#123456", "#808080"} {
		t.Run(hex, func(t *testing.T) {
			c := mustHex(t, hex)
			s := mix.SpectrumFromLinear(mix.Linearise(mix.ExactTransfer{}, c))
			for i, r := range s {
				if r < 1e-6 || r > 1 {
					t.Fatalf("sample %d = %g outside reflectance bounds", i, r)
				}
			}
			got := mix.Encode(mix.ExactTransfer{}, s.Linear()).Hex()
			if d := channelDistance(t, got, hex); d > 1 {
				t.Errorf("round trip = %s, want %s", got, hex)
			}
		})
	}
}

func TestKMPaletteUsesEngineTransfer(t *testing.T) {
	e := mix.New()
	out, err := e.Palette(mix.Request{
		A:         colour.RGB01{R: 0, G: 0, B: 1},
		B:         colour.RGB01{R: 1, G: 1, B: 0},
		Steps:     3,
		Algorithm: mix.AlgorithmKubelkaMunk,
	})
	if err != nil {
		t.Fatalf("Palette() error = %v", err)
	}
	assertNear(t, hexes(out), []string{"#0000ff", "#4b7d5a", "#ffff00"}, 1)
}
