package mix_test

import (
	"testing"

	"github.com/jmylchreest/tincture/internal/colour"
)

func mustHex(t *testing.T, s string) colour.RGB01 {
	t.Helper()
	c, err := colour.ParseHex(s)
	if err != nil {
		t.Fatalf("ParseHex(%q): %v", s, err)
	}
	return c
}

// channelDistance is the largest 8-bit channel difference between two hex
// colours.
func channelDistance(t *testing.T, a, b string) int {
	t.Helper()
	ca, cb := mustHex(t, a).RGB(), mustHex(t, b).RGB()
	d := 0
	for _, v := range [][2]uint8{{ca.R, cb.R}, {ca.G, cb.G}, {ca.B, cb.B}} {
		d = max(d, abs(int(v[0])-int(v[1])))
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func hexes(cs []colour.RGB01) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Hex()
	}
	return out
}

func assertNear(t *testing.T, got, want []string, tol int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d colours %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if d := channelDistance(t, got[i], want[i]); d > tol {
			t.Errorf("colour %d = %s, want %s (off by %d)", i, got[i], want[i], d)
		}
	}
}
