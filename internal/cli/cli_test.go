package cli_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/tincture/internal/cli"
	"github.com/jmylchreest/tincture/internal/mix"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestMixCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "srgb hex",
			args: []string{"mix", "-a", "srgb", "-n", "3", "ff0000", "0000ff"},
			want: []string{"#ff0000", "#800080", "#0000ff"},
		},
		{
			name: "rgb format",
			args: []string{"mix", "-a", "srgb", "-n", "2", "-f", "rgb", "#000", "#fff"},
			want: []string{"rgb(0, 0, 0)", "rgb(255, 255, 255)"},
		},
		{
			name: "linear midpoint",
			args: []string{"mix", "--algorithm", "linear", "--steps", "3", "f0f", "000"},
			want: []string{"#ff00ff", "#bc00bc", "#000000"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, lines(out)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMixJSON(t *testing.T) {
	out, _, err := run(t, "mix", "-a", "km_sub", "-n", "5", "-f", "json", "ff0000", "ffffff")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var got struct {
		Algorithm string `json:"algorithm"`
		Count     int    `json:"count"`
		Colours   []struct {
			Hex string `json:"hex"`
		} `json:"colours"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if got.Algorithm != "km_sub" || got.Count != 5 {
		t.Errorf("algorithm = %q, count = %d", got.Algorithm, got.Count)
	}
	if got.Colours[0].Hex != "#ff0000" || got.Colours[4].Hex != "#ffffff" {
		t.Errorf("endpoints = %s, %s", got.Colours[0].Hex, got.Colours[4].Hex)
	}
}

func TestMixWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.txt")
	out, _, err := run(t, "mix", "-a", "srgb", "-n", "3", "-o", path, "ff0000", "0000ff")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := string(data); got != "#ff0000\n#800080\n#0000ff\n" {
		t.Errorf("file = %q", got)
	}
}

func TestMixErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad colour", []string{"mix", "xyz123", "000"}, "invalid hex"},
		{"unknown algorithm", []string{"mix", "-a", "nope", "f00", "00f"}, "unknown algorithm"},
		{"too few steps", []string{"mix", "-n", "1", "f00", "00f"}, "steps must be between"},
		{"bad format", []string{"mix", "-f", "yaml", "f00", "00f"}, "unsupported format"},
		{"bad gamut", []string{"mix", "--gamut", "rec2020", "f00", "00f"}, "gamut"},
		{"missing argument", []string{"mix", "f00"}, "accepts 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Execute() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRampCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"default schedule", []string{"ramp", "-n", "5", "3366cc"}, 5},
		{"shadow", []string{"ramp", "-n", "7", "--schedule", "shadow", "--gamma", "2", "3366cc"}, 7},
		{"all slots", []string{"ramp", "-n", "2", "--all", "3366cc"}, 2},
		{"display p3", []string{"ramp", "--gamut", "display-p3", "-n", "4", "3366cc"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			got := lines(out)
			if len(got) != tt.want {
				t.Fatalf("got %d colours, want %d: %v", len(got), tt.want, got)
			}
			if got[0] != "#ffffff" || got[len(got)-1] != "#000000" {
				t.Errorf("ramp ends = %s, %s", got[0], got[len(got)-1])
			}
		})
	}

	if _, _, err := run(t, "ramp", "-n", "2", "3366cc"); err == nil {
		t.Error("expected error for a 2-step ramp without --all")
	}
}

func TestRampGammaHelp(t *testing.T) {
	ramp, _, err := cli.NewRootCmd().Find([]string{"ramp"})
	if err != nil {
		t.Fatalf("Find(ramp) error = %v", err)
	}
	gamma := ramp.Flags().Lookup("gamma")
	if gamma == nil {
		t.Fatal("ramp has no --gamma flag")
	}
	if !strings.Contains(gamma.Usage, "shadow and highlight") || strings.Contains(gamma.Usage, "ease,") {
		t.Errorf("--gamma usage = %q", gamma.Usage)
	}

	// Gamma has no effect on the ease schedule.
	base, _, err := run(t, "ramp", "-n", "7", "--schedule", "ease", "3366cc")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	steep, _, err := run(t, "ramp", "-n", "7", "--schedule", "ease", "--gamma", "3", "3366cc")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(lines(base), lines(steep)); diff != "" {
		t.Errorf("gamma changed the ease ramp (-want +got):\n%s", diff)
	}
}

func TestAlgorithmsCommand(t *testing.T) {
	out, _, err := run(t, "algorithms")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	got := lines(out)
	if !strings.HasPrefix(got[0], "KEY") || !strings.Contains(got[0], "DESCRIPTION") {
		t.Errorf("header = %q", got[0])
	}
	for _, key := range mix.AlgorithmNames() {
		if !strings.Contains(out, key) {
			t.Errorf("table missing %q", key)
		}
	}

	out, _, err = run(t, "algorithms", "--keys")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff(mix.AlgorithmNames(), lines(out)); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func writeHalves(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := range 20 {
		for x := range 20 {
			c := color.NRGBA{R: 255, A: 255}
			if y >= 10 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "halves.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create PNG: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return path
}

func TestExtractCommand(t *testing.T) {
	path := writeHalves(t)

	out, _, err := run(t, "extract", "-c", "2", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	got := lines(out)
	if len(got) != 2 {
		t.Fatalf("got %v, want two colours", got)
	}
	seen := map[string]bool{got[0]: true, got[1]: true}
	if !seen["#ff0000"] || !seen["#0000ff"] {
		t.Errorf("extracted %v, want red and blue", got)
	}

	out, _, err = run(t, "extract", "-c", "2", "--mix", "srgb", "-n", "3", path)
	if err != nil {
		t.Fatalf("Execute() with --mix error = %v", err)
	}
	got = lines(out)
	if len(got) != 3 || got[1] != "#800080" {
		t.Errorf("mixed palette = %v", got)
	}

	if _, _, err := run(t, "extract", filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing image")
	}
}

func TestSwatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swatch.png")
	_, stderr, err := run(t, "swatch", "-a", "oklab", "-n", "4", "--width", "10", "--height", "20", "-o", path, "ff0000", "0000ff")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "Wrote 4 colours") {
		t.Errorf("stderr = %q", stderr)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 40x20", b)
	}

	if _, _, err := run(t, "swatch", "ff0000", "0000ff"); err == nil {
		t.Error("expected error without --output")
	}
}

func TestConfigPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "tincture.yaml")
	if err := os.WriteFile(cfgPath, []byte("algorithm: linear\nsteps: 5\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, _, err := run(t, "--config", cfgPath, "mix", "ff00ff", "000000")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := lines(out); len(got) != 5 {
		t.Errorf("config file steps ignored: %v", got)
	}

	t.Setenv("TINCTURE_STEPS", "3")
	out, _, err = run(t, "--config", cfgPath, "mix", "ff00ff", "000000")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"#ff00ff", "#bc00bc", "#000000"}, lines(out)); diff != "" {
		t.Errorf("env override mismatch (-want +got):\n%s", diff)
	}

	out, _, err = run(t, "--config", cfgPath, "mix", "-n", "2", "-a", "srgb", "ff00ff", "000000")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := lines(out); len(got) != 2 {
		t.Errorf("flag override ignored: %v", got)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "tincture") {
		t.Errorf("version output = %q", out)
	}
}
