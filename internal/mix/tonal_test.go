package mix_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jmylchreest/tincture/internal/cam"
	"github.com/jmylchreest/tincture/internal/mix"
)

func TestToneSteps(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		schedule mix.Schedule
		gamma    float64
		all      bool
		want     []float64
	}{
		{"linear five", 5, mix.ScheduleLinear, 0, false, []float64{100, 75, 50, 25, 0}},
		{"ease three", 3, mix.ScheduleEase, 0, false, []float64{100, 50, 0}},
		{"ease five", 5, mix.ScheduleEase, 0, false, []float64{100, 85.3553, 50, 14.6447, 0}},
		{"shadow squared", 3, mix.ScheduleShadow, 2, false, []float64{100, 75, 0}},
		{"highlight squared", 3, mix.ScheduleHighlight, 2, false, []float64{100, 25, 0}},
		{"all slots two", 2, mix.ScheduleLinear, 0, true, []float64{100, 0}},
		{"all slots four", 4, mix.ScheduleLinear, 0, true, []float64{100, 66.6667, 33.3333, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := mix.ToneSteps
			if tt.all {
				steps = mix.ToneStepsAll
			}
			got, err := steps(tt.n, tt.schedule, tt.gamma)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("tones mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToneStepsGammaFloor(t *testing.T) {
	low, err := mix.ToneSteps(9, mix.ScheduleShadow, 0.2)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	floor, err := mix.ToneSteps(9, mix.ScheduleShadow, 1.001)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if diff := cmp.Diff(floor, low); diff != "" {
		t.Errorf("gamma below the floor changed the ramp (-want +got):\n%s", diff)
	}
	for i := 1; i < len(low); i++ {
		if low[i] >= low[i-1] {
			t.Errorf("tone %d = %v not below %v", i, low[i], low[i-1])
		}
	}
}

func TestToneStepsErrors(t *testing.T) {
	if _, err := mix.ToneSteps(2, mix.ScheduleEase, 0); !errors.Is(err, mix.ErrStepCount) {
		t.Errorf("ToneSteps(2) error = %v, want ErrStepCount", err)
	}
	if _, err := mix.ToneStepsAll(1, mix.ScheduleEase, 0); !errors.Is(err, mix.ErrStepCount) {
		t.Errorf("ToneStepsAll(1) error = %v, want ErrStepCount", err)
	}
	if _, err := mix.ToneSteps(5, "zigzag", 0); !errors.Is(err, mix.ErrUnknownSchedule) {
		t.Errorf("ToneSteps(zigzag) error = %v, want ErrUnknownSchedule", err)
	}
}

func TestTonalRamp(t *testing.T) {
	e := mix.New()
	seed := mustHex(t, "#3366cc")
	out, err := e.TonalRamp(seed, 7, mix.ScheduleLinear, 0)
	if err != nil {
		t.Fatalf("TonalRamp() error = %v", err)
	}
	if out[0].Hex() != "#ffffff" || out[6].Hex() != "#000000" {
		t.Errorf("ends = %s, %s, want #ffffff, #000000", out[0].Hex(), out[6].Hex())
	}

	tones, _ := mix.ToneSteps(7, mix.ScheduleLinear, 0)
	seedHCT := cam.HCTFromRGB(cam.SRGB, seed.R, seed.G, seed.B, cam.StdView())
	for i := 1; i < 6; i++ {
		got := cam.HCTFromRGB(cam.SRGB, out[i].R, out[i].G, out[i].B, cam.StdView())
		if d := got.Tone - tones[i]; d > 1 || d < -1 {
			t.Errorf("step %d tone = %.2f, want %.2f", i, got.Tone, tones[i])
		}
		if got.Chroma > seedHCT.Chroma+1.5 {
			t.Errorf("step %d chroma %.2f exceeds seed %.2f", i, got.Chroma, seedHCT.Chroma)
		}
	}
}

func TestTonalRampDefaults(t *testing.T) {
	e := mix.New()
	got, err := e.Hex(mix.Request{A: mustHex(t, "#3366cc"), Steps: 5, Algorithm: mix.AlgorithmHCTTone})
	if err != nil {
		t.Fatalf("Hex() error = %v", err)
	}
	explicit, err := e.Hex(mix.Request{
		A:         mustHex(t, "#3366cc"),
		Steps:     5,
		Algorithm: mix.AlgorithmHCTTone,
		Schedule:  mix.ScheduleEase,
		Gamma:     mix.DefaultGamma,
	})
	if err != nil {
		t.Fatalf("Hex() error = %v", err)
	}
	if diff := cmp.Diff(explicit, got); diff != "" {
		t.Errorf("defaults differ from ease (-want +got):\n%s", diff)
	}
}
