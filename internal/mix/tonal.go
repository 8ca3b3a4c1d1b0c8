package mix

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/tincture/internal/cam"
	"github.com/jmylchreest/tincture/internal/colour"
)

// Schedule distributes tones across a ramp.
type Schedule string

// Tone schedules.
const (
	// ScheduleLinear spaces tones uniformly.
	ScheduleLinear Schedule = "linear"
	// ScheduleEase is a cosine ease-in/out, denser near 100 and 0.
	ScheduleEase Schedule = "ease"
	// ScheduleShadow concentrates tones toward dark values.
	ScheduleShadow Schedule = "shadow"
	// ScheduleHighlight concentrates tones toward light values.
	ScheduleHighlight Schedule = "highlight"
)

const (
	// DefaultGamma is the exponent used by shadow and highlight.
	DefaultGamma = 1.35
	minGamma     = 1.001
	toneQuantum  = 1e-4
)

// ValidSchedules returns all supported schedules.
func ValidSchedules() []Schedule {
	return []Schedule{ScheduleLinear, ScheduleEase, ScheduleShadow, ScheduleHighlight}
}

// ParseSchedule parses a schedule name. The empty string selects ease.
func ParseSchedule(s string) (Schedule, error) {
	sched := Schedule(strings.ToLower(strings.TrimSpace(s)))
	if sched == "" {
		return ScheduleEase, nil
	}
	for _, v := range ValidSchedules() {
		if sched == v {
			return sched, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownSchedule, s, joinNames(ValidSchedules()))
}

// density maps u in [0,1] to the fraction of the way from tone 100 to 0.
func (s Schedule) density(u, gamma float64) (float64, error) {
	switch s {
	case ScheduleLinear:
		return u, nil
	case ScheduleEase:
		return 0.5 - 0.5*math.Cos(math.Pi*u), nil
	case ScheduleShadow:
		return math.Pow(u, gamma), nil
	case ScheduleHighlight:
		return 1 - math.Pow(1-u, gamma), nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSchedule, s)
}

func quantiseTone(t float64) float64 {
	return math.Max(0, math.Min(100, math.Round(t/toneQuantum)*toneQuantum))
}

// ToneSteps returns n tones from 100 down to 0. The endpoints are exactly
// 100 and 0; the schedule places the n-2 interior tones, each quantised to
// 1e-4. n must be at least 3.
func ToneSteps(n int, schedule Schedule, gamma float64) ([]float64, error) {
	if n < MinRampSteps {
		return nil, fmt.Errorf("%w: tonal ramp needs at least %d steps, got %d", ErrStepCount, MinRampSteps, n)
	}
	g := math.Max(minGamma, gamma)

	tones := make([]float64, n)
	tones[0] = 100
	for j := 1; j < n-1; j++ {
		v, err := schedule.density(float64(j)/float64(n-1), g)
		if err != nil {
			return nil, err
		}
		tones[j] = quantiseTone(100 * (1 - v))
	}
	tones[n-1] = 0
	return tones, nil
}

// ToneStepsAll is the variant where the schedule covers every slot, n >= 2.
// The first and last tones are still forced to 100 and 0.
func ToneStepsAll(n int, schedule Schedule, gamma float64) ([]float64, error) {
	if n < MinSteps {
		return nil, fmt.Errorf("%w: tonal ramp needs at least %d steps, got %d", ErrStepCount, MinSteps, n)
	}
	g := math.Max(minGamma, gamma)

	tones := make([]float64, n)
	for i := range tones {
		v, err := schedule.density(float64(i)/float64(n-1), g)
		if err != nil {
			return nil, err
		}
		tones[i] = quantiseTone(100 * (1 - v))
	}
	tones[0], tones[n-1] = 100, 0
	return tones, nil
}

// TonalRamp keeps the seed's hue and chroma and sweeps tone from 100 to 0,
// fitting each colour into the engine's gamut.
func (e *Engine) TonalRamp(seed colour.RGB01, n int, schedule Schedule, gamma float64) ([]colour.RGB01, error) {
	return e.Palette(Request{
		A:         seed,
		Steps:     n,
		Algorithm: AlgorithmHCTTone,
		Schedule:  schedule,
		Gamma:     gamma,
	})
}

func (e *Engine) tonalRamp(req Request) ([]colour.RGB01, error) {
	steps := ToneSteps
	if req.AllSlots {
		steps = ToneStepsAll
	}
	tones, err := steps(req.Steps, req.Schedule, req.Gamma)
	if err != nil {
		return nil, err
	}

	seed := e.hctOf(req.A)
	e.logger.Trace("tonal ramp seed", "hct", seed.String(), "schedule", req.Schedule)

	out := make([]colour.RGB01, len(tones))
	for i, tone := range tones {
		c, err := e.fit(cam.HCT{Hue: seed.Hue, Chroma: seed.Chroma, Tone: tone}, e.gamut)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
