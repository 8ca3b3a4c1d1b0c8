package mix

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tincture/internal/cache"
	"github.com/jmylchreest/tincture/internal/cam"
	"github.com/jmylchreest/tincture/internal/colour"
)

// Engine generates palettes. An Engine is safe for concurrent use; its only
// mutable state is the chroma cache, which must itself be concurrency-safe.
type Engine struct {
	transfer Transfer
	gamut    cam.Gamut
	view     *cam.View
	cache    cache.ChromaCache
	hctMix   HCTMixOptions
	logger   hclog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCache sets the maximum-chroma cache.
func WithCache(c cache.ChromaCache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithGamut sets the output gamut of mix_hct and hct_tone.
func WithGamut(g cam.Gamut) Option {
	return func(e *Engine) {
		e.gamut = g
	}
}

// WithFastTransfer switches the sRGB transfer curve to lookup tables.
func WithFastTransfer(fast bool) Option {
	return func(e *Engine) {
		if fast {
			e.transfer = TableTransfer{}
		} else {
			e.transfer = ExactTransfer{}
		}
	}
}

// WithLogger sets the logger used for debug and trace output.
func WithLogger(l hclog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHCTMix sets the mix_hct tuning options. Zero-value options take the
// defaults; start from DefaultHCTMixOptions to change individual fields.
func WithHCTMix(o HCTMixOptions) Option {
	return func(e *Engine) {
		e.hctMix = o.withDefaults()
	}
}

// WithView sets the CAM16 viewing conditions.
func WithView(vw *cam.View) Option {
	return func(e *Engine) {
		if vw != nil {
			e.view = vw
		}
	}
}

// New creates an Engine. Without options it uses the exact transfer curve,
// the sRGB gamut, standard viewing conditions, a default-sized LRU chroma
// cache and a null logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		transfer: ExactTransfer{},
		gamut:    cam.SRGB,
		view:     cam.StdView(),
		hctMix:   DefaultHCTMixOptions(),
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = cache.NewLRU(cache.DefaultCapacity)
	}
	return e
}

// Gamut returns the engine's output gamut for HCT policies.
func (e *Engine) Gamut() cam.Gamut {
	return e.gamut
}

// HCTMix returns the mix_hct tuning in effect.
func (e *Engine) HCTMix() HCTMixOptions {
	return e.hctMix
}

// Request describes one palette.
type Request struct {
	// A and B are the endpoints. Single-seed algorithms use only A.
	A, B colour.RGB01
	// Steps is the palette length.
	Steps     int
	Algorithm Algorithm
	// Method and Hue apply to the space-interpolating algorithms.
	Method Method
	Hue    HuePolicy
	// Schedule and Gamma apply to hct_tone.
	Schedule Schedule
	Gamma    float64
	// AllSlots selects the tonal ramp variant where the schedule covers
	// every slot rather than only the interior.
	AllSlots bool
}

func (r Request) normalised() (Request, error) {
	var err error
	if r.Algorithm == "" {
		r.Algorithm = AlgorithmSRGB
	}
	if !IsValidAlgorithm(r.Algorithm) {
		return r, fmt.Errorf("%w %q", ErrUnknownAlgorithm, r.Algorithm)
	}
	if r.Method, err = ParseMethod(string(r.Method)); err != nil {
		return r, err
	}
	if r.Hue, err = ParseHuePolicy(string(r.Hue)); err != nil {
		return r, err
	}
	if r.Algorithm == AlgorithmHCTTone {
		if r.Schedule, err = ParseSchedule(string(r.Schedule)); err != nil {
			return r, err
		}
		if math.IsNaN(r.Gamma) || math.IsInf(r.Gamma, 0) {
			return r, fmt.Errorf("%w, got %v", ErrGamma, r.Gamma)
		}
		if r.Gamma == 0 {
			r.Gamma = DefaultGamma
		}
	}
	minimum := r.Algorithm.MinSteps()
	if r.AllSlots {
		minimum = MinSteps
	}
	return r, checkSteps(r.Algorithm, r.Steps, minimum)
}

// Palette generates req.Steps colours. The first and last colours equal the
// endpoints after 8-bit rounding for every two-colour algorithm.
func (e *Engine) Palette(req Request) ([]colour.RGB01, error) {
	req, err := req.normalised()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("generating palette", "algorithm", req.Algorithm, "steps", req.Steps)

	switch req.Algorithm {
	case AlgorithmHCTTone:
		return e.tonalRamp(req)
	case AlgorithmMixHCT:
		return e.mixHCT(req.A, req.B, req.Steps)
	}

	step, err := e.stepper(req)
	if err != nil {
		return nil, err
	}
	out := make([]colour.RGB01, req.Steps)
	for i := range out {
		t := float64(i) / float64(req.Steps-1)
		if out[i], err = step(req.Method.progress(t)); err != nil {
			return nil, err
		}
	}
	// Grey endpoints borrow the other hue, so pin both ends.
	out[0], out[len(out)-1] = req.A.Clamped(), req.B.Clamped()
	return out, nil
}

// Hex generates a palette and formats it as lowercase "#rrggbb" strings.
func (e *Engine) Hex(req Request) ([]string, error) {
	colours, err := e.Palette(req)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(colours))
	for i, c := range colours {
		out[i] = c.Hex()
	}
	return out, nil
}

// Mix computes a single blend of req.A and req.B at position t in [0,1].
// Steps is ignored. Palette-level algorithms (hct_tone, mix_hct) are not
// supported.
func (e *Engine) Mix(req Request, t float64) (colour.RGB01, error) {
	if req.Algorithm == AlgorithmHCTTone || req.Algorithm == AlgorithmMixHCT {
		return colour.RGB01{}, fmt.Errorf("%w: %s has no single-step form", ErrUnknownAlgorithm, req.Algorithm)
	}
	req.Steps = MinSteps
	req, err := req.normalised()
	if err != nil {
		return colour.RGB01{}, err
	}
	step, err := e.stepper(req)
	if err != nil {
		return colour.RGB01{}, err
	}
	return step(req.Method.progress(clamp01(t)))
}

// stepFunc produces the colour at position t of a two-colour blend.
type stepFunc func(t float64) (colour.RGB01, error)

func (e *Engine) stepper(req Request) (stepFunc, error) {
	switch req.Algorithm {
	case AlgorithmSRGB:
		return e.srgbStep(req.A, req.B), nil
	case AlgorithmLinear:
		return e.linearStep(req.A, req.B), nil
	case AlgorithmOklab:
		return e.oklabStep(req.A, req.B), nil
	case AlgorithmOkHSV:
		return e.okhsvStep(req.A, req.B, req.Hue), nil
	case AlgorithmCAM16UCS:
		return e.ucsStep(req.A, req.B), nil
	case AlgorithmCAM16JMh:
		return e.jmhStep(req.A, req.B, req.Hue), nil
	case AlgorithmHCT:
		return e.hctStep(req.A, req.B, req.Hue), nil
	case AlgorithmKubelkaMunk:
		return e.kmStep(req.A, req.B), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAlgorithm, req.Algorithm)
}
