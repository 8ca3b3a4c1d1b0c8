// Package config loads tincture settings from defaults, a YAML or JSON
// file and TINCTURE_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tincture/internal/cache"
	"github.com/jmylchreest/tincture/internal/cam"
	"github.com/jmylchreest/tincture/internal/mix"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TINCTURE_"

// Config holds engine, CLI and server settings.
type Config struct {
	Algorithm    string  `yaml:"algorithm" json:"algorithm"`
	Steps        int     `yaml:"steps" json:"steps"`
	Method       string  `yaml:"method" json:"method"`
	Hue          string  `yaml:"hue" json:"hue"`
	Schedule     string  `yaml:"schedule" json:"schedule"`
	Gamma        float64 `yaml:"gamma" json:"gamma"`
	Gamut        string  `yaml:"gamut" json:"gamut"`
	FastTransfer bool    `yaml:"fast_transfer" json:"fast_transfer"`
	CacheSize    int     `yaml:"cache_size" json:"cache_size"`
	Listen       string  `yaml:"listen" json:"listen"`
	LogLevel     string  `yaml:"log_level" json:"log_level"`
	HCT          HCT     `yaml:"hct" json:"hct"`
}

// HCT tunes the mix_hct policy. Zero fields keep the engine defaults,
// except SFreeze, where an explicit 0 disables the grey hue freeze.
type HCT struct {
	ClampTones []float64 `yaml:"clamp_tones" json:"clamp_tones"`
	KSat       float64   `yaml:"k_sat" json:"k_sat"`
	SFreeze    *float64  `yaml:"s_freeze" json:"s_freeze"`
	CmaxHi     float64   `yaml:"cmax_hi" json:"cmax_hi"`
	CmaxIters  int       `yaml:"cmax_iters" json:"cmax_iters"`
	QuantHue   float64   `yaml:"quant_hue" json:"quant_hue"`
	QuantTone  float64   `yaml:"quant_tone" json:"quant_tone"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a configuration file. The format follows the extension:
// .yaml/.yml or .json; anything else is tried as YAML, then JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
				return nil, fmt.Errorf("failed to parse config as YAML or JSON: %w", err)
			}
		}
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = string(mix.AlgorithmOklab)
	}
	if cfg.Steps == 0 {
		cfg.Steps = 11
	}
	if cfg.Method == "" {
		cfg.Method = string(mix.MethodLinear)
	}
	if cfg.Hue == "" {
		cfg.Hue = string(mix.HueShorter)
	}
	if cfg.Schedule == "" {
		cfg.Schedule = string(mix.ScheduleEase)
	}
	if cfg.Gamma == 0 {
		cfg.Gamma = mix.DefaultGamma
	}
	if cfg.Gamut == "" {
		cfg.Gamut = cam.SRGB.Name()
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = cache.DefaultCapacity
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// FromEnv overlays TINCTURE_* environment variables onto cfg.
func FromEnv(cfg *Config) error {
	return fromLookup(cfg, os.LookupEnv)
}

func fromLookup(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("ALGORITHM"); ok {
		cfg.Algorithm = v
	}
	if v, ok := get("STEPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSTEPS must be an integer: %w", EnvPrefix, err)
		}
		cfg.Steps = n
	}
	if v, ok := get("GAMUT"); ok {
		cfg.Gamut = v
	}
	if v, ok := get("LISTEN"); ok {
		cfg.Listen = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_SIZE must be an integer: %w", EnvPrefix, err)
		}
		cfg.CacheSize = n
	}
	if v, ok := get("FAST_TRANSFER"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sFAST_TRANSFER must be a boolean: %w", EnvPrefix, err)
		}
		cfg.FastTransfer = b
	}
	return nil
}

// Validate checks every named option against the engine's registries.
func (c *Config) Validate() error {
	alg, err := mix.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return err
	}
	if c.Steps < alg.MinSteps() || c.Steps > mix.MaxSteps {
		return fmt.Errorf("steps must be between %d and %d for %s, got %d", alg.MinSteps(), mix.MaxSteps, alg, c.Steps)
	}
	if _, err := mix.ParseMethod(c.Method); err != nil {
		return err
	}
	if _, err := mix.ParseHuePolicy(c.Hue); err != nil {
		return err
	}
	if _, err := mix.ParseSchedule(c.Schedule); err != nil {
		return err
	}
	if c.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive, got %g", c.Gamma)
	}
	if _, err := cam.ParseGamut(c.Gamut); err != nil {
		return err
	}
	if c.CacheSize < -1 {
		return fmt.Errorf("cache_size must be -1 (disabled) or positive, got %d", c.CacheSize)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if n := len(c.HCT.ClampTones); n != 0 && n != 2 {
		return fmt.Errorf("hct.clamp_tones needs two values, got %d", n)
	}
	if len(c.HCT.ClampTones) == 2 && c.HCT.ClampTones[0] > c.HCT.ClampTones[1] {
		return fmt.Errorf("hct.clamp_tones %v is not ascending", c.HCT.ClampTones)
	}
	if c.HCT.SFreeze != nil && *c.HCT.SFreeze < 0 {
		return fmt.Errorf("hct.s_freeze must not be negative, got %v", *c.HCT.SFreeze)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

// EngineOptions translates the configuration into engine options. A cache
// size of -1 disables maximum-chroma memoisation.
func (c *Config) EngineOptions(logger hclog.Logger) ([]mix.Option, error) {
	gamut, err := cam.ParseGamut(c.Gamut)
	if err != nil {
		return nil, err
	}

	var chroma cache.ChromaCache = cache.None{}
	if c.CacheSize >= 0 {
		chroma = cache.NewLRU(c.CacheSize)
	}

	hct := mix.DefaultHCTMixOptions()
	if len(c.HCT.ClampTones) == 2 {
		hct.ClampTones = [2]float64{c.HCT.ClampTones[0], c.HCT.ClampTones[1]}
	}
	if c.HCT.KSat > 0 {
		hct.KSat = c.HCT.KSat
	}
	if c.HCT.SFreeze != nil {
		hct.SFreeze = *c.HCT.SFreeze
	}
	if c.HCT.CmaxHi > 0 {
		hct.CmaxHi = c.HCT.CmaxHi
	}
	if c.HCT.CmaxIters > 0 {
		hct.CmaxIters = c.HCT.CmaxIters
	}
	if c.HCT.QuantHue > 0 {
		hct.QuantHue = c.HCT.QuantHue
	}
	if c.HCT.QuantTone > 0 {
		hct.QuantTone = c.HCT.QuantTone
	}

	return []mix.Option{
		mix.WithGamut(gamut),
		mix.WithFastTransfer(c.FastTransfer),
		mix.WithCache(chroma),
		mix.WithHCTMix(hct),
		mix.WithLogger(logger),
	}, nil
}
