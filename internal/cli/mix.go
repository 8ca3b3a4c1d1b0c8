package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/mix"
)

// paletteFlags are the output flags shared by mix and ramp.
type paletteFlags struct {
	format  string
	output  string
	preview bool
}

func (p *paletteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.format, "format", "f", formatHexName, "output format (hex, rgb, json, table)")
	cmd.Flags().StringVarP(&p.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&p.preview, "preview", false, "show colour previews when writing to a terminal")
}

// emit formats and writes a generated palette.
func (p *paletteFlags) emit(cmd *cobra.Command, s *settings, alg mix.Algorithm, colours []colour.RGB01) error {
	palette := colour.NewPalette(string(alg), colours)
	showPreview := p.output == "" && wantPreview(p.preview, cmd.OutOrStdout())
	output, err := formatPalette(palette, p.format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if p.output != "" {
		s.logger.Debug("writing palette", "path", p.output)
	}
	return writeOutput(cmd.OutOrStdout(), p.output, output)
}

// engineFlags registers the flags that map onto configuration fields.
func engineFlags(cmd *cobra.Command) {
	cmd.Flags().String("gamut", "srgb", "output gamut for hct_tone and mix_hct (srgb, display-p3)")
	cmd.Flags().Bool("fast", false, "use lookup tables for the sRGB transfer curve")
}

func newMixCmd(g *globalOptions) *cobra.Command {
	out := &paletteFlags{}
	cmd := &cobra.Command{
		Use:   "mix <colour-a> <colour-b>",
		Short: "Interpolate a palette between two colours",
		Long: `Interpolate a palette between two colours.

Colours are hex values with or without a leading '#', in 3 or 6 digit form.
The first and last palette entries are the inputs themselves.

Examples:
  # 11 steps in Oklab (the default)
  tincture mix ff0000 0000ff

  # 7 steps with the HCT saturation-preserving policy
  tincture mix -a mix_hct -n 7 005457 fa7a76

  # Subtractive paint-like mixing, as JSON
  tincture mix -a km_sub -f json '#0000ff' '#ffff00'

  # Take the longer way round the hue circle
  tincture mix -a okhsv --hue longer ff0000 00ff00`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMix(cmd, g, out, args)
		},
	}

	cmd.Flags().StringP("algorithm", "a", "oklab", "interpolation algorithm (see 'tincture algorithms')")
	cmd.Flags().IntP("steps", "n", 11, "number of colours, including both endpoints")
	cmd.Flags().String("method", "linear", "interpolation method (linear, css-linear, continuous, bspline, natural, monotone, catrom)")
	cmd.Flags().String("hue", "shorter", "hue arc policy (shorter, longer, increasing, decreasing, specified)")
	engineFlags(cmd)
	out.register(cmd)
	return cmd
}

func runMix(cmd *cobra.Command, g *globalOptions, out *paletteFlags, args []string) error {
	s, err := g.loadSettings(cmd)
	if err != nil {
		return err
	}
	a, err := colour.ParseHex(args[0])
	if err != nil {
		return err
	}
	b, err := colour.ParseHex(args[1])
	if err != nil {
		return err
	}

	req, err := s.request()
	if err != nil {
		return err
	}
	req.A, req.B = a, b

	engine, err := s.engine()
	if err != nil {
		return err
	}
	s.logger.Debug("mixing", "a", a.Hex(), "b", b.Hex(), "algorithm", req.Algorithm, "steps", req.Steps)
	colours, err := engine.Palette(req)
	if err != nil {
		return fmt.Errorf("failed to generate palette: %w", err)
	}
	return out.emit(cmd, s, req.Algorithm, colours)
}

func newRampCmd(g *globalOptions) *cobra.Command {
	out := &paletteFlags{}
	var all bool
	cmd := &cobra.Command{
		Use:   "ramp <seed>",
		Short: "Generate a tonal ramp from a single colour",
		Long: `Generate a tonal ramp from a single seed colour.

The ramp keeps the seed's HCT hue and chroma and sweeps tone from 100
(white) to 0 (black). The schedule shapes the spacing of interior tones:
linear, ease, shadow (denser in the darks) or highlight (denser in the
lights). Gamma sets the strength of the shadow and highlight schedules.

Examples:
  # 9-step ramp with eased spacing
  tincture ramp -n 9 3366cc

  # Shadow-weighted ramp in Display P3
  tincture ramp --schedule shadow --gamma 2 --gamut display-p3 3366cc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRamp(cmd, g, out, all, args)
		},
	}

	cmd.Flags().IntP("steps", "n", 11, "number of tones, including white and black")
	cmd.Flags().String("schedule", string(mix.ScheduleEase), "tone schedule (linear, ease, shadow, highlight)")
	cmd.Flags().Float64("gamma", mix.DefaultGamma, "schedule strength for shadow and highlight (ease ignores it)")
	cmd.Flags().BoolVar(&all, "all", false, "apply the schedule to every slot, allowing 2-step ramps")
	engineFlags(cmd)
	out.register(cmd)
	return cmd
}

func runRamp(cmd *cobra.Command, g *globalOptions, out *paletteFlags, all bool, args []string) error {
	s, err := g.loadSettings(cmd)
	if err != nil {
		return err
	}
	seed, err := colour.ParseHex(args[0])
	if err != nil {
		return err
	}

	req, err := s.request()
	if err != nil {
		return err
	}
	req.A = seed
	req.Algorithm = mix.AlgorithmHCTTone
	req.AllSlots = all

	engine, err := s.engine()
	if err != nil {
		return err
	}
	s.logger.Debug("ramping", "seed", seed.Hex(), "steps", req.Steps, "schedule", req.Schedule)
	colours, err := engine.Palette(req)
	if err != nil {
		return fmt.Errorf("failed to generate ramp: %w", err)
	}
	return out.emit(cmd, s, req.Algorithm, colours)
}
