// Package cli provides the command-line interface for Tincture.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/tincture/internal/config"
	"github.com/jmylchreest/tincture/internal/mix"
	"github.com/jmylchreest/tincture/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "tincture",
		Short: "A perceptual colour palette interpolator",
		Long: `Tincture generates palettes between two colours in a choice of colour
spaces, from plain sRGB through Oklab and CAM16 to HCT, along with a
subtractive spectral mixer and single-seed tonal ramps.

Palettes can be printed, rendered to PNG swatches, seeded from the
dominant colours of an image, or served over HTTP.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "configuration file (YAML or JSON)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newMixCmd(g))
	rootCmd.AddCommand(newRampCmd(g))
	rootCmd.AddCommand(newAlgorithmsCmd())
	rootCmd.AddCommand(newExtractCmd(g))
	rootCmd.AddCommand(newSwatchCmd(g))
	rootCmd.AddCommand(newServeCmd(g))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// settings is the resolved configuration for one command invocation.
type settings struct {
	cfg    *config.Config
	logger hclog.Logger
}

// loadSettings resolves configuration in order: defaults, config file,
// environment, then flags the user set explicitly on cmd.
func (g *globalOptions) loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg := config.Default()
	if g.configPath != "" {
		loaded, err := config.Load(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.FromEnv(cfg); err != nil {
		return nil, err
	}

	var flagErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if flagErr == nil {
			flagErr = applyFlag(cfg, f)
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.Level()
	switch {
	case g.quiet:
		level = hclog.Error
	case g.verbose:
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "tincture",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
	return &settings{cfg: cfg, logger: logger}, nil
}

// applyFlag copies a changed flag onto the matching configuration field.
// Flags without a configuration counterpart are ignored.
func applyFlag(cfg *config.Config, f *pflag.Flag) error {
	var err error
	v := f.Value.String()
	switch f.Name {
	case "algorithm":
		cfg.Algorithm = v
	case "steps":
		_, err = fmt.Sscan(v, &cfg.Steps)
	case "method":
		cfg.Method = v
	case "hue":
		cfg.Hue = v
	case "schedule":
		cfg.Schedule = v
	case "gamma":
		_, err = fmt.Sscan(v, &cfg.Gamma)
	case "gamut":
		cfg.Gamut = v
	case "fast":
		_, err = fmt.Sscan(v, &cfg.FastTransfer)
	case "listen":
		cfg.Listen = v
	}
	if err != nil {
		return fmt.Errorf("invalid --%s value %q: %w", f.Name, v, err)
	}
	return nil
}

// engine builds a palette engine from the resolved settings.
func (s *settings) engine() (*mix.Engine, error) {
	opts, err := s.cfg.EngineOptions(s.logger.Named("engine"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return mix.New(opts...), nil
}

// request builds a palette request from the resolved settings.
func (s *settings) request() (mix.Request, error) {
	alg, err := mix.ParseAlgorithm(s.cfg.Algorithm)
	if err != nil {
		return mix.Request{}, err
	}
	return mix.Request{
		Steps:     s.cfg.Steps,
		Algorithm: alg,
		Method:    mix.Method(s.cfg.Method),
		Hue:       mix.HuePolicy(s.cfg.Hue),
		Schedule:  mix.Schedule(s.cfg.Schedule),
		Gamma:     s.cfg.Gamma,
	}, nil
}
