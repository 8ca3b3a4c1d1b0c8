package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/swatch"
)

type swatchOptions struct {
	output   string
	width    int
	height   int
	noLabels bool
}

func newSwatchCmd(g *globalOptions) *cobra.Command {
	opts := &swatchOptions{}
	cmd := &cobra.Command{
		Use:   "swatch <colour-a> <colour-b>",
		Short: "Render a palette to a PNG swatch",
		Long: `Render a palette between two colours as a PNG strip, one cell per
colour, with the hex value printed at the foot of each cell.

Examples:
  # Compare algorithms side by side
  tincture swatch -a srgb -o srgb.png ff0000 0000ff
  tincture swatch -a oklab -o oklab.png ff0000 0000ff

  # Narrow unlabelled cells
  tincture swatch -n 32 --width 16 --no-labels -o ramp.png 005457 fa7a76`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwatch(cmd, g, opts, args)
		},
	}

	cmd.Flags().StringP("algorithm", "a", "oklab", "interpolation algorithm")
	cmd.Flags().IntP("steps", "n", 11, "number of colours")
	cmd.Flags().String("method", "linear", "interpolation method")
	cmd.Flags().String("hue", "shorter", "hue arc policy")
	engineFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "PNG file to write (required)")
	cmd.Flags().IntVar(&opts.width, "width", swatch.DefaultOptions().CellWidth, "cell width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", swatch.DefaultOptions().Height, "cell height in pixels")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit hex labels")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runSwatch(cmd *cobra.Command, g *globalOptions, opts *swatchOptions, args []string) error {
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
	colours, err := engine.Palette(req)
	if err != nil {
		return fmt.Errorf("failed to generate palette: %w", err)
	}

	layout := swatch.Options{CellWidth: opts.width, Height: opts.height, Labels: !opts.noLabels}
	if err := swatch.WriteFile(opts.output, colours, layout); err != nil {
		return err
	}
	if !g.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d colours to %s\n", len(colours), opts.output)
	}
	return nil
}
