package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/colour"
	"github.com/jmylchreest/tincture/internal/extract"
	"github.com/jmylchreest/tincture/internal/image"
	httputil "github.com/jmylchreest/tincture/internal/util/http"
)

type extractOptions struct {
	colours int
	mixWith string
	out     paletteFlags
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract dominant colours from an image",
		Long: `Extract the dominant colours of an image by k-means clustering in Oklab.

The image may be a local file or an http(s) URL. Colours are listed
heaviest first. With --mix, the two most different dominant colours become
the endpoints of a palette in the named algorithm.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 8 colours
  tincture extract wallpaper.jpg

  # Weights and colours as JSON
  tincture extract -c 5 -f json wallpaper.png

  # Build a 9-step mix_hct palette between the most different colours
  tincture extract --mix mix_hct -n 9 https://example.com/wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.colours, "colours", "c", 8, fmt.Sprintf("number of colours to extract (1-%d)", extract.MaxColours))
	cmd.Flags().StringVar(&opts.mixWith, "mix", "", "mix the two most different colours with this algorithm")
	cmd.Flags().IntP("steps", "n", 11, "palette length when --mix is set")
	cmd.Flags().String("method", "linear", "interpolation method when --mix is set")
	cmd.Flags().String("hue", "shorter", "hue arc policy when --mix is set")
	engineFlags(cmd)
	opts.out.register(cmd)
	return cmd
}

func runExtract(cmd *cobra.Command, g *globalOptions, opts *extractOptions, imagePath string) error {
	s, err := g.loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	s.logger.Debug("loading image", "path", imagePath)
	loader := image.NewSmartLoader(httputil.FetchOptions{})
	img, err := loader.Load(cmd.Context(), imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	s.logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	clusters, err := extract.NewExtractor().Extract(img, opts.colours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	s.logger.Debug("extracted colours", "count", len(clusters))

	if opts.mixWith != "" {
		return mixExtracted(cmd, s, opts, clusters)
	}

	if opts.out.format == formatJSONName {
		data, err := json.MarshalIndent(clusters, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return writeOutput(cmd.OutOrStdout(), opts.out.output, string(data)+"\n")
	}

	colours := make([]colour.RGB01, len(clusters))
	for i, c := range clusters {
		colours[i] = c.Colour
	}
	return opts.out.emit(cmd, s, "kmeans", colours)
}

// mixExtracted builds a palette between the two most different clusters.
func mixExtracted(cmd *cobra.Command, s *settings, opts *extractOptions, clusters []extract.Cluster) error {
	a, b, err := extract.MostDistinct(clusters)
	if err != nil {
		return err
	}
	s.cfg.Algorithm = opts.mixWith
	req, err := s.request()
	if err != nil {
		return err
	}
	req.A, req.B = a.Colour, b.Colour

	engine, err := s.engine()
	if err != nil {
		return err
	}
	s.logger.Debug("mixing extracted colours", "a", a.Hex, "b", b.Hex, "algorithm", req.Algorithm)
	colours, err := engine.Palette(req)
	if err != nil {
		return fmt.Errorf("failed to generate palette: %w", err)
	}
	return opts.out.emit(cmd, s, req.Algorithm, colours)
}
