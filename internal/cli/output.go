package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/tincture/internal/colour"
)

// Output formats understood by formatPalette.
const (
	formatHexName   = "hex"
	formatRGBName   = "rgb"
	formatJSONName  = "json"
	formatTableName = "table"
)

const previewWidth = 8

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case formatHexName, "":
		return formatHex(palette, showPreview), nil
	case formatRGBName:
		return formatRGB(palette, showPreview), nil
	case formatJSONName:
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case formatTableName:
		return formatTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			sb.WriteString(colour.FormatColourWithPreview(rgb, previewWidth))
		} else {
			sb.WriteString(rgb.Hex())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			sb.WriteString(colour.ColourPreview(rgb, previewWidth) + "  ")
		}
		sb.WriteString(rgb.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatTable lists index, hex and RGB per colour, with a swatch column
// when previews are enabled.
func formatTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"#", "HEX", "RGB"}
	if showPreview {
		headers = append(headers, "SWATCH")
	}
	table := NewTable(headers)
	for i, rgb := range palette.ToRGBSlice() {
		row := []string{fmt.Sprint(i + 1), rgb.Hex(), rgb.String()}
		if showPreview {
			row = append(row, colour.ColourPreviewWithText(rgb, rgb.Hex(), previewWidth+1))
		}
		table.AddRow(row)
	}
	return table.Render()
}

// wantPreview reports whether ANSI previews should be drawn to w. Previews
// are only drawn on terminals.
func wantPreview(requested bool, w io.Writer) bool {
	if !requested {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// writeOutput writes output to path, or to w when path is empty.
func writeOutput(w io.Writer, path, output string) error {
	if path == "" {
		_, err := io.WriteString(w, output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil { // #nosec G306 - palette files are not secret
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
