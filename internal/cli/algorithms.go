package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/tincture/internal/mix"
)

const descriptionWidth = 48

func newAlgorithmsCmd() *cobra.Command {
	var keysOnly bool
	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the supported palette algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keysOnly {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(mix.AlgorithmNames(), "\n"))
				return err
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), algorithmTable())
			return err
		},
	}
	cmd.Flags().BoolVar(&keysOnly, "keys", false, "print only the algorithm keys")
	return cmd
}

var algorithmColumns = []string{"key", "model", "seeds", "description"}

// algorithmTable renders the registry as key, model, seeds and description.
func algorithmTable() string {
	upper := cases.Upper(language.English)
	headers := make([]string, len(algorithmColumns))
	for i, c := range algorithmColumns {
		headers[i] = upper.String(c)
	}
	table := NewTable(headers)
	table.SetColumnMaxWidth(3, descriptionWidth)
	for _, alg := range mix.ValidAlgorithms() {
		seeds := "2"
		if alg.SingleSeed() {
			seeds = "1"
		}
		table.AddRow([]string{string(alg), alg.Model(), seeds, alg.Description()})
	}
	return table.Render()
}
