package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lone-faerie/unitconv"
)

// Flags for unitconv list
var (
	ListSummary bool // Display a comma-separated summary of supported pairs
)

// ListCommand is the [cobra.Command] used for listing the supported
// conversions.
var ListCommand = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List supported conversions",
	Long: `List every supported conversion pair.

Each line is of the form "<from_unit> -> <to_unit>". Conversions are unidirectional; both directions of a pair are listed separately when both are supported.`,
	GroupID: "commands",
	Args:    cobra.NoArgs,
	RunE:    listPairs,
}

func init() {
	ListCommand.Flags().BoolVarP(&ListSummary, "summary", "s", false, "Display a comma-separated summary of supported pairs")

	ListCommand.SetHelpTemplate(ListCommand.HelpTemplate() + "\n" + fullDocsFooter + "\n")

	RootCommand.AddCommand(ListCommand)
}

func printPairs(w io.Writer, pairs []unitconv.Pair) {
	for _, p := range pairs {
		fmt.Fprintln(w, p)
	}
}

func printSummary(w io.Writer, pairs []unitconv.Pair) {
	for i, p := range pairs {
		if i > 0 {
			w.Write([]byte{',', ' '})
		}

		fmt.Fprintf(w, "%s->%s", p.From, p.To)
	}

	w.Write([]byte{'\n'})
}

func listPairs(cmd *cobra.Command, _ []string) error {
	pairs := unitconv.Pairs()

	if ListSummary {
		printSummary(cmd.OutOrStdout(), pairs)
	} else {
		printPairs(cmd.OutOrStdout(), pairs)
	}

	return nil
}
