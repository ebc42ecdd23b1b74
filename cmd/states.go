package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/growthlens/investscan/internal/geo"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List the states and union territories the scanner covers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := loadStates()
		if err != nil {
			return err
		}
		formatStateTable(os.Stdout, table.Entries())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statesCmd)
}

// formatStateTable writes a tabular view of the state table to w.
func formatStateTable(out io.Writer, entries []geo.StateEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STATE\tALIASES\tCITIES")
	_, _ = fmt.Fprintln(w, "-----\t-------\t------")

	for _, e := range entries {
		aliases := strings.Join(e.Aliases, ", ")
		if aliases == "" {
			aliases = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", e.Name, aliases, len(e.Cities))
	}
	_ = w.Flush()
}
