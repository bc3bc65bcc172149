package app

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewFlavorsCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "flavors",
		Short: "List the supported schema flavors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FLAVOR\tFORMAT\tSCHEMA")
			for _, d := range mgr.Flavors() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Flavor, d.Format, d.RootURL())
			}
			return w.Flush()
		},
	}
}
