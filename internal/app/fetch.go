package app

import (
	"github.com/spf13/cobra"

	"github.com/unna97/topst/internal/schema"
)

func NewFetchCmd(mgr Manager) *cobra.Command {
	var flavorStr string
	var destDir string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a flavor's schema tree for offline inspection",
		Long: `Fetch downloads the main schema document for a flavor along with every
schema it transitively includes from the same origin, preserving the
relative layout. Cross-origin imports (such as the W3C xml.xsd) are left
to their canonical hosts.`,
		Example: `
  topst fetch -f datacite-4.5
  topst fetch -f pidinst -o ./schemas/pidinst`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flavor := schema.Flavor(flavorStr)
			if _, err := schema.Lookup(flavor); err != nil {
				return err
			}
			if destDir == "" {
				destDir = string(flavor)
			}
			return mgr.FetchSchema(cmd.Context(), flavor, destDir)
		},
	}

	cmd.Flags().StringVarP(&flavorStr, "flavor", "f", "", "Schema flavor to fetch (required)")
	cmd.Flags().StringVarP(&destDir, "out", "o", "", "Destination directory (defaults to the flavor name)")
	_ = cmd.MarkFlagRequired("flavor")

	return cmd
}
