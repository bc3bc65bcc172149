package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unna97/topst/internal/schema"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	var verbose bool
	var continueOnError bool
	var flavorStr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate metadata documents against their schema",
		Args:  cobra.ArbitraryArgs,
		Example: `
VALIDATING A SINGLE DOCUMENT
- Naming the flavor explicitly:
  topst validate -f datacite-4.5 dataset.xml
- Letting topst detect the flavor from the document:
  topst validate dataset.xml

VALIDATING MULTIPLE DOCUMENTS
  topst validate -f pidinst instruments/*.xml

SUPPORTED FLAVORS
  topst flavors`,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full diagnostic messages")
	outputVal := formatValue("text")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&continueOnError, "continue-on-error", "C", false,
		"Validate remaining documents even after one fails (default is to stop on first failure)")
	cmd.Flags().StringVarP(&flavorStr, "flavor", "f",
		"", fmt.Sprintf("Schema flavor (%s); detected from the document when omitted", flavorList()))
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch the files and revalidate on change")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return &NoInputFilesError{}
		}

		// Unknown flavors fail here, before any document is read.
		flavor := schema.Flavor(flavorStr)
		if flavor != "" {
			if _, err := schema.Lookup(flavor); err != nil {
				return err
			}
		}

		noColour, _ := cmd.Flags().GetBool("nocolour")

		req := ValidateRequest{
			Paths:           args,
			Flavor:          flavor,
			Format:          string(outputVal),
			Verbose:         verbose,
			UseColour:       !noColour,
			ContinueOnError: continueOnError,
		}

		if watch {
			return mgr.WatchFiles(cmd.Context(), req, nil)
		}
		return mgr.ValidateFiles(cmd.Context(), req)
	}

	return cmd
}

func flavorList() string {
	names := make([]string, 0, len(schema.Flavors()))
	for _, f := range schema.Flavors() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
