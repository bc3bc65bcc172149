package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/unna97/topst/internal/config"
	"github.com/unna97/topst/internal/schema"
)

// Version is the current version of topst, set at build time.
var Version = "dev"

var LongDescription = `
topst validates research metadata documents against the published schema for
their standard. It fetches the XSD (or JSON Schema) for a flavor such as
DataCite 4.4/4.5 or PIDINST from the standard's schema repository, resolves
the schema's own includes over the network, and checks your documents
against the compiled result.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer) *cobra.Command {
	var debug bool
	var noColour bool
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "topst",
		Short:         "Validate research metadata against DataCite and PIDINST schemas",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help and completion commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}
			logger, _, err := setupLogger(stderr, ll)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			// 2. Build Dependencies
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("configuration failed: %w", err)
			}

			registry := schema.NewRegistry(cfg, logger)
			fetcher := schema.NewFetcher(cfg.HTTPClient(), logger)

			// 3. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, registry, fetcher, schema.Flavor(cfg.DefaultFlavor))
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "r", "", "path to configuration file (overrides env)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")

	// Subcommands
	rootCmd.AddCommand(NewValidateCmd(lazy))
	rootCmd.AddCommand(NewFetchCmd(lazy))
	rootCmd.AddCommand(NewFlavorsCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
