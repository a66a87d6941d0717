// Package cmd wires the makiaveli-solve CLI: a cobra root command plus a
// zerolog logger injected at this boundary only, following the shape of
// apps/cosmos/cmd/ocpd/cmd/root.go (minus the chain-specific plumbing
// nothing in this repo needs).
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logger     zerolog.Logger
	configPath string
	verbose    bool
)

// NewRootCmd creates the root command for makiaveli-solve.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "makiaveli-solve",
		Short:         "Find a legal table rearrangement for a Makiaveli hand",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a solver config JSON file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newVersionCmd())
	return root
}
