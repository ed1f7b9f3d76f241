package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "predictd",
		Short: "Deterministic risk scoring over JSON payloads",
		Long: `predictd serves POST /predict: every JSON payload is canonicalized,
hashed with SHA-256 and mapped to a stable risk score and suggestion.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("predictd %s\n", Version)
		},
	}
}
