package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routectl",
		Short: "Salestrail route engine and storage tooling",
		Long: `routectl runs the route engine offline and manages the service's
SQL storage (schema migration and saved-route seeding).`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newOptimizeCommand())
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSeedCommand())

	return cmd
}
