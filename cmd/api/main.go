package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacemaker/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pacemaker",
		Short: "PaceMaker API Server",
		Long:  `PaceMaker is a personal goal-tracking backend: one goal, a milestone timeline, streaks and schedule adjustments for when life gets in the way.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewCleanupCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
