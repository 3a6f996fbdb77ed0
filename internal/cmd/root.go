package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "novacore",
	Short:         "Verify a NovaCore license against the license server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
