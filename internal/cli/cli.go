package cli

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "romset",
	Short: "Reconcile a ROM-set DAT catalog against files on disk",
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String(ConfigFlag, "", "Path to configuration file")
	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newFixdatCommand())
	rootCmd.AddCommand(newIndexCommand())
	rootCmd.AddCommand(newSanitizeCommand())
}
