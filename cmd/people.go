package cmd

import (
	"github.com/spf13/cobra"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "People and merge suggestion commands",
	Long:  `Commands for listing reconstructed people and working with merge suggestions.`,
}

func init() {
	rootCmd.AddCommand(peopleCmd)
}
