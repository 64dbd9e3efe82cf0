package cmd

import (
	"github.com/spf13/cobra"
)

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Face diagnostics",
	Long:  `Commands for inspecting individual faces and their neighbors.`,
}

func init() {
	rootCmd.AddCommand(facesCmd)
}
