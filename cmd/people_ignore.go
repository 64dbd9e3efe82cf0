package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var peopleIgnoreCmd = &cobra.Command{
	Use:   "ignore <person-id> <cluster-id>",
	Short: "Stop suggesting a cluster for a person",
	Long: `Record that a cluster does not belong to a named person. The cluster is
no longer suggested for that person and shows up as an ignored choice.

Example:
  photo-people people ignore 7f3c2a 1718000000123`,
	Args: cobra.ExactArgs(2),
	RunE: runPeopleIgnore,
}

func init() {
	peopleCmd.AddCommand(peopleIgnoreCmd)
}

func runPeopleIgnore(cmd *cobra.Command, args []string) error {
	personID, clusterID := args[0], args[1]

	ctx := context.Background()
	_, engine, _, err := setupEngine(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	if err := engine.IgnoreCluster(ctx, personID, clusterID); err != nil {
		return fmt.Errorf("ignoring cluster %s for %s: %w", clusterID, personID, err)
	}

	fmt.Printf("Cluster %s is now ignored for person %s\n", clusterID, personID)
	return nil
}
