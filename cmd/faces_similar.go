package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kozaktomas/photo-people/internal/constants"
	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/spf13/cobra"
)

var facesSimilarCmd = &cobra.Command{
	Use:   "similar <face-id>",
	Short: "Find the faces most similar to a face",
	Long: `Search all visible faces for the ones closest to the given face by
cosine similarity of their embeddings.

Examples:
  photo-people faces similar 1042_04250_10000_20500_31000
  photo-people faces similar 1042_04250_10000_20500_31000 --limit 5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFacesSimilar,
}

func init() {
	facesCmd.AddCommand(facesSimilarCmd)

	facesSimilarCmd.Flags().Int("limit", constants.DefaultSimilarFacesLimit, "Maximum number of results")
	facesSimilarCmd.Flags().Bool("json", false, "Output as JSON")
}

func runFacesSimilar(cmd *cobra.Command, args []string) error {
	faceID := args[0]
	limit := mustGetInt(cmd, "limit")
	jsonOutput := mustGetBool(cmd, "json")

	if limit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", limit)
	}
	limit = min(limit, constants.MaxSimilarFacesLimit)

	ctx := context.Background()
	_, engine, _, err := setupEngine(ctx)
	if err != nil {
		return err
	}
	defer closeBackend()

	results, err := engine.SimilarFaces(ctx, faceID, limit)
	if err != nil {
		return fmt.Errorf("searching similar faces: %w", err)
	}

	if jsonOutput {
		if results == nil {
			results = []people.SimilarFace{}
		}
		return outputJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No similar faces found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACE\tFILE\tCLUSTER\tSIMILARITY")
	fmt.Fprintln(w, "----\t----\t-------\t----------")
	for _, r := range results {
		cluster := r.ClusterID
		if cluster == "" {
			cluster = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f%%\n", r.FaceID, r.FileID, cluster, r.Similarity*100)
	}
	w.Flush()
	return nil
}
