package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/photo-people/internal/constants"
	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/database/postgres"
	"github.com/kozaktomas/photo-people/internal/snapshot"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Load a pipeline snapshot into PostgreSQL",
	Long: `Load files, face detections, local clusters and cluster groups from a
JSON snapshot into PostgreSQL. Files, faces and groups are upserted; the
local clusters are replaced as a whole.

Example:
  photo-people import export.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("json", false, "Output stats as JSON")
}

func runImport(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")

	data, err := snapshot.ReadFile(args[0])
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := initBackend(cfg, logger); err != nil {
		return err
	}
	defer closeBackend()

	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), constants.ImportTimeout)
	defer cancel()

	writer, err := database.GetSnapshotWriter(ctx)
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Printf("Importing %d files, %d faces, %d clusters and %d cluster groups\n\n",
			len(data.Files), data.FaceCount(), len(data.Clusters), len(data.ClusterGroups))
	}

	var bar *progressbar.ProgressBar
	if !jsonOutput {
		bar = progressbar.NewOptions(snapshot.Steps(data),
			progressbar.OptionSetDescription("Importing"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}

	stats, err := snapshot.Import(ctx, writer, data, constants.ImportBatchSize, func(n int) {
		if bar != nil {
			bar.Add(n)
		}
	})
	if err != nil {
		return fmt.Errorf("importing snapshot: %w", err)
	}
	if stats.SkippedFaces > 0 {
		logger.Warn().Int("skipped", stats.SkippedFaces).Msg("faces with malformed IDs or embeddings were skipped")
	}

	if jsonOutput {
		return outputJSON(stats)
	}

	fmt.Printf("\n\nImported %d files, %d faces, %d clusters, %d cluster groups\n",
		stats.Files, stats.Faces, stats.Clusters, stats.Groups)

	total, err := postgres.NewFaceRepository(postgres.GetGlobalPool()).Count(ctx)
	if err != nil {
		return fmt.Errorf("counting faces: %w", err)
	}
	fmt.Printf("Database now holds %d faces\n", total)
	return nil
}
