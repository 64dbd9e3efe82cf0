// Package snapshot reads exported pipeline snapshots and loads them into a
// database.SnapshotWriter.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/facematch"
	"github.com/rs/zerolog"
)

// Stats summarizes an import
type Stats struct {
	Files    int `json:"files"`
	Faces    int `json:"faces"`
	Clusters int `json:"clusters"`
	Groups   int `json:"cluster_groups"`
	// SkippedFaces counts faces dropped because of a malformed ID or an embedding of the wrong size
	SkippedFaces int `json:"skipped_faces"`
}

// ReadFile decodes a snapshot file
func ReadFile(path string) (*database.ExportData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a snapshot and checks its version
func Decode(r io.Reader) (*database.ExportData, error) {
	var data database.ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if data.Version != database.CurrentExportVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (expected %d)", data.Version, database.CurrentExportVersion)
	}
	return &data, nil
}

// Steps returns the number of progress steps Import reports for data
func Steps(data *database.ExportData) int {
	return len(data.Files) + len(data.FaceIndexes) + len(data.Clusters) + len(data.ClusterGroups)
}

// Import writes the snapshot. onProgress, if set, is called with the number
// of items finished since the previous call.
// Files are written in batches of batchSize. Dropped faces are logged to the
// logger carried by ctx.
func Import(ctx context.Context, w database.SnapshotWriter, data *database.ExportData, batchSize int, onProgress func(int)) (Stats, error) {
	var stats Stats
	if batchSize <= 0 {
		return stats, errors.New("batch size must be positive")
	}
	progress := func(n int) {
		if onProgress != nil && n > 0 {
			onProgress(n)
		}
	}

	for start := 0; start < len(data.Files); start += batchSize {
		end := min(start+batchSize, len(data.Files))
		if err := w.SaveFiles(ctx, data.Files[start:end]); err != nil {
			return stats, fmt.Errorf("saving files: %w", err)
		}
		stats.Files += end - start
		progress(end - start)
	}

	logger := zerolog.Ctx(ctx)
	for _, index := range data.FaceIndexes {
		clean, skipped := cleanFaceIndex(index, logger)
		stats.SkippedFaces += skipped
		if err := w.SaveFaceIndex(ctx, clean); err != nil {
			return stats, fmt.Errorf("saving faces of file %s: %w", index.FileID, err)
		}
		stats.Faces += len(clean.Faces)
		progress(1)
	}

	if err := w.ReplaceFaceClusters(ctx, data.Clusters); err != nil {
		return stats, fmt.Errorf("saving clusters: %w", err)
	}
	stats.Clusters = len(data.Clusters)
	progress(len(data.Clusters))

	for _, group := range data.ClusterGroups {
		if err := w.SaveCGroup(ctx, group); err != nil {
			return stats, fmt.Errorf("saving cluster group %s: %w", group.ID, err)
		}
		stats.Groups++
		progress(1)
	}

	return stats, nil
}

// cleanFaceIndex drops faces the database would reject
func cleanFaceIndex(index database.FaceIndex, logger *zerolog.Logger) (database.FaceIndex, int) {
	clean := database.FaceIndex{FileID: index.FileID, Faces: make([]database.StoredFace, 0, len(index.Faces))}
	skipped := 0
	for _, face := range index.Faces {
		reason := ""
		fileID, ok := facematch.FileIDFromFaceID(face.FaceID)
		switch {
		case !ok:
			reason = "malformed face ID"
		case fileID != index.FileID:
			reason = "face ID names another file"
		case len(face.Embedding) != database.FaceEmbeddingDim:
			reason = "unexpected embedding dimension"
		}
		if reason != "" {
			logger.Warn().
				Str("face_id", face.FaceID).
				Str("file_id", index.FileID).
				Int("dim", len(face.Embedding)).
				Msg("skipping face: " + reason)
			skipped++
			continue
		}
		clean.Faces = append(clean.Faces, face)
	}
	return clean, skipped
}
