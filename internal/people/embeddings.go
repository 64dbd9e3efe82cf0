package people

import (
	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/facematch"
	"github.com/rs/zerolog"
)

// EmbeddingIndex maps a face ID to its embedding
type EmbeddingIndex map[string][]float32

// BuildEmbeddingIndex collects the embeddings of all persisted faces.
// Faces whose ID carries no file component are logged and left out.
// When a face ID repeats, the first record wins.
func BuildEmbeddingIndex(records []database.FaceIndex, logger zerolog.Logger) EmbeddingIndex {
	index := make(EmbeddingIndex)
	skipped := 0
	for _, record := range records {
		for _, face := range record.Faces {
			if _, ok := facematch.FileIDFromFaceID(face.FaceID); !ok {
				logger.Warn().
					Str("face_id", face.FaceID).
					Str("file_id", record.FileID).
					Msg("skipping face with malformed ID")
				skipped++
				continue
			}
			if len(face.Embedding) == 0 {
				continue
			}
			if _, exists := index[face.FaceID]; exists {
				continue
			}
			index[face.FaceID] = face.Embedding
		}
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Int("indexed", len(index)).Msg("embedding index built with malformed faces")
	}
	return index
}

// lookup returns the embeddings of the given faces, skipping unknown ones
func (idx EmbeddingIndex) lookup(faceIDs []string) [][]float32 {
	out := make([][]float32, 0, len(faceIDs))
	for _, id := range faceIDs {
		if emb, ok := idx[id]; ok {
			out = append(out, emb)
		}
	}
	return out
}
