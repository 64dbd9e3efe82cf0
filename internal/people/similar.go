package people

import (
	"context"
	"fmt"

	"github.com/kozaktomas/photo-people/internal/database"
)

// SimilarFace is a neighbor returned by SimilarFaces
type SimilarFace struct {
	FaceID string `json:"face_id"`
	FileID string `json:"file_id"`
	// ClusterID is empty when the face is in no cluster
	ClusterID  string  `json:"cluster_id,omitempty"`
	Similarity float64 `json:"similarity"`
}

// SimilarFaces returns up to k visible faces that look most like the given face.
// The face itself is never part of the result.
func (e *Engine) SimilarFaces(ctx context.Context, faceID string, k int) ([]SimilarFace, error) {
	if k <= 0 {
		return nil, nil
	}
	s, err := e.load(ctx, true)
	if err != nil {
		return nil, err
	}

	embeddings := BuildEmbeddingIndex(s.records, e.log)
	visible := make(map[string][]float32, len(s.faces))
	for id := range s.faces {
		if emb, ok := embeddings[id]; ok {
			visible[id] = emb
		}
	}
	query, ok := visible[faceID]
	if !ok {
		return nil, fmt.Errorf("face %s: %w", faceID, ErrFaceNotFound)
	}

	index := database.NewFaceHNSWIndex()
	if err := index.BuildFromEmbeddings(visible); err != nil {
		return nil, fmt.Errorf("build face index: %w", err)
	}
	ids, distances, err := index.Search(query, k+1)
	if err != nil {
		return nil, fmt.Errorf("search face index: %w", err)
	}

	clusterOf := s.faceClusters()
	result := make([]SimilarFace, 0, k)
	for i, id := range ids {
		if id == faceID {
			continue
		}
		if len(result) == k {
			break
		}
		result = append(result, SimilarFace{
			FaceID:     id,
			FileID:     s.faces[id].File.ID,
			ClusterID:  clusterOf[id],
			Similarity: 1 - distances[i],
		})
	}
	return result, nil
}

// faceClusters maps face IDs to the cluster holding them.
// Local clusters win over clusters only known through a cluster group.
func (s *snapshot) faceClusters() map[string]string {
	out := make(map[string]string)
	for _, g := range s.groups {
		for _, c := range g.Data.Assigned {
			for _, id := range c.Faces {
				out[id] = c.ID
			}
		}
	}
	for _, c := range s.clusters {
		for _, id := range c.Faces {
			out[id] = c.ID
		}
	}
	return out
}
