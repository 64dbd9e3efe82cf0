package people

import (
	"cmp"
	"slices"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/facematch"
)

// PreviewFace is a face that can be shown for a cluster
type PreviewFace struct {
	FaceID string        `json:"face_id"`
	File   database.File `json:"file"`
	// Box is the relative [x1, y1, x2, y2] crop, nil when the face ID carries none
	Box []float64 `json:"box,omitempty"`
}

// AnnotatedCluster is a cluster prepared for display
type AnnotatedCluster struct {
	Cluster      database.FaceCluster `json:"cluster"`
	PreviewFaces []PreviewFace        `json:"preview_faces"`
	Accepted     bool                 `json:"accepted"`
	Fixed        bool                 `json:"fixed"`
	// Similarity is the median similarity to the person, only set for suggestions
	Similarity float64 `json:"similarity,omitempty"`
}

// FaceCount returns the number of faces in the cluster
func (a AnnotatedCluster) FaceCount() int {
	return len(a.Cluster.Faces)
}

// annotate picks up to maxFaces preview faces in stored order.
// ok is false when no face of the cluster is visible.
func (s *snapshot) annotate(cluster database.FaceCluster, maxFaces int) (AnnotatedCluster, bool) {
	var previews []PreviewFace
	for _, id := range cluster.Faces {
		if len(previews) >= maxFaces {
			break
		}
		ref, ok := s.faces[id]
		if !ok {
			continue
		}
		previews = append(previews, PreviewFace{
			FaceID: id,
			File:   ref.File,
			Box:    facematch.FaceBox(id),
		})
	}
	if len(previews) == 0 {
		return AnnotatedCluster{}, false
	}
	return AnnotatedCluster{Cluster: cluster, PreviewFaces: previews}, true
}

// annotateAll annotates clusters, dropping those without previews
func (s *snapshot) annotateAll(clusters []database.FaceCluster, maxFaces int, accepted bool) []AnnotatedCluster {
	out := make([]AnnotatedCluster, 0, len(clusters))
	for _, c := range clusters {
		a, ok := s.annotate(c, maxFaces)
		if !ok {
			continue
		}
		a.Accepted = accepted
		out = append(out, a)
	}
	return out
}

func sortByFaceCount(clusters []AnnotatedCluster) {
	slices.SortStableFunc(clusters, func(a, b AnnotatedCluster) int {
		return cmp.Compare(b.FaceCount(), a.FaceCount())
	})
}
