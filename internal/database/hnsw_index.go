package database

import (
	"errors"
	"slices"
	"sync"

	"github.com/coder/hnsw"
)

// FaceHNSWIndex wraps an HNSW graph over face embeddings keyed by face ID.
type FaceHNSWIndex struct {
	graph *hnsw.Graph[string]
	mu    sync.RWMutex
}

// NewFaceHNSWIndex creates a new empty HNSW index.
func NewFaceHNSWIndex() *FaceHNSWIndex {
	return &FaceHNSWIndex{}
}

func newFaceGraph() *hnsw.Graph[string] {
	g := hnsw.NewGraph[string]()
	g.M = HNSWMaxNeighbors
	g.Ml = 1.0 / float64(HNSWMaxNeighbors) // Standard HNSW formula
	g.EfSearch = HNSWEfSearch
	g.Distance = hnsw.CosineDistance
	return g
}

// BuildFromEmbeddings builds the index from a face ID to embedding map.
// Faces are inserted in face ID order so that identical input yields an identical graph shape.
func (h *FaceHNSWIndex) BuildFromEmbeddings(embeddings map[string][]float32) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(embeddings) == 0 {
		h.graph = nil
		return nil
	}

	ids := make([]string, 0, len(embeddings))
	for id, emb := range embeddings {
		if len(emb) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var dim int
	g := newFaceGraph()
	for _, id := range ids {
		emb := embeddings[id]
		if dim == 0 {
			dim = len(emb)
		}
		if len(emb) != dim {
			// Mixed dimensions can't share one graph
			continue
		}
		g.Add(hnsw.MakeNode(id, emb))
	}

	h.graph = g
	return nil
}

// Search finds the k nearest neighbors to the query embedding.
// Returns face IDs and their cosine distances, nearest first.
func (h *FaceHNSWIndex) Search(query []float32, k int) ([]string, []float64, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.graph == nil {
		return nil, nil, errors.New("index not initialized")
	}

	neighbors := h.graph.Search(query, k)

	ids := make([]string, len(neighbors))
	distances := make([]float64, len(neighbors))
	for i, n := range neighbors {
		ids[i] = n.Key
		distances[i] = CosineDistance(query, n.Value)
	}

	return ids, distances, nil
}

// Len returns the number of faces in the index.
func (h *FaceHNSWIndex) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.graph == nil {
		return 0
	}
	return h.graph.Len()
}
