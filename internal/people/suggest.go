package people

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/kozaktomas/photo-people/internal/database"
)

// SuggestionsAndChoices is the result of a suggestion run for one person
type SuggestionsAndChoices struct {
	// RunID identifies the run in the logs
	RunID string `json:"run_id"`
	// Choices holds the assigned clusters followed by the ignored ones.
	// The first entry is always accepted and fixed.
	Choices []AnnotatedCluster `json:"choices"`
	// Suggestions holds the clusters that look like the person, largest first
	Suggestions []AnnotatedCluster `json:"suggestions"`
}

// candidate is a cluster that passed the similarity threshold
type candidate struct {
	cluster database.FaceCluster
	median  float64
}

// SuggestionsAndChoicesForPerson compares every other local cluster with the
// faces already assigned to the person and returns the ones that match,
// together with the person's current choices.
func (e *Engine) SuggestionsAndChoicesForPerson(ctx context.Context, person CGroupPerson) (*SuggestionsAndChoices, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := e.log.With().Str("run_id", runID).Str("person_id", person.ID).Logger()

	s, err := e.load(ctx, false)
	if err != nil {
		return nil, err
	}
	ignoredIDs, err := e.loadIgnored(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	policy := e.policy.Suggestions
	rng := e.newRand()
	embeddings := BuildEmbeddingIndex(s.records, logger)

	assigned := person.CGroup.Data.Assigned
	assignedIDs := mapset.NewThreadUnsafeSet(person.AssignedClusterIDs()...)

	personEmbeddings := Sample(rng, embeddings.lookup(distinctFaceIDs(assigned)), policy.SampleSize)
	if len(personEmbeddings) == 0 {
		return nil, fmt.Errorf("person %s: %w", person.ID, ErrPersonHasNoFaces)
	}

	var accepted []candidate
	evaluated := 0
	for _, cluster := range s.clusters {
		if assignedIDs.Contains(cluster.ID) || ignoredIDs.Contains(cluster.ID) {
			continue
		}
		if len(cluster.Faces) < policy.MinCandidateFaces {
			continue
		}
		sampled := Sample(rng, cluster.Faces, policy.SampleSize)
		median, ok := medianSimilarity(personEmbeddings, embeddings.lookup(sampled))
		if !ok {
			continue
		}
		evaluated++
		if median > policy.Threshold {
			accepted = append(accepted, candidate{cluster: cluster, median: median})
		}
	}
	slices.SortStableFunc(accepted, func(a, b candidate) int {
		return cmp.Compare(b.median, a.median)
	})

	maxPreviews := e.policy.Previews.MaxFaces

	acceptedChoices := s.annotateAll(assigned, maxPreviews, true)
	if len(acceptedChoices) == 0 {
		return nil, fmt.Errorf("person %s has no previewable cluster: %w", person.ID, ErrPersonHasNoFaces)
	}
	var ignoredClusters []database.FaceCluster
	for _, c := range s.clusters {
		if ignoredIDs.Contains(c.ID) && !assignedIDs.Contains(c.ID) {
			ignoredClusters = append(ignoredClusters, c)
		}
	}
	ignoredChoices := s.annotateAll(ignoredClusters, maxPreviews, false)

	sortByFaceCount(acceptedChoices)
	sortByFaceCount(ignoredChoices)
	first := acceptedChoices[0]
	first.Fixed = true
	rest := append(slices.Clone(acceptedChoices[1:]), ignoredChoices...)
	sortByFaceCount(rest)
	choices := append([]AnnotatedCluster{first}, rest...)

	suggestions := make([]AnnotatedCluster, 0, len(accepted))
	for _, c := range accepted {
		a, ok := s.annotate(c.cluster, maxPreviews)
		if !ok {
			continue
		}
		a.Similarity = c.median
		suggestions = append(suggestions, a)
	}
	sortByFaceCount(suggestions)
	if len(suggestions) > policy.MaxSuggestions {
		suggestions = suggestions[:policy.MaxSuggestions]
	}

	logger.Info().
		Int("person_embeddings", len(personEmbeddings)).
		Int("candidates", evaluated).
		Int("accepted", len(accepted)).
		Int("suggestions", len(suggestions)).
		Int("choices", len(choices)).
		Dur("took", time.Since(started)).
		Msg("suggestions computed")

	return &SuggestionsAndChoices{
		RunID:       runID,
		Choices:     choices,
		Suggestions: suggestions,
	}, nil
}

// distinctFaceIDs returns the face IDs of the clusters, each once, in stored order
func distinctFaceIDs(clusters []database.FaceCluster) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var ids []string
	for _, c := range clusters {
		for _, id := range c.Faces {
			if seen.Add(id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// IgnoreCluster records that the cluster should no longer be suggested for the person
func (e *Engine) IgnoreCluster(ctx context.Context, personID, clusterID string) error {
	if e.src.Ignored == nil {
		return errNoIgnoredStore
	}
	person, err := e.FindNamedPerson(ctx, personID)
	if err != nil {
		return err
	}
	if slices.Contains(person.AssignedClusterIDs(), clusterID) {
		return fmt.Errorf("cluster %s: %w", clusterID, ErrClusterAssigned)
	}

	clusters, err := e.src.Clusters.SavedFaceClusters(ctx)
	if err != nil {
		return fmt.Errorf("load clusters: %w", err)
	}
	if !slices.ContainsFunc(clusters, func(c database.FaceCluster) bool { return c.ID == clusterID }) {
		return fmt.Errorf("cluster %s: %w", clusterID, ErrClusterNotFound)
	}

	if err := e.src.Ignored.SaveIgnored(ctx, personID, clusterID); err != nil {
		return fmt.Errorf("save ignored cluster: %w", err)
	}
	e.log.Info().Str("person_id", personID).Str("cluster_id", clusterID).Msg("cluster ignored")
	return nil
}
