package people

import (
	"context"
	"fmt"
	"math/rand/v2"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/kozaktomas/photo-people/internal/config"
	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/facematch"
	"github.com/rs/zerolog"
)

// Sources bundles the collaborators the engine reads from.
// Ignored may be nil, in which case no cluster is ever considered ignored.
type Sources struct {
	Files    database.FileReader
	Faces    database.FaceIndexReader
	Clusters database.ClusterReader
	Groups   database.ClusterGroupReader
	Ignored  database.IgnoredClusterStore
}

// SourcesFromBackend resolves every collaborator from the registered database backend.
func SourcesFromBackend(ctx context.Context) (Sources, error) {
	var src Sources
	var err error
	if src.Files, err = database.GetFileReader(ctx); err != nil {
		return src, err
	}
	if src.Faces, err = database.GetFaceIndexReader(ctx); err != nil {
		return src, err
	}
	if src.Clusters, err = database.GetClusterReader(ctx); err != nil {
		return src, err
	}
	if src.Groups, err = database.GetClusterGroupReader(ctx); err != nil {
		return src, err
	}
	if src.Ignored, err = database.GetIgnoredClusterStore(ctx); err != nil {
		return src, err
	}
	return src, nil
}

// Engine computes people and suggestions from the current persisted state
type Engine struct {
	src     Sources
	policy  config.PolicyConfig
	log     zerolog.Logger
	newRand func() *rand.Rand
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for skipped entities and run summaries
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// WithRand sets the generator factory used for sampling.
// The factory is called once per suggestion run.
func WithRand(newRand func() *rand.Rand) Option {
	return func(e *Engine) {
		e.newRand = newRand
	}
}

// NewEngine creates an engine over the given collaborators
func NewEngine(src Sources, policy config.PolicyConfig, opts ...Option) *Engine {
	e := &Engine{
		src:     src,
		policy:  policy,
		log:     zerolog.Nop(),
		newRand: NewRand,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the thresholds the engine runs with
func (e *Engine) Policy() config.PolicyConfig {
	return e.policy
}

// faceRef is a visible face together with its owning file
type faceRef struct {
	FaceID string
	File   database.File
	Score  float64
}

// snapshot holds the tables one operation works on
type snapshot struct {
	files map[string]database.File
	faces map[string]faceRef
	// records is kept so the embedding index can be built from the same read
	records  []database.FaceIndex
	clusters []database.FaceCluster
	groups   []database.ClusterGroup
}

// load reads files, faces and clusters. Groups are read only when withGroups is set.
func (e *Engine) load(ctx context.Context, withGroups bool) (*snapshot, error) {
	files, err := e.src.Files.GetLocalFiles(ctx, database.FileVisibilityNormal)
	if err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}
	records, err := e.src.Faces.SavedFaceIndexes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load face indexes: %w", err)
	}
	clusters, err := e.src.Clusters.SavedFaceClusters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clusters: %w", err)
	}

	s := &snapshot{
		files:    make(map[string]database.File, len(files)),
		records:  records,
		clusters: clusters,
	}
	for _, f := range files {
		if f.IsDeleted || f.IsHidden {
			continue
		}
		s.files[f.ID] = f
	}
	s.faces = e.buildFaceLookup(records, s.files)

	if withGroups {
		if s.groups, err = e.src.Groups.SavedCGroups(ctx); err != nil {
			return nil, fmt.Errorf("load cluster groups: %w", err)
		}
	}
	return s, nil
}

// buildFaceLookup indexes every face whose owning file is visible.
func (e *Engine) buildFaceLookup(records []database.FaceIndex, files map[string]database.File) map[string]faceRef {
	faces := make(map[string]faceRef)
	for _, record := range records {
		for _, face := range record.Faces {
			fileID, ok := facematch.FileIDFromFaceID(face.FaceID)
			if !ok {
				continue
			}
			file, ok := files[fileID]
			if !ok {
				continue
			}
			faces[face.FaceID] = faceRef{FaceID: face.FaceID, File: file, Score: face.Score}
		}
	}
	return faces
}

// visibleFaces returns the distinct visible faces of the clusters in stored order
func (s *snapshot) visibleFaces(clusters ...database.FaceCluster) []faceRef {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []faceRef
	for _, c := range clusters {
		for _, id := range c.Faces {
			ref, ok := s.faces[id]
			if !ok || !seen.Add(id) {
				continue
			}
			out = append(out, ref)
		}
	}
	return out
}

// localCluster returns the local cluster with the given ID
func (s *snapshot) localCluster(id string) (database.FaceCluster, bool) {
	for _, c := range s.clusters {
		if c.ID == id {
			return c, true
		}
	}
	return database.FaceCluster{}, false
}

// loadIgnored returns the clusters ignored for the person, empty without a store
func (e *Engine) loadIgnored(ctx context.Context, personID string) (mapset.Set[string], error) {
	if e.src.Ignored == nil {
		return mapset.NewThreadUnsafeSet[string](), nil
	}
	ignored, err := e.src.Ignored.LoadIgnored(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("load ignored clusters: %w", err)
	}
	if ignored == nil {
		return mapset.NewThreadUnsafeSet[string](), nil
	}
	return ignored, nil
}
