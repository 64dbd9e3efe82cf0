// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"slices"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/kozaktomas/photo-people/internal/database"
)

// MockFileReader is a mock implementation of database.FileReader
type MockFileReader struct {
	mu    sync.RWMutex
	files []database.File

	// Error injection
	GetLocalFilesError error
}

// NewMockFileReader creates a new mock file reader
func NewMockFileReader() *MockFileReader {
	return &MockFileReader{}
}

// AddFiles adds files to the mock store
func (m *MockFileReader) AddFiles(files ...database.File) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, files...)
}

// GetLocalFiles returns non-deleted files matching the visibility kind
func (m *MockFileReader) GetLocalFiles(ctx context.Context, kind database.FileVisibility) ([]database.File, error) {
	if m.GetLocalFilesError != nil {
		return nil, m.GetLocalFilesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []database.File
	for _, f := range m.files {
		if f.IsDeleted {
			continue
		}
		if f.IsHidden != (kind == database.FileVisibilityHidden) {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

// MockFaceIndexReader is a mock implementation of database.FaceIndexReader
type MockFaceIndexReader struct {
	mu      sync.RWMutex
	indexes []database.FaceIndex

	// Error injection
	SavedFaceIndexesError error
}

// NewMockFaceIndexReader creates a new mock face index reader
func NewMockFaceIndexReader() *MockFaceIndexReader {
	return &MockFaceIndexReader{}
}

// AddFaceIndex adds the faces of one file to the mock store
func (m *MockFaceIndexReader) AddFaceIndex(fileID string, faces ...database.StoredFace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexes = append(m.indexes, database.FaceIndex{FileID: fileID, Faces: faces})
}

// SavedFaceIndexes returns all face indexes
func (m *MockFaceIndexReader) SavedFaceIndexes(ctx context.Context) ([]database.FaceIndex, error) {
	if m.SavedFaceIndexesError != nil {
		return nil, m.SavedFaceIndexesError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.indexes), nil
}

// MockClusterReader is a mock implementation of database.ClusterReader
type MockClusterReader struct {
	mu       sync.RWMutex
	clusters []database.FaceCluster

	// Error injection
	SavedFaceClustersError error
}

// NewMockClusterReader creates a new mock cluster reader
func NewMockClusterReader() *MockClusterReader {
	return &MockClusterReader{}
}

// AddClusters adds clusters to the mock store
func (m *MockClusterReader) AddClusters(clusters ...database.FaceCluster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clusters = append(m.clusters, clusters...)
}

// SavedFaceClusters returns all clusters
func (m *MockClusterReader) SavedFaceClusters(ctx context.Context) ([]database.FaceCluster, error) {
	if m.SavedFaceClustersError != nil {
		return nil, m.SavedFaceClustersError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.clusters), nil
}

// MockClusterGroupReader is a mock implementation of database.ClusterGroupReader
type MockClusterGroupReader struct {
	mu     sync.RWMutex
	groups []database.ClusterGroup

	// Error injection
	SavedCGroupsError error
}

// NewMockClusterGroupReader creates a new mock cluster group reader
func NewMockClusterGroupReader() *MockClusterGroupReader {
	return &MockClusterGroupReader{}
}

// AddGroups adds cluster groups to the mock store
func (m *MockClusterGroupReader) AddGroups(groups ...database.ClusterGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = append(m.groups, groups...)
}

// SavedCGroups returns all cluster groups
func (m *MockClusterGroupReader) SavedCGroups(ctx context.Context) ([]database.ClusterGroup, error) {
	if m.SavedCGroupsError != nil {
		return nil, m.SavedCGroupsError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.groups), nil
}

// MockIgnoredClusterStore is a mock implementation of database.IgnoredClusterStore
type MockIgnoredClusterStore struct {
	mu      sync.RWMutex
	ignored map[string]mapset.Set[string]

	// Track calls
	SaveIgnoredCalls []SaveIgnoredCall

	// Error injection
	LoadIgnoredError error
	SaveIgnoredError error
}

// SaveIgnoredCall tracks a SaveIgnored call
type SaveIgnoredCall struct {
	PersonID  string
	ClusterID string
}

// NewMockIgnoredClusterStore creates a new mock ignored cluster store
func NewMockIgnoredClusterStore() *MockIgnoredClusterStore {
	return &MockIgnoredClusterStore{
		ignored: make(map[string]mapset.Set[string]),
	}
}

// LoadIgnored returns a copy of the ignored set for a person
func (m *MockIgnoredClusterStore) LoadIgnored(ctx context.Context, personID string) (mapset.Set[string], error) {
	if m.LoadIgnoredError != nil {
		return nil, m.LoadIgnoredError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if set, ok := m.ignored[personID]; ok {
		return set.Clone(), nil
	}
	return mapset.NewSet[string](), nil
}

// SaveIgnored records an ignored cluster for a person
func (m *MockIgnoredClusterStore) SaveIgnored(ctx context.Context, personID, clusterID string) error {
	if m.SaveIgnoredError != nil {
		return m.SaveIgnoredError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveIgnoredCalls = append(m.SaveIgnoredCalls, SaveIgnoredCall{PersonID: personID, ClusterID: clusterID})
	if _, ok := m.ignored[personID]; !ok {
		m.ignored[personID] = mapset.NewSet[string]()
	}
	m.ignored[personID].Add(clusterID)
	return nil
}

// MockSnapshotWriter is a mock implementation of database.SnapshotWriter
// that keeps everything it is given in memory
type MockSnapshotWriter struct {
	mu       sync.Mutex
	Files    []database.File
	Indexes  []database.FaceIndex
	Clusters []database.FaceCluster
	Groups   []database.ClusterGroup

	// Track calls
	SaveFilesCalls int

	// Error injection
	SaveFilesError     error
	SaveFaceIndexError error
	ReplaceError       error
	SaveCGroupError    error
}

// NewMockSnapshotWriter creates a new mock snapshot writer
func NewMockSnapshotWriter() *MockSnapshotWriter {
	return &MockSnapshotWriter{}
}

// SaveFiles stores files
func (m *MockSnapshotWriter) SaveFiles(ctx context.Context, files []database.File) error {
	if m.SaveFilesError != nil {
		return m.SaveFilesError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveFilesCalls++
	m.Files = append(m.Files, files...)
	return nil
}

// SaveFaceIndex stores a face index
func (m *MockSnapshotWriter) SaveFaceIndex(ctx context.Context, index database.FaceIndex) error {
	if m.SaveFaceIndexError != nil {
		return m.SaveFaceIndexError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Indexes = append(m.Indexes, index)
	return nil
}

// ReplaceFaceClusters replaces the stored clusters
func (m *MockSnapshotWriter) ReplaceFaceClusters(ctx context.Context, clusters []database.FaceCluster) error {
	if m.ReplaceError != nil {
		return m.ReplaceError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clusters = slices.Clone(clusters)
	return nil
}

// SaveCGroup stores a cluster group
func (m *MockSnapshotWriter) SaveCGroup(ctx context.Context, group database.ClusterGroup) error {
	if m.SaveCGroupError != nil {
		return m.SaveCGroupError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Groups = append(m.Groups, group)
	return nil
}
