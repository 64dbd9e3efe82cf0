package database

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
)

// FileReader provides read-only access to the local file table
type FileReader interface {
	// GetLocalFiles returns the non-deleted files of the requested visibility
	GetLocalFiles(ctx context.Context, kind FileVisibility) ([]File, error)
}

// FaceIndexReader provides read-only access to persisted face detections
type FaceIndexReader interface {
	// SavedFaceIndexes returns the face index of every processed file
	SavedFaceIndexes(ctx context.Context) ([]FaceIndex, error)
}

// ClusterReader provides read-only access to the locally computed clusters
type ClusterReader interface {
	// SavedFaceClusters returns all unnamed clusters
	SavedFaceClusters(ctx context.Context) ([]FaceCluster, error)
}

// ClusterGroupReader provides read-only access to synced cluster groups
type ClusterGroupReader interface {
	// SavedCGroups returns all cluster groups, hidden ones included
	SavedCGroups(ctx context.Context) ([]ClusterGroup, error)
}

// IgnoredClusterStore persists clusters a user rejected as suggestions for a person
type IgnoredClusterStore interface {
	// LoadIgnored returns the IDs of clusters ignored for the person
	LoadIgnored(ctx context.Context, personID string) (mapset.Set[string], error)
	// SaveIgnored records that the cluster should not be suggested for the person again
	SaveIgnored(ctx context.Context, personID, clusterID string) error
}

// SnapshotWriter loads a snapshot produced by the upstream pipeline
type SnapshotWriter interface {
	// SaveFiles upserts files
	SaveFiles(ctx context.Context, files []File) error
	// SaveFaceIndex replaces the faces stored for one file
	SaveFaceIndex(ctx context.Context, index FaceIndex) error
	// ReplaceFaceClusters replaces the complete set of local clusters
	ReplaceFaceClusters(ctx context.Context, clusters []FaceCluster) error
	// SaveCGroup upserts a cluster group together with its assigned clusters
	SaveCGroup(ctx context.Context, group ClusterGroup) error
}
