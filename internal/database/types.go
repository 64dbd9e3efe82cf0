package database

import (
	"time"
)

// FileVisibility selects which local files GetLocalFiles returns.
type FileVisibility int

const (
	// FileVisibilityNormal selects files that are neither deleted nor hidden.
	FileVisibilityNormal FileVisibility = iota
	// FileVisibilityHidden selects hidden, non-deleted files.
	FileVisibilityHidden
)

func (v FileVisibility) String() string {
	switch v {
	case FileVisibilityNormal:
		return "normal"
	case FileVisibilityHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// File is a locally indexed file that faces were detected in
type File struct {
	ID           string    `json:"id"`
	CreationTime time.Time `json:"creation_time"`
	IsDeleted    bool      `json:"is_deleted,omitempty"`
	IsHidden     bool      `json:"is_hidden,omitempty"`
}

// StoredFace is one detected face as persisted by the detection pipeline
type StoredFace struct {
	FaceID    string    `json:"face_id"`
	Score     float64   `json:"score"`     // Detection confidence
	Embedding []float32 `json:"embedding"` // Unit length similarity embedding
}

// FaceIndex holds all faces detected in a single file
type FaceIndex struct {
	FileID string       `json:"file_id"`
	Faces  []StoredFace `json:"faces"`
}

// FaceCluster is a group of faces produced by the upstream clustering step.
// The order of Faces has no meaning beyond picking preview faces.
type FaceCluster struct {
	ID    string   `json:"id"`
	Faces []string `json:"faces"`
}

// ClusterGroupData is the user-curated, remotely synced part of a cluster group
type ClusterGroupData struct {
	Name         string        `json:"name,omitempty"` // Empty means unnamed
	Assigned     []FaceCluster `json:"assigned"`
	IsHidden     bool          `json:"is_hidden,omitempty"`
	AvatarFaceID string        `json:"avatar_face_id,omitempty"`
}

// ClusterGroup (cgroup) is a named or hidden group of face clusters
type ClusterGroup struct {
	ID        string           `json:"id"`
	Data      ClusterGroupData `json:"data"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ExportData is a snapshot of everything the people engine reads
type ExportData struct {
	Version       int            `json:"version"`
	ExportedAt    time.Time      `json:"exported_at"`
	Files         []File         `json:"files"`
	FaceIndexes   []FaceIndex    `json:"face_indexes"`
	Clusters      []FaceCluster  `json:"clusters"`
	ClusterGroups []ClusterGroup `json:"cluster_groups"`
}

// CurrentExportVersion is the snapshot format version written and accepted
const CurrentExportVersion = 1

// FaceCount returns the number of faces across all indexes of the snapshot
func (e *ExportData) FaceCount() int {
	n := 0
	for i := range e.FaceIndexes {
		n += len(e.FaceIndexes[i].Faces)
	}
	return n
}
