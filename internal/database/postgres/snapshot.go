package postgres

import (
	"github.com/kozaktomas/photo-people/internal/database"
)

// SnapshotRepository implements database.SnapshotWriter on top of the individual repositories.
type SnapshotRepository struct {
	*FileRepository
	*FaceRepository
	*ClusterRepository
	*ClusterGroupRepository
}

var _ database.SnapshotWriter = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a snapshot writer over the pool.
func NewSnapshotRepository(pool *Pool) *SnapshotRepository {
	return &SnapshotRepository{
		FileRepository:         NewFileRepository(pool),
		FaceRepository:         NewFaceRepository(pool),
		ClusterRepository:      NewClusterRepository(pool),
		ClusterGroupRepository: NewClusterGroupRepository(pool),
	}
}
