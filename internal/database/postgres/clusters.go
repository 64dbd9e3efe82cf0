package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/lib/pq"
)

// ClusterRepository provides PostgreSQL-backed storage of local face clusters.
type ClusterRepository struct {
	pool *Pool
}

// NewClusterRepository creates a new PostgreSQL cluster repository.
func NewClusterRepository(pool *Pool) *ClusterRepository {
	return &ClusterRepository{pool: pool}
}

// SavedFaceClusters returns all local clusters ordered by ID.
func (r *ClusterRepository) SavedFaceClusters(ctx context.Context) ([]database.FaceCluster, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, face_ids FROM face_clusters ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query clusters: %w", err)
	}
	defer rows.Close()

	var clusters []database.FaceCluster
	for rows.Next() {
		var c database.FaceCluster
		if err := rows.Scan(&c.ID, pq.Array(&c.Faces)); err != nil {
			return nil, fmt.Errorf("scan cluster: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clusters: %w", err)
	}
	return clusters, nil
}

// ReplaceFaceClusters swaps the complete cluster set in one transaction.
// The upstream clustering step always produces a full set, never a delta.
func (r *ClusterRepository) ReplaceFaceClusters(ctx context.Context, clusters []database.FaceCluster) error {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM face_clusters"); err != nil {
		return fmt.Errorf("clear clusters: %w", err)
	}

	for _, c := range clusters {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO face_clusters (id, face_ids, updated_at) VALUES ($1, $2, NOW())",
			c.ID, pq.Array(faceIDArray(c.Faces)),
		)
		if err != nil {
			return fmt.Errorf("insert cluster %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clusters: %w", err)
	}
	return nil
}

// faceIDArray maps a nil slice to an empty one since pq writes nil arrays as NULL.
func faceIDArray(faces []string) []string {
	if faces == nil {
		return []string{}
	}
	return faces
}
