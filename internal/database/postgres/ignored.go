package postgres

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// IgnoredClusterRepository persists clusters a user rejected as suggestions.
type IgnoredClusterRepository struct {
	pool *Pool
}

// NewIgnoredClusterRepository creates a new PostgreSQL ignored cluster repository.
func NewIgnoredClusterRepository(pool *Pool) *IgnoredClusterRepository {
	return &IgnoredClusterRepository{pool: pool}
}

// LoadIgnored returns the IDs of clusters ignored for a person.
func (r *IgnoredClusterRepository) LoadIgnored(ctx context.Context, personID string) (mapset.Set[string], error) {
	rows, err := r.pool.Query(ctx, "SELECT cluster_id FROM ignored_clusters WHERE person_id = $1", personID)
	if err != nil {
		return nil, fmt.Errorf("query ignored clusters: %w", err)
	}
	defer rows.Close()

	ignored := mapset.NewSet[string]()
	for rows.Next() {
		var clusterID string
		if err := rows.Scan(&clusterID); err != nil {
			return nil, fmt.Errorf("scan ignored cluster: %w", err)
		}
		ignored.Add(clusterID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ignored clusters: %w", err)
	}
	return ignored, nil
}

// SaveIgnored records an ignored cluster. Saving the same pair twice is a no-op.
func (r *IgnoredClusterRepository) SaveIgnored(ctx context.Context, personID, clusterID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ignored_clusters (person_id, cluster_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (person_id, cluster_id) DO NOTHING
	`, personID, clusterID)
	if err != nil {
		return fmt.Errorf("save ignored cluster: %w", err)
	}
	return nil
}
