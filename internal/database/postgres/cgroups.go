package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/lib/pq"
)

// ClusterGroupRepository provides PostgreSQL-backed storage of synced cluster groups.
type ClusterGroupRepository struct {
	pool *Pool
}

// NewClusterGroupRepository creates a new PostgreSQL cluster group repository.
func NewClusterGroupRepository(pool *Pool) *ClusterGroupRepository {
	return &ClusterGroupRepository{pool: pool}
}

// SavedCGroups returns all cluster groups with their assigned clusters in stored order.
func (r *ClusterGroupRepository) SavedCGroups(ctx context.Context) ([]database.ClusterGroup, error) {
	groups, err := r.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	byID := make(map[string]int, len(groups))
	for i := range groups {
		byID[groups[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT group_id, cluster_id, face_ids
		FROM cluster_group_clusters
		ORDER BY group_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query assigned clusters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		var c database.FaceCluster
		if err := rows.Scan(&groupID, &c.ID, pq.Array(&c.Faces)); err != nil {
			return nil, fmt.Errorf("scan assigned cluster: %w", err)
		}
		i, ok := byID[groupID]
		if !ok {
			continue
		}
		groups[i].Data.Assigned = append(groups[i].Data.Assigned, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assigned clusters: %w", err)
	}

	return groups, nil
}

func (r *ClusterGroupRepository) loadGroups(ctx context.Context) ([]database.ClusterGroup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, is_hidden, avatar_face_id, updated_at
		FROM cluster_groups
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query cluster groups: %w", err)
	}
	defer rows.Close()

	var groups []database.ClusterGroup
	for rows.Next() {
		var g database.ClusterGroup
		var name, avatar sql.NullString
		var updatedAt sql.NullTime
		if err := rows.Scan(&g.ID, &name, &g.Data.IsHidden, &avatar, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan cluster group: %w", err)
		}
		g.Data.Name = name.String
		g.Data.AvatarFaceID = avatar.String
		g.UpdatedAt = updatedAt.Time
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cluster groups: %w", err)
	}
	return groups, nil
}

// nullIfEmpty stores absent optional strings as NULL.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// SaveCGroup upserts a cluster group and replaces its assigned clusters.
func (r *ClusterGroupRepository) SaveCGroup(ctx context.Context, group database.ClusterGroup) error {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cluster_groups (id, name, is_hidden, avatar_face_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    is_hidden = EXCLUDED.is_hidden,
		    avatar_face_id = EXCLUDED.avatar_face_id,
		    updated_at = NOW()
	`, group.ID, nullIfEmpty(group.Data.Name), group.Data.IsHidden, nullIfEmpty(group.Data.AvatarFaceID))
	if err != nil {
		return fmt.Errorf("upsert cluster group %s: %w", group.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cluster_group_clusters WHERE group_id = $1", group.ID); err != nil {
		return fmt.Errorf("clear assigned clusters of %s: %w", group.ID, err)
	}

	for pos, c := range group.Data.Assigned {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cluster_group_clusters (group_id, cluster_id, face_ids, position)
			VALUES ($1, $2, $3, $4)
		`, group.ID, c.ID, pq.Array(faceIDArray(c.Faces)), pos)
		if err != nil {
			return fmt.Errorf("insert assigned cluster %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cluster group %s: %w", group.ID, err)
	}
	return nil
}
