package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/photo-people/internal/database"
)

// FileRepository provides PostgreSQL-backed access to the local file table.
type FileRepository struct {
	pool *Pool
}

// NewFileRepository creates a new PostgreSQL file repository.
func NewFileRepository(pool *Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

// GetLocalFiles returns non-deleted files of the requested visibility.
func (r *FileRepository) GetLocalFiles(ctx context.Context, kind database.FileVisibility) ([]database.File, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, creation_time, is_deleted, is_hidden
		FROM files
		WHERE NOT is_deleted AND is_hidden = $1
		ORDER BY id
	`, kind == database.FileVisibilityHidden)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var files []database.File
	for rows.Next() {
		var f database.File
		if err := rows.Scan(&f.ID, &f.CreationTime, &f.IsDeleted, &f.IsHidden); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

// SaveFiles upserts files in a single transaction.
func (r *FileRepository) SaveFiles(ctx context.Context, files []database.File) error {
	if len(files) == 0 {
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO files (id, creation_time, is_deleted, is_hidden)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET creation_time = EXCLUDED.creation_time,
		    is_deleted = EXCLUDED.is_deleted,
		    is_hidden = EXCLUDED.is_hidden
	`)
	if err != nil {
		return fmt.Errorf("prepare file upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, f.ID, f.CreationTime, f.IsDeleted, f.IsHidden); err != nil {
			return fmt.Errorf("upsert file %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit files: %w", err)
	}
	return nil
}
