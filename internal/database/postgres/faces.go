package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/pgvector/pgvector-go"
)

// FaceRepository provides PostgreSQL-backed face index storage.
type FaceRepository struct {
	pool *Pool
}

// NewFaceRepository creates a new PostgreSQL face repository.
func NewFaceRepository(pool *Pool) *FaceRepository {
	return &FaceRepository{pool: pool}
}

// SavedFaceIndexes returns the faces of every processed file grouped by file.
func (r *FaceRepository) SavedFaceIndexes(ctx context.Context) ([]database.FaceIndex, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT file_id, face_id, score, embedding
		FROM faces
		ORDER BY file_id, face_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query faces: %w", err)
	}
	defer rows.Close()

	var indexes []database.FaceIndex
	for rows.Next() {
		var fileID string
		var face database.StoredFace
		var vec pgvector.Vector
		if err := rows.Scan(&fileID, &face.FaceID, &face.Score, &vec); err != nil {
			return nil, fmt.Errorf("scan face: %w", err)
		}
		face.Embedding = vec.Slice()

		// Rows are ordered by file, so a new file starts a new index.
		if n := len(indexes); n == 0 || indexes[n-1].FileID != fileID {
			indexes = append(indexes, database.FaceIndex{FileID: fileID})
		}
		last := &indexes[len(indexes)-1]
		last.Faces = append(last.Faces, face)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faces: %w", err)
	}
	return indexes, nil
}

// SaveFaceIndex stores the faces of a file (replaces existing faces for that file).
func (r *FaceRepository) SaveFaceIndex(ctx context.Context, index database.FaceIndex) error {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM faces WHERE file_id = $1", index.FileID); err != nil {
		return fmt.Errorf("delete faces of %s: %w", index.FileID, err)
	}

	for _, face := range index.Faces {
		if len(face.Embedding) != database.FaceEmbeddingDim {
			return fmt.Errorf("face %s: embedding has %d dimensions, want %d",
				face.FaceID, len(face.Embedding), database.FaceEmbeddingDim)
		}
		vec := pgvector.NewVector(face.Embedding)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO faces (face_id, file_id, score, embedding, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (face_id) DO UPDATE
			SET file_id = EXCLUDED.file_id, score = EXCLUDED.score, embedding = EXCLUDED.embedding
		`, face.FaceID, index.FileID, face.Score, vec)
		if err != nil {
			return fmt.Errorf("insert face %s: %w", face.FaceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit faces of %s: %w", index.FileID, err)
	}
	return nil
}

// Count returns the total number of faces stored.
func (r *FaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM faces").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count faces: %w", err)
	}
	return count, nil
}
