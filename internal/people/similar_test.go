package people

import (
	"context"
	"testing"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarFaces(t *testing.T) {
	f := newFixture()
	a := f.localCluster("a", 2, unitVec(0))
	far := f.localCluster("far", 1, unitVec(1))
	near := f.newCluster("near", 1, vec(0.9, 0.1))
	f.addGroup("cg", "Alice", near)

	// Face in a deleted file never shows up
	f.files.AddFiles(database.File{ID: "gone", IsDeleted: true})
	f.faces.AddFaceIndex("gone", database.StoredFace{FaceID: "gone_00000_00000_10000_10000", Embedding: unitVec(0)})

	e := f.engine()
	query := a.Faces[0]

	got, err := e.SimilarFaces(context.Background(), query, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, a.Faces[1], got[0].FaceID)
	assert.Equal(t, "a", got[0].ClusterID)
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-4)

	assert.Equal(t, near.Faces[0], got[1].FaceID)
	assert.Equal(t, "near", got[1].ClusterID)

	for _, s := range got {
		assert.NotEqual(t, query, s.FaceID)
		assert.NotEqual(t, "gone_00000_00000_10000_10000", s.FaceID)
		assert.NotEqual(t, far.Faces[0], s.FaceID)
		assert.NotEmpty(t, s.FileID)
	}
}

func TestSimilarFaces_LimitLargerThanIndex(t *testing.T) {
	f := newFixture()
	a := f.localCluster("a", 3, unitVec(0))

	got, err := f.engine().SimilarFaces(context.Background(), a.Faces[0], 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSimilarFaces_UnknownFace(t *testing.T) {
	f := newFixture()
	f.localCluster("a", 2, unitVec(0))

	_, err := f.engine().SimilarFaces(context.Background(), "404_00000_00000_10000_10000", 5)
	assert.ErrorIs(t, err, ErrFaceNotFound)
}

func TestSimilarFaces_ZeroLimit(t *testing.T) {
	f := newFixture()
	a := f.localCluster("a", 2, unitVec(0))

	got, err := f.engine().SimilarFaces(context.Background(), a.Faces[0], 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
