package people

import (
	"fmt"
	"time"

	"github.com/kozaktomas/photo-people/internal/config"
	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/database/mock"
)

const testDim = 8

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func unitVec(axis int) []float32 {
	v := make([]float32, testDim)
	v[axis] = 1
	return v
}

// fixture builds a consistent in-memory state for engine tests
type fixture struct {
	files    *mock.MockFileReader
	faces    *mock.MockFaceIndexReader
	clusters *mock.MockClusterReader
	groups   *mock.MockClusterGroupReader
	ignored  *mock.MockIgnoredClusterStore
	policy   config.PolicyConfig

	nextFile int
}

func newFixture() *fixture {
	return &fixture{
		files:    mock.NewMockFileReader(),
		faces:    mock.NewMockFaceIndexReader(),
		clusters: mock.NewMockClusterReader(),
		groups:   mock.NewMockClusterGroupReader(),
		ignored:  mock.NewMockIgnoredClusterStore(),
		policy:   config.DefaultPolicy(),
	}
}

func (f *fixture) engine() *Engine {
	return NewEngine(Sources{
		Files:    f.files,
		Faces:    f.faces,
		Clusters: f.clusters,
		Groups:   f.groups,
		Ignored:  f.ignored,
	}, f.policy, WithRand(SeededRand(42)))
}

// addFile adds a visible file created hoursAfterBase hours after baseTime
func (f *fixture) addFile(hoursAfterBase int) database.File {
	f.nextFile++
	file := database.File{
		ID:           fmt.Sprintf("%d", f.nextFile),
		CreationTime: baseTime.Add(time.Duration(hoursAfterBase) * time.Hour),
	}
	f.files.AddFiles(file)
	return file
}

// addFace stores one face in the file and returns its ID
func (f *fixture) addFace(file database.File, n int, score float64, emb []float32) string {
	id := fmt.Sprintf("%s_%05d_00000_%05d_10000", file.ID, n*10000, n*10000+10000)
	f.faces.AddFaceIndex(file.ID, database.StoredFace{FaceID: id, Score: score, Embedding: emb})
	return id
}

// newCluster creates n faces, each in its own new file, all with the same embedding.
// The cluster is returned but not stored anywhere.
func (f *fixture) newCluster(id string, n int, emb []float32) database.FaceCluster {
	c := database.FaceCluster{ID: id}
	for i := 0; i < n; i++ {
		file := f.addFile(f.nextFile)
		c.Faces = append(c.Faces, f.addFace(file, 0, 0.9, emb))
	}
	return c
}

// localCluster is newCluster plus storing it as a local cluster
func (f *fixture) localCluster(id string, n int, emb []float32) database.FaceCluster {
	c := f.newCluster(id, n, emb)
	f.clusters.AddClusters(c)
	return c
}

func (f *fixture) addGroup(id, name string, assigned ...database.FaceCluster) database.ClusterGroup {
	g := database.ClusterGroup{
		ID:   id,
		Data: database.ClusterGroupData{Name: name, Assigned: assigned},
	}
	f.groups.AddGroups(g)
	return g
}
