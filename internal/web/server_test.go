package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kozaktomas/photo-people/internal/config"
	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/database/mock"
	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) (*Server, *mock.MockIgnoredClusterStore) {
	t.Helper()

	files := mock.NewMockFileReader()
	faces := mock.NewMockFaceIndexReader()
	clusters := mock.NewMockClusterReader()
	groups := mock.NewMockClusterGroupReader()
	ignored := mock.NewMockIgnoredClusterStore()

	emb := make([]float32, 4)
	emb[0] = 1
	newCluster := func(id string, n int) database.FaceCluster {
		c := database.FaceCluster{ID: id}
		for i := 0; i < n; i++ {
			fileID := fmt.Sprintf("%s%d", id, i)
			files.AddFiles(database.File{ID: fileID, CreationTime: time.Unix(int64(i), 0)})
			faceID := fileID + "_00000_00000_10000_10000"
			faces.AddFaceIndex(fileID, database.StoredFace{FaceID: faceID, Score: 0.9, Embedding: emb})
			c.Faces = append(c.Faces, faceID)
		}
		return c
	}

	groups.AddGroups(database.ClusterGroup{ID: "cg1", Data: database.ClusterGroupData{
		Name:     "Alice",
		Assigned: []database.FaceCluster{newCluster("a", 3)},
	}})
	clusters.AddClusters(newCluster("b", 4), newCluster("u", 10))

	engine := people.NewEngine(people.Sources{
		Files:    files,
		Faces:    faces,
		Clusters: clusters,
		Groups:   groups,
		Ignored:  ignored,
	}, config.DefaultPolicy(), people.WithRand(people.SeededRand(1)))

	cfg := &config.Config{Web: config.WebConfig{Host: "127.0.0.1", Port: 0}}
	return NewServer(cfg, engine, zerolog.Nop()), ignored
}

func TestServer_Routes(t *testing.T) {
	srv, ignored := testServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		contains string
	}{
		{"health", "GET", "/api/v1/health", "", http.StatusOK, `"status":"ok"`},
		{"people", "GET", "/api/v1/people", "", http.StatusOK, `"id":"u"`},
		{"people query", "GET", "/api/v1/people?q=ali", "", http.StatusOK, `"name":"Alice"`},
		{"named", "GET", "/api/v1/people/named", "", http.StatusOK, `"id":"cg1"`},
		{"suggestions", "GET", "/api/v1/people/cg1/suggestions", "", http.StatusOK, `"run_id"`},
		{"suggestions unknown", "GET", "/api/v1/people/zzz/suggestions", "", http.StatusNotFound, `"error"`},
		{"ignore", "POST", "/api/v1/people/cg1/ignored", `{"cluster_id":"b"}`, http.StatusNoContent, ""},
		{"ignore assigned", "POST", "/api/v1/people/cg1/ignored", `{"cluster_id":"a"}`, http.StatusConflict, "already assigned"},
		{"ignore unknown", "POST", "/api/v1/people/cg1/ignored", `{"cluster_id":"zzz"}`, http.StatusNotFound, "cluster not found"},
		{"similar", "GET", "/api/v1/faces/b0_00000_00000_10000_10000/similar?limit=2", "", http.StatusOK, `"limit":2`},
		{"similar unknown", "GET", "/api/v1/faces/zz_00000_00000_10000_10000/similar", "", http.StatusNotFound, "face not found"},
		{"unknown route", "GET", "/api/v1/nope", "", http.StatusNotFound, "not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			recorder := httptest.NewRecorder()
			srv.Router().ServeHTTP(recorder, req)

			assert.Equal(t, tc.status, recorder.Code, recorder.Body.String())
			if tc.contains != "" {
				assert.Contains(t, recorder.Body.String(), tc.contains)
			}
		})
	}

	require.Len(t, ignored.SaveIgnoredCalls, 1)
	assert.Equal(t, "b", ignored.SaveIgnoredCalls[0].ClusterID)
}

func TestServer_IgnoredClusterLeavesSuggestions(t *testing.T) {
	srv, _ := testServer(t)

	get := func() people.SuggestionsAndChoices {
		recorder := httptest.NewRecorder()
		srv.Router().ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/people/cg1/suggestions", nil))
		require.Equal(t, http.StatusOK, recorder.Code)
		var result people.SuggestionsAndChoices
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
		return result
	}
	ids := func(clusters []people.AnnotatedCluster) []string {
		out := []string{}
		for _, c := range clusters {
			out = append(out, c.Cluster.ID)
		}
		return out
	}

	before := get()
	assert.Equal(t, []string{"u", "b"}, ids(before.Suggestions))
	assert.Equal(t, []string{"a"}, ids(before.Choices))

	recorder := httptest.NewRecorder()
	srv.Router().ServeHTTP(recorder, httptest.NewRequest("POST", "/api/v1/people/cg1/ignored", strings.NewReader(`{"cluster_id":"b"}`)))
	require.Equal(t, http.StatusNoContent, recorder.Code)

	after := get()
	assert.Equal(t, []string{"u"}, ids(after.Suggestions))
	assert.Equal(t, []string{"a", "b"}, ids(after.Choices))
	assert.False(t, after.Choices[1].Accepted)
	assert.NotEqual(t, before.RunID, after.RunID)
}
