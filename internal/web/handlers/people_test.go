package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePeopleService is a PeopleService with canned results
type fakePeopleService struct {
	people      []people.Person
	peopleErr   error
	suggestions *people.SuggestionsAndChoices
	suggestErr  error
	ignoreErr   error
	similar     []people.SimilarFace
	similarErr  error

	ignored      []string
	similarLimit int
}

func (f *fakePeopleService) ReconstructPeople(ctx context.Context) ([]people.Person, error) {
	return f.people, f.peopleErr
}

func (f *fakePeopleService) FindNamedPerson(ctx context.Context, personID string) (people.CGroupPerson, error) {
	if f.peopleErr != nil {
		return people.CGroupPerson{}, f.peopleErr
	}
	for _, p := range people.FilterNamedPeople(f.people) {
		if p.ID == personID {
			return p, nil
		}
	}
	return people.CGroupPerson{}, people.ErrPersonNotFound
}

func (f *fakePeopleService) SuggestionsAndChoicesForPerson(ctx context.Context, person people.CGroupPerson) (*people.SuggestionsAndChoices, error) {
	return f.suggestions, f.suggestErr
}

func (f *fakePeopleService) IgnoreCluster(ctx context.Context, personID, clusterID string) error {
	if f.ignoreErr != nil {
		return f.ignoreErr
	}
	f.ignored = append(f.ignored, personID+"/"+clusterID)
	return nil
}

func (f *fakePeopleService) SimilarFaces(ctx context.Context, faceID string, k int) ([]people.SimilarFace, error) {
	f.similarLimit = k
	return f.similar, f.similarErr
}

func testPeople() []people.Person {
	return []people.Person{
		people.CGroupPerson{
			PersonInfo: people.PersonInfo{ID: "cg1", FileIDs: []string{"1", "2"}, DisplayFaceID: "1_a"},
			Name:       "Jiří Novák",
			CGroup: database.ClusterGroup{ID: "cg1", Data: database.ClusterGroupData{
				Name:     "Jiří Novák",
				Assigned: []database.FaceCluster{{ID: "c1"}, {ID: "c2"}},
			}},
		},
		people.CGroupPerson{
			PersonInfo: people.PersonInfo{ID: "cg2", FileIDs: []string{"3"}, DisplayFaceID: "3_a"},
			Name:       "Anna",
		},
		people.ClusterPerson{
			PersonInfo: people.PersonInfo{ID: "c9", FileIDs: []string{"4"}, DisplayFaceID: "4_a"},
			Cluster:    database.FaceCluster{ID: "c9"},
		},
	}
}

func TestPeopleHandler_List(t *testing.T) {
	handler := NewPeopleHandler(&fakePeopleService{people: testPeople()})

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/people", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	var result []PersonResponse
	parseJSONResponse(t, recorder, &result)

	require.Len(t, result, 3)
	assert.Equal(t, "cg1", result[0].ID)
	assert.Equal(t, people.KindCGroup, result[0].Kind)
	assert.Equal(t, 2, result[0].FileCount)
	assert.Equal(t, []string{"c1", "c2"}, result[0].ClusterIDs)
	assert.Equal(t, people.KindCluster, result[2].Kind)
	assert.Empty(t, result[2].Name)
	assert.Equal(t, []string{"c9"}, result[2].ClusterIDs)
}

func TestPeopleHandler_List_NameQuery(t *testing.T) {
	handler := NewPeopleHandler(&fakePeopleService{people: testPeople()})

	tests := []struct {
		query string
		want  []string
	}{
		{"jiri", []string{"cg1"}},
		{"NOVÁK", []string{"cg1"}},
		{"ann", []string{"cg2"}},
		{"nobody", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.List(recorder, httptest.NewRequest("GET", "/api/v1/people?q="+url.QueryEscape(tc.query), nil))

			assertStatusCode(t, recorder, http.StatusOK)
			var result []PersonResponse
			parseJSONResponse(t, recorder, &result)

			ids := []string{}
			for _, p := range result {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestPeopleHandler_List_StorageError(t *testing.T) {
	handler := NewPeopleHandler(&fakePeopleService{peopleErr: errors.New("db down")})

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/people", nil))

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	assertJSONError(t, recorder, "internal server error")
}

func TestPeopleHandler_ListNamed(t *testing.T) {
	handler := NewPeopleHandler(&fakePeopleService{people: testPeople()})

	recorder := httptest.NewRecorder()
	handler.ListNamed(recorder, httptest.NewRequest("GET", "/api/v1/people/named", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	var result []PersonResponse
	parseJSONResponse(t, recorder, &result)
	require.Len(t, result, 2)
	assert.Equal(t, "cg1", result[0].ID)
	assert.Equal(t, "cg2", result[1].ID)
}

func TestPeopleHandler_Suggestions(t *testing.T) {
	svc := &fakePeopleService{
		people: testPeople(),
		suggestions: &people.SuggestionsAndChoices{
			RunID: "run-1",
			Choices: []people.AnnotatedCluster{
				{Cluster: database.FaceCluster{ID: "c1"}, Accepted: true, Fixed: true},
			},
			Suggestions: []people.AnnotatedCluster{
				{Cluster: database.FaceCluster{ID: "c5"}, Similarity: 0.9},
			},
		},
	}
	handler := NewPeopleHandler(svc)

	req := requestWithChiParams(httptest.NewRequest("GET", "/api/v1/people/cg1/suggestions", nil), map[string]string{"id": "cg1"})
	recorder := httptest.NewRecorder()
	handler.Suggestions(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	var result people.SuggestionsAndChoices
	parseJSONResponse(t, recorder, &result)
	assert.Equal(t, "run-1", result.RunID)
	require.Len(t, result.Choices, 1)
	assert.True(t, result.Choices[0].Fixed)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "c5", result.Suggestions[0].Cluster.ID)
}

func TestPeopleHandler_Suggestions_Errors(t *testing.T) {
	tests := []struct {
		name     string
		personID string
		err      error
		status   int
	}{
		{"unknown person", "nope", nil, http.StatusNotFound},
		{"unnamed cluster person", "c9", nil, http.StatusNotFound},
		{"no faces", "cg1", fmt.Errorf("person cg1: %w", people.ErrPersonHasNoFaces), http.StatusConflict},
		{"storage", "cg1", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPeopleHandler(&fakePeopleService{people: testPeople(), suggestErr: tc.err})

			req := requestWithChiParams(httptest.NewRequest("GET", "/", nil), map[string]string{"id": tc.personID})
			recorder := httptest.NewRecorder()
			handler.Suggestions(recorder, req)

			assertStatusCode(t, recorder, tc.status)
		})
	}
}

func TestPeopleHandler_Ignore(t *testing.T) {
	svc := &fakePeopleService{people: testPeople()}
	handler := NewPeopleHandler(svc)

	body := strings.NewReader(`{"cluster_id": "c7"}`)
	req := requestWithChiParams(httptest.NewRequest("POST", "/api/v1/people/cg1/ignored", body), map[string]string{"id": "cg1"})
	recorder := httptest.NewRecorder()
	handler.Ignore(recorder, req)

	assertStatusCode(t, recorder, http.StatusNoContent)
	assert.Equal(t, []string{"cg1/c7"}, svc.ignored)
}

func TestPeopleHandler_Ignore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{"invalid json", `{`, nil, http.StatusBadRequest, errInvalidRequestBody},
		{"missing cluster", `{"cluster_id": "  "}`, nil, http.StatusBadRequest, "cluster_id is required"},
		{"unknown cluster", `{"cluster_id": "x"}`, people.ErrClusterNotFound, http.StatusNotFound, "cluster not found"},
		{"assigned cluster", `{"cluster_id": "c1"}`, people.ErrClusterAssigned, http.StatusConflict, "cluster is already assigned to the person"},
		{"unknown person", `{"cluster_id": "c1"}`, people.ErrPersonNotFound, http.StatusNotFound, "person not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPeopleHandler(&fakePeopleService{ignoreErr: tc.err})

			req := requestWithChiParams(httptest.NewRequest("POST", "/", strings.NewReader(tc.body)), map[string]string{"id": "cg1"})
			recorder := httptest.NewRecorder()
			handler.Ignore(recorder, req)

			assertStatusCode(t, recorder, tc.status)
			assertJSONError(t, recorder, tc.message)
		})
	}
}

func TestPeopleHandler_SimilarFaces(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		wantLimit int
	}{
		{"default", "", 20},
		{"explicit", "5", 5},
		{"capped", "1000", 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakePeopleService{similar: []people.SimilarFace{{FaceID: "2_a", FileID: "2", Similarity: 0.9}}}
			handler := NewPeopleHandler(svc)

			path := "/api/v1/faces/1_a/similar"
			if tc.limit != "" {
				path += "?limit=" + tc.limit
			}
			req := requestWithChiParams(httptest.NewRequest("GET", path, nil), map[string]string{"faceID": "1_a"})
			recorder := httptest.NewRecorder()
			handler.SimilarFaces(recorder, req)

			assertStatusCode(t, recorder, http.StatusOK)
			var result SimilarFacesResponse
			parseJSONResponse(t, recorder, &result)
			assert.Equal(t, tc.wantLimit, svc.similarLimit)
			assert.Equal(t, tc.wantLimit, result.Limit)
			require.Len(t, result.Results, 1)
			assert.Equal(t, "2_a", result.Results[0].FaceID)
		})
	}
}

func TestPeopleHandler_SimilarFaces_Errors(t *testing.T) {
	tests := []struct {
		name   string
		faceID string
		query  string
		err    error
		status int
	}{
		{"malformed face id", "nounderscore", "", nil, http.StatusBadRequest},
		{"bad limit", "1_a", "?limit=abc", nil, http.StatusBadRequest},
		{"zero limit", "1_a", "?limit=0", nil, http.StatusBadRequest},
		{"unknown face", "1_a", "", people.ErrFaceNotFound, http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPeopleHandler(&fakePeopleService{similarErr: tc.err})

			req := requestWithChiParams(httptest.NewRequest("GET", "/"+tc.query, nil), map[string]string{"faceID": tc.faceID})
			recorder := httptest.NewRecorder()
			handler.SimilarFaces(recorder, req)

			assertStatusCode(t, recorder, tc.status)
		})
	}
}

func TestPeopleHandler_SimilarFaces_EmptyResultIsArray(t *testing.T) {
	handler := NewPeopleHandler(&fakePeopleService{})

	req := requestWithChiParams(httptest.NewRequest("GET", "/", nil), map[string]string{"faceID": "1_a"})
	recorder := httptest.NewRecorder()
	handler.SimilarFaces(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	assert.Contains(t, recorder.Body.String(), `"results":[]`)
}
