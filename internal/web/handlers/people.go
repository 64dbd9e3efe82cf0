package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-people/internal/constants"
	"github.com/kozaktomas/photo-people/internal/database"
	"github.com/kozaktomas/photo-people/internal/facematch"
	"github.com/kozaktomas/photo-people/internal/people"
	"github.com/rs/zerolog"
)

// PeopleService is the part of the people engine the handlers use
type PeopleService interface {
	ReconstructPeople(ctx context.Context) ([]people.Person, error)
	FindNamedPerson(ctx context.Context, personID string) (people.CGroupPerson, error)
	SuggestionsAndChoicesForPerson(ctx context.Context, person people.CGroupPerson) (*people.SuggestionsAndChoices, error)
	IgnoreCluster(ctx context.Context, personID, clusterID string) error
	SimilarFaces(ctx context.Context, faceID string, k int) ([]people.SimilarFace, error)
}

// PeopleHandler handles people and suggestion endpoints
type PeopleHandler struct {
	engine PeopleService
}

// NewPeopleHandler creates a new people handler
func NewPeopleHandler(engine PeopleService) *PeopleHandler {
	return &PeopleHandler{engine: engine}
}

// PersonResponse represents a person in API responses
type PersonResponse struct {
	ID            string        `json:"id"`
	Kind          people.Kind   `json:"kind"`
	Name          string        `json:"name,omitempty"`
	FileCount     int           `json:"file_count"`
	FileIDs       []string      `json:"file_ids"`
	DisplayFaceID string        `json:"display_face_id"`
	DisplayFile   database.File `json:"display_file"`
	ClusterIDs    []string      `json:"cluster_ids"`
}

func personToResponse(p people.Person) PersonResponse {
	info := p.Info()
	resp := PersonResponse{
		ID:            info.ID,
		Kind:          p.Kind(),
		FileCount:     len(info.FileIDs),
		FileIDs:       info.FileIDs,
		DisplayFaceID: info.DisplayFaceID,
		DisplayFile:   info.DisplayFile,
	}
	switch v := p.(type) {
	case people.CGroupPerson:
		resp.Name = v.Name
		resp.ClusterIDs = v.AssignedClusterIDs()
	case people.ClusterPerson:
		resp.ClusterIDs = []string{v.Cluster.ID}
	}
	return resp
}

// List returns all people, optionally filtered by name with ?q=
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.engine.ReconstructPeople(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	response := make([]PersonResponse, 0, len(all))
	for _, p := range all {
		if query != "" && !facematch.NameMatches(people.Name(p), query) {
			continue
		}
		response = append(response, personToResponse(p))
	}

	respondJSON(w, http.StatusOK, response)
}

// ListNamed returns only the people backed by a named cluster group
func (h *PeopleHandler) ListNamed(w http.ResponseWriter, r *http.Request) {
	all, err := h.engine.ReconstructPeople(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	named := people.FilterNamedPeople(all)
	response := make([]PersonResponse, len(named))
	for i := range named {
		response[i] = personToResponse(named[i])
	}

	respondJSON(w, http.StatusOK, response)
}

// Suggestions returns the choices and merge suggestions for a named person
func (h *PeopleHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")

	person, err := h.engine.FindNamedPerson(r.Context(), personID)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	result, err := h.engine.SuggestionsAndChoicesForPerson(r.Context(), person)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// IgnoreRequest is the body of an ignore cluster request
type IgnoreRequest struct {
	ClusterID string `json:"cluster_id"`
}

// Ignore stops a cluster from being suggested for the person again
func (h *PeopleHandler) Ignore(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")

	var req IgnoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	req.ClusterID = strings.TrimSpace(req.ClusterID)
	if req.ClusterID == "" {
		respondError(w, http.StatusBadRequest, "cluster_id is required")
		return
	}

	if err := h.engine.IgnoreCluster(r.Context(), personID, req.ClusterID); err != nil {
		respondEngineError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("person_id", sanitizeForLog(personID)).
		Str("cluster_id", sanitizeForLog(req.ClusterID)).
		Msg("cluster ignored")
	w.WriteHeader(http.StatusNoContent)
}
