package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-people/internal/constants"
	"github.com/kozaktomas/photo-people/internal/facematch"
	"github.com/kozaktomas/photo-people/internal/people"
)

// SimilarFacesResponse is the response of the similar faces endpoint
type SimilarFacesResponse struct {
	FaceID  string               `json:"face_id"`
	Limit   int                  `json:"limit"`
	Results []people.SimilarFace `json:"results"`
}

// SimilarFaces returns the faces closest to the given face
func (h *PeopleHandler) SimilarFaces(w http.ResponseWriter, r *http.Request) {
	faceID := chi.URLParam(r, "faceID")
	if _, ok := facematch.FileIDFromFaceID(faceID); !ok {
		respondError(w, http.StatusBadRequest, "invalid face id")
		return
	}

	limit := constants.DefaultSimilarFacesLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, constants.MaxSimilarFacesLimit)
	}

	results, err := h.engine.SimilarFaces(r.Context(), faceID, limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if results == nil {
		results = []people.SimilarFace{}
	}

	respondJSON(w, http.StatusOK, SimilarFacesResponse{
		FaceID:  faceID,
		Limit:   limit,
		Results: results,
	})
}
