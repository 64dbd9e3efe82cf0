package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/photo-people/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	peopleHandler := handlers.NewPeopleHandler(s.engine)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)

		// People
		r.Get("/people", peopleHandler.List)
		r.Get("/people/named", peopleHandler.ListNamed)
		r.Get("/people/{id}/suggestions", peopleHandler.Suggestions)
		r.Post("/people/{id}/ignored", peopleHandler.Ignore)

		// Faces
		r.Get("/faces/{faceID}/similar", peopleHandler.SimilarFaces)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})
}
