package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/phrazzld/docextract/internal/api/middleware"
	"github.com/phrazzld/docextract/internal/service"
	"github.com/phrazzld/docextract/internal/service/auth"
)

// RouterDeps are the collaborators the HTTP routes are built from.
type RouterDeps struct {
	ExtractionService service.ExtractionService
	JWTService        auth.JWTService
	Logger            *slog.Logger
}

// NewRouter builds the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.NewTraceMiddleware(log))

	authMiddleware := apimiddleware.NewAuthMiddleware(deps.JWTService)
	extractionHandler := NewExtractionHandler(deps.ExtractionService, log)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/extractions", extractionHandler.CreateExtraction)
			r.Get("/extractions", extractionHandler.ListExtractions)
			r.Get("/extractions/{id}", extractionHandler.GetExtraction)
			r.Post("/extractions/batch/get", extractionHandler.BatchGetExtractions)
			r.Post("/extractions/batch/delete", extractionHandler.BatchDeleteExtractions)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
