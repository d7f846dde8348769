package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Get("/profiles", s.handleProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles/{id}", s.handleGetProfile)
		r.Post("/profiles/{id}/select", s.handleSelectProfile)
		r.Delete("/profiles/{id}", s.handleDeleteProfile)

		r.Group(func(r chi.Router) {
			r.Use(limit(s.ImportLimiter))

			r.Post("/imports/texts", s.handleImportText)
			r.Post("/imports/refresh", s.handleRefreshIndex)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireProfile)

			r.Post("/words", s.handleAddCustomWord)

			r.Post("/study/learn/start", s.handleStartLearn)
			r.Post("/study/learn/submit", s.handleSubmitLearn)
			r.Post("/study/review/start", s.handleStartReview)
			r.Post("/study/review/submit", s.handleSubmitReview)
			r.Post("/study/review/seed", s.handleSeedReview)

			r.Get("/reading", s.handleReadingPreview)
			r.Post("/reading/flag", s.handleFlagPassages)
			r.Get("/reading/corpora", s.handleCorpora)
			r.Put("/reading/corpora/{slug}", s.handleSetCorpus)

			r.Get("/stats/weak-words", s.handleWeakWords)
			r.Get("/stats/review-plan", s.handleReviewPlan)
		})
	})
	return r
}
