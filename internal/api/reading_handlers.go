package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/wordflash/internal/models"
)

type flagRequest struct {
	PassageIDs []int64 `json:"passage_ids"`
}

type corpusRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleReadingPreview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req models.ReadingRequest
	var err error
	if req.TargetWords, err = queryInt(r, "target_words"); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Days, err = queryInt(r, "days"); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Variant, err = queryInt(r, "variant"); err != nil {
		handleError(w, r, err)
		return
	}

	preview, err := s.ReadingService.Preview(r.Context(), profile.ID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, preview)
}

func (s *Server) handleFlagPassages(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req flagRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	n, err := s.ReadingService.Flag(r.Context(), profile.ID, req.PassageIDs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"flagged": n})
}

func (s *Server) handleCorpora(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	corpora, err := s.ReadingService.Corpora(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"corpora": corpora})
}

func (s *Server) handleSetCorpus(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	var req corpusRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.ReadingService.SetCorpusEnabled(r.Context(), profile.ID, slug, req.Enabled); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"slug": slug, "enabled": req.Enabled})
}
