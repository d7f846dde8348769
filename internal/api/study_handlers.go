package api

import (
	"net/http"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/models"
)

type customWordRequest struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type seedRequest struct {
	Limit int `json:"limit"`
}

func (s *Server) handleAddCustomWord(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req customWordRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.StudyService.AddCustomWord(r.Context(), profile.ID, req.Word, req.Translation); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]string{
		"word":        strings.TrimSpace(req.Word),
		"translation": strings.TrimSpace(req.Translation),
	})
}

func (s *Server) handleStartLearn(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	batch, err := s.StudyService.StartLearn(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, batch)
}

func (s *Server) handleSubmitLearn(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	sub, err := decodeSubmission(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	outcome, err := s.StudyService.SubmitLearn(r.Context(), profile.ID, sub)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleStartReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	batch, err := s.StudyService.StartReview(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, batch)
}

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	sub, err := decodeSubmission(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	outcome, err := s.StudyService.SubmitReview(r.Context(), profile.ID, sub)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleSeedReview(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req seedRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Limit < 0 {
		handleError(w, r, errors.NewValidationError("limit", "must not be negative"))
		return
	}
	added, err := s.StudyService.SeedReview(r.Context(), profile.ID, req.Limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"added": added})
}

func decodeSubmission(w http.ResponseWriter, r *http.Request) (models.Submission, error) {
	var sub models.Submission
	if err := decodeJSON(w, r, &sub, true); err != nil {
		return sub, err
	}
	return sub, nil
}
