package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/services"
)

func (s *Server) handleWeakWords(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if r.URL.Query().Get("limit") == "" {
		limit = services.DefaultWeakWordsLimit
	}
	refresh := false
	if raw := r.URL.Query().Get("refresh"); raw != "" {
		if refresh, err = strconv.ParseBool(raw); err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid refresh: "+raw))
			return
		}
	}

	res, err := s.StatsService.WeakWords(r.Context(), profile.ID, limit, refresh)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleReviewPlan(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}

	plan, err := s.StatsService.ReviewPlan(r.Context(), profile.ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}
