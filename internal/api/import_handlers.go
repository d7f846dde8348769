package api

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/worker"
)

type refreshRequest struct {
	Lang string `json:"lang"`
}

// handleImportText queues a reading text for passage splitting and answers
// before the import runs.
func (s *Server) handleImportText(w http.ResponseWriter, r *http.Request) {
	var in models.TextImport
	if err := decodeJSON(w, r, &in, true); err != nil {
		handleError(w, r, err)
		return
	}
	in.Slug = strings.TrimSpace(in.Slug)
	in.Lang = strings.ToLower(strings.TrimSpace(in.Lang))
	switch {
	case in.Slug == "":
		handleError(w, r, errors.NewValidationError("slug", "cannot be empty"))
		return
	case in.Lang == "":
		handleError(w, r, errors.NewValidationError("lang", "cannot be empty"))
		return
	case strings.TrimSpace(in.Text) == "":
		handleError(w, r, errors.NewValidationError("text", "cannot be empty"))
		return
	}

	log := logger.FromContext(r.Context()).WithFields(map[string]any{"slug": in.Slug, "lang": in.Lang})
	if err := s.JobQueue.EnqueueTextImport(in); err != nil {
		handleError(w, r, enqueueError(err))
		return
	}
	log.Info("text import queued")
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued", "slug": in.Slug})
}

func (s *Server) handleRefreshIndex(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		handleError(w, r, err)
		return
	}
	lang := strings.ToLower(strings.TrimSpace(req.Lang))
	if lang == "" {
		handleError(w, r, errors.NewValidationError("lang", "cannot be empty"))
		return
	}
	if err := s.JobQueue.EnqueueIndexRefresh(lang); err != nil {
		handleError(w, r, enqueueError(err))
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued", "lang": lang})
}

func enqueueError(err error) error {
	if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
		return errors.NewUnavailableError("import queue unavailable, retry later", err)
	}
	return errors.NewInternalError(err)
}
