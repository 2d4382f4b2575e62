package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
	"github.com/tlsguqwn-ship-it/rising-report/internal/share"
)

// ShareHandler publishes read-only report snapshots and serves them back,
// as JSON for the API and as a rendered page under /s/{id}.
type ShareHandler struct {
	svc     *share.Service
	ctrl    *report.Controller
	pages   *PageHandler
	baseURL string
	logger  *common.Logger
}

func NewShareHandler(svc *share.Service, ctrl *report.Controller, pages *PageHandler, baseURL string, logger *common.Logger) *ShareHandler {
	return &ShareHandler{
		svc:     svc,
		ctrl:    ctrl,
		pages:   pages,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Publish handles POST /api/share: snapshot the live document with the
// requested display options and return the share link.
func (h *ShareHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var opts models.ShareOptions
	if !DecodeJSON(w, r, &opts) {
		return
	}

	id, err := h.svc.Publish(r.Context(), h.ctrl.Document(), opts)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to publish snapshot")
		return
	}
	h.ctrl.RecordShareSnapshot(r.Context())

	WriteJSON(w, http.StatusOK, map[string]string{
		"id":  id,
		"url": h.baseURL + "/s/" + id,
	})
}

// Resolve handles GET /api/share/{id}.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snap, err := h.svc.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "shared report not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, snap)
}

// Page handles GET /s/{id}: the public read-only rendition.
func (h *ShareHandler) Page(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(r.PathValue("id"), "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	snap, err := h.svc.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pages.Render(w, "share.html", map[string]interface{}{
		"Page":        "share",
		"ShareID":     snap.ID,
		"Report":      snap.Report,
		"Options":     snap.Options,
		"PublishedAt": snap.PublishedAt,
	})
}
