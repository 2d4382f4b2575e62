package handlers

import (
	"errors"
	"net/http"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
)

// DocumentHandler exposes the report controller over the JSON API. Every
// mutation responds with the resulting editor state so the front-end can
// reconcile without a second round trip.
type DocumentHandler struct {
	ctrl   *report.Controller
	logger *common.Logger
}

func NewDocumentHandler(ctrl *report.Controller, logger *common.Logger) *DocumentHandler {
	return &DocumentHandler{ctrl: ctrl, logger: logger}
}

// editorState is the standard API response payload.
type editorState struct {
	Document models.Report     `json:"document"`
	Mode     models.ReportType `json:"mode"`
	CanUndo  bool              `json:"canUndo"`
	CanRedo  bool              `json:"canRedo"`
}

func (h *DocumentHandler) state() editorState {
	return editorState{
		Document: h.ctrl.Document(),
		Mode:     h.ctrl.Mode(),
		CanUndo:  h.ctrl.CanUndo(),
		CanRedo:  h.ctrl.CanRedo(),
	}
}

// State handles GET /api/document.
func (h *DocumentHandler) State(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.state())
}

// Update handles PUT /api/document. The body is the full document; bounded
// lists outside their limits are refused and the previous state returned.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var doc models.Report
	if !DecodeJSON(w, r, &doc) {
		return
	}
	h.ctrl.OnChange(doc)
	WriteJSON(w, http.StatusOK, h.state())
}

// Undo handles POST /api/document/undo.
func (h *DocumentHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Undo()
	WriteJSON(w, http.StatusOK, h.state())
}

// Redo handles POST /api/document/redo.
func (h *DocumentHandler) Redo(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Redo()
	WriteJSON(w, http.StatusOK, h.state())
}

// Save handles POST /api/document/save.
func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Save(r.Context())
	WriteJSON(w, http.StatusOK, h.state())
}

// Reset handles POST /api/document/reset: reload the persisted document, or
// the mode template when nothing is persisted.
func (h *DocumentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ResetToTemplate(r.Context())
	WriteJSON(w, http.StatusOK, h.state())
}

// FullReset handles POST /api/document/full-reset. The destructive variant
// erases persisted state too and requires explicit confirmation.
func (h *DocumentHandler) FullReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confirmed bool `json:"confirmed"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	if err := h.ctrl.FullReset(r.Context(), body.Confirmed); err != nil {
		if errors.Is(err, report.ErrNotConfirmed) {
			WriteError(w, http.StatusBadRequest, "full reset requires confirmation")
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, h.state())
}

// SwitchMode handles POST /api/document/mode.
func (h *DocumentHandler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode models.ReportType `json:"mode"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if !body.Mode.Valid() {
		WriteError(w, http.StatusBadRequest, "unknown mode: "+string(body.Mode))
		return
	}

	if err := h.ctrl.SwitchMode(r.Context(), body.Mode); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, h.state())
}

// recentEntry is one row in the recent-saves listing. Stamp carries the
// snapshot's display timestamp exactly as the store recorded it.
type recentEntry struct {
	Index int    `json:"index"`
	Stamp string `json:"stamp"`
	Title string `json:"title"`
}

// Recent handles GET /api/recent.
func (h *DocumentHandler) Recent(w http.ResponseWriter, r *http.Request) {
	entries := []recentEntry{}
	for i, s := range h.ctrl.Recent() {
		entries = append(entries, recentEntry{
			Index: i,
			Stamp: s.SavedAt,
			Title: s.Report.Title,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// RestoreRecent handles POST /api/recent/restore. The restored snapshot
// becomes the live document with a fresh undo history.
func (h *DocumentHandler) RestoreRecent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index int `json:"index"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	if err := h.ctrl.RestoreFromHistory(body.Index); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, h.state())
}

// DeleteRecent handles POST /api/recent/delete.
func (h *DocumentHandler) DeleteRecent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index int `json:"index"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	if err := h.ctrl.DeleteHistoryEntry(r.Context(), body.Index); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Recent(w, r)
}

// entryRequest carries the id/index parameters of the list-entry endpoints.
type entryRequest struct {
	ID      string `json:"id,omitempty"`
	ThemeID string `json:"themeId,omitempty"`
	Index   int    `json:"index"`
}

// Entries handles POST /api/document/entries: structural list operations
// dispatched by op name. Out-of-bounds operations are no-ops; the response
// state tells the front-end what actually happened.
func (h *DocumentHandler) Entries(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Op string `json:"op"`
		entryRequest
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	switch body.Op {
	case "add_sector":
		h.ctrl.AddSector()
	case "remove_sector":
		h.ctrl.RemoveSector(body.ID)
	case "add_theme":
		h.ctrl.AddTheme()
	case "remove_theme":
		h.ctrl.RemoveTheme(body.ID)
	case "add_theme_stock":
		h.ctrl.AddThemeStock(body.ThemeID)
	case "remove_theme_stock":
		h.ctrl.RemoveThemeStock(body.ThemeID, body.Index)
	case "add_schedule_item":
		h.ctrl.AddScheduleItem()
	case "remove_schedule_item":
		h.ctrl.RemoveScheduleItem(body.ID)
	default:
		WriteError(w, http.StatusBadRequest, "unknown op: "+body.Op)
		return
	}
	WriteJSON(w, http.StatusOK, h.state())
}
