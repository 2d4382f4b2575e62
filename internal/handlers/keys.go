package handlers

import (
	"net/http"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/keymap"
)

// KeyHandler receives normalized key-down events from the front-end and
// feeds them into the shortcut dispatcher. The response tells the browser
// whether to suppress its default handling.
type KeyHandler struct {
	keys   *keymap.Dispatcher
	logger *common.Logger
}

func NewKeyHandler(keys *keymap.Dispatcher, logger *common.Logger) *KeyHandler {
	return &KeyHandler{keys: keys, logger: logger}
}

// ServeHTTP handles POST /api/keys.
func (h *KeyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var ev keymap.Event
	if !DecodeJSON(w, r, &ev) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{
		"handled": h.keys.Dispatch(ev),
	})
}
