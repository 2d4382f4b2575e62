package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/interfaces"
)

// HealthHandler reports liveness and whether the report store is reachable.
type HealthHandler struct {
	kv      interfaces.KeyValueStorage
	started time.Time
	logger  *common.Logger
}

func NewHealthHandler(kv interfaces.KeyValueStorage, logger *common.Logger) *HealthHandler {
	return &HealthHandler{
		kv:      kv,
		started: time.Now(),
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/health. Storage is probed with a read of a key
// that normally does not exist; only a transport-level failure degrades the
// status.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status := "ok"
	storageStatus := "ok"
	if _, err := h.kv.Get(r.Context(), "health:probe"); err != nil {
		if !strings.Contains(err.Error(), "key not found") {
			status = "degraded"
			storageStatus = "unavailable"
			h.logger.Warn().Err(err).Msg("health check: storage probe failed")
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]string{
		"status":  status,
		"storage": storageStatus,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
