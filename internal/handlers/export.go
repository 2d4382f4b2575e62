package handlers

import (
	"net/http"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/export"
)

// ExportHandler drives the headless-browser export pipeline.
type ExportHandler struct {
	exporter *export.Exporter
	logger   *common.Logger
}

func NewExportHandler(exporter *export.Exporter, logger *common.Logger) *ExportHandler {
	return &ExportHandler{exporter: exporter, logger: logger}
}

// ServeHTTP handles POST /api/export. The format field selects per-page PNG
// capture or a single combined PDF.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Format string `json:"format"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	var (
		result *export.Result
		err    error
	)
	switch body.Format {
	case "", "png":
		result, err = h.exporter.ExportPNG(r.Context())
	case "pdf":
		result, err = h.exporter.ExportPDF(r.Context())
	default:
		WriteError(w, http.StatusBadRequest, "unknown format: "+body.Format)
		return
	}
	if err != nil {
		h.logger.Error().Str("format", body.Format).Str("error", err.Error()).Msg("export failed")
		WriteError(w, http.StatusInternalServerError, "export failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
