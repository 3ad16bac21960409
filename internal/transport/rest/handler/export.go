package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"surveypulse/internal/model"
	"surveypulse/internal/service"
)

// ExportHandler handles report export endpoints
type ExportHandler struct {
	dashboard *service.DashboardService
	exporter  *service.ReportExporter
}

// NewExportHandler creates a new export handler
func NewExportHandler(dashboard *service.DashboardService, exporter *service.ReportExporter) *ExportHandler {
	return &ExportHandler{dashboard: dashboard, exporter: exporter}
}

// Export handles POST /v1/export. Parameter errors return a clear
// error payload; no partial file is ever written.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req model.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := service.ValidateExportRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.dashboard.GetMetrics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data := service.BuildExportData(records, &req)
	result, err := h.exporter.Export(data, req.Format)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFormat) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}
