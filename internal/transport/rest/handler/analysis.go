package handler

import (
	"net/http"

	"surveypulse/internal/service"
)

// AnalysisHandler handles pipeline trigger endpoints
type AnalysisHandler struct {
	analysisSvc *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// Run handles POST /v1/analysis/run. The run is synchronous: individual
// classification fallbacks and per-survey failures are reported in the
// summary, not as request errors.
func (h *AnalysisHandler) Run(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analysisSvc.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
