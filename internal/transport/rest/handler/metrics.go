package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/service"
)

// MetricsHandler handles dashboard metrics endpoints
type MetricsHandler struct {
	dashboard *service.DashboardService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(dashboard *service.DashboardService) *MetricsHandler {
	return &MetricsHandler{dashboard: dashboard}
}

// List handles GET /v1/metrics
func (h *MetricsHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.dashboard.GetMetrics(r.Context())
	if err != nil {
		if service.IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /v1/metrics/{surveyId}
func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	doc, err := h.dashboard.GetSurveyMetrics(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "metrics not found for survey")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
