package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	AnalysisService  *service.AnalysisService
	DashboardService *service.DashboardService
	Exporter         *service.ReportExporter
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	metricsHandler := handler.NewMetricsHandler(c.DashboardService)
	analysisHandler := handler.NewAnalysisHandler(c.AnalysisService)
	exportHandler := handler.NewExportHandler(c.DashboardService, c.Exporter)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/metrics", metricsHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/metrics/{surveyId}", metricsHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/analysis/run", analysisHandler.Run).Methods("POST", "OPTIONS")
	v1.HandleFunc("/export", exportHandler.Export).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
