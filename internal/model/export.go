package model

import "time"

// ExportRequest is the body accepted by the export endpoint
type ExportRequest struct {
	Format  string `json:"formato"`
	Days    int    `json:"dias,omitempty"`
	Company string `json:"empresa,omitempty"`
	Area    string `json:"area,omitempty"`
}

// GeneralSummary is the top block of an exported report
type GeneralSummary struct {
	TotalSurveys    int     `json:"totalEncuestas"`
	TotalResponses  int     `json:"totalRespuestas"`
	TotalClassified int     `json:"totalClasificadas"`
	AvgConfidence   float64 `json:"confianzaPromedio"`
}

// SurveyBreakdown is the per-survey block of an exported report
type SurveyBreakdown struct {
	SurveyID       string  `json:"idEncuesta"`
	SurveyName     string  `json:"nombreEncuesta"`
	TotalResponses int     `json:"totalRespuestas"`
	Classified     int     `json:"clasificadas"`
	TopLabel       string  `json:"etiquetaPrincipal"`
	TopLabelCount  int     `json:"conteoEtiquetaPrincipal"`
	AvgConfidence  float64 `json:"confianzaPromedio"`
}

// SatisfactionDistribution summarizes the service-satisfaction label
// across all surveys. Present only when the label was observed.
type SatisfactionDistribution struct {
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
	AvgConfidence float64 `json:"avgConfidence"`
}

// MetricsExportData is the input to the report exporter
type MetricsExportData struct {
	Title        string                    `json:"titulo"`
	GeneratedAt  time.Time                 `json:"generadoEn"`
	PeriodDays   int                       `json:"dias"`
	Company      string                    `json:"empresa,omitempty"`
	Area         string                    `json:"area,omitempty"`
	Summary      GeneralSummary            `json:"resumenGeneral"`
	Surveys      []SurveyBreakdown         `json:"encuestas"`
	Sentiment    *SentimentTotals          `json:"sentimiento,omitempty"`
	Satisfaction *SatisfactionDistribution `json:"satisfaccion,omitempty"`
}
