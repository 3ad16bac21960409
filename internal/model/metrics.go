package model

import "time"

// ClassifiedAnswer is a single classified free-text answer. It is never
// persisted on its own; the aggregator consumes it immediately.
type ClassifiedAnswer struct {
	SurveyID     string    `json:"idEncuesta"`
	ResponseID   string    `json:"idRespuesta"`
	QuestionID   string    `json:"idPregunta"`
	RespondentID string    `json:"idUsuario"`
	Text         string    `json:"texto"`
	Label        string    `json:"etiqueta"`
	Confidence   float64   `json:"confianza"`
	Timestamp    time.Time `json:"timestamp"`
}

// LabelStats holds per-label aggregation stats inside a MetricsRecord
type LabelStats struct {
	Count         int     `json:"count" bson:"count"`
	Percentage    float64 `json:"percentage" bson:"percentage"`
	AvgConfidence float64 `json:"avgConfidence" bson:"avgConfidence"`
}

// SentimentTotals buckets classified answers by sentiment
type SentimentTotals struct {
	Positive int `json:"positive" bson:"positive"`
	Negative int `json:"negative" bson:"negative"`
	Neutral  int `json:"neutral" bson:"neutral"`
}

// Sum returns the combined bucket count.
func (s SentimentTotals) Sum() int {
	return s.Positive + s.Negative + s.Neutral
}

// MetricsRecord is the current per-survey analytics snapshot. Re-running
// the pipeline replaces it; no history is retained.
type MetricsRecord struct {
	SurveyID          string                `json:"idEncuesta" bson:"idEncuesta"`
	SurveyName        string                `json:"nombreEncuesta" bson:"nombreEncuesta"`
	TotalResponses    int                   `json:"totalResponses" bson:"totalResponses"`
	Classifications   map[string]LabelStats `json:"clasificaciones" bson:"clasificaciones"`
	SentimentTotals   SentimentTotals       `json:"sentimentTotals" bson:"sentimentTotals"`
	AnalysisTimestamp time.Time             `json:"analysisTimestamp" bson:"analysisTimestamp"`
}

// ClassifiedCount returns how many answers were classified into any label.
func (r *MetricsRecord) ClassifiedCount() int {
	total := 0
	for _, st := range r.Classifications {
		total += st.Count
	}
	return total
}

// Clone returns a deep copy of the record.
func (r *MetricsRecord) Clone() *MetricsRecord {
	cp := *r
	cp.Classifications = make(map[string]LabelStats, len(r.Classifications))
	for label, st := range r.Classifications {
		cp.Classifications[label] = st
	}
	return &cp
}

// MetricsDocument is the persisted wrapper around a MetricsRecord,
// keyed by survey id in the metrics collection.
type MetricsDocument struct {
	SurveyID  string        `json:"idEncuesta" bson:"idEncuesta"`
	Content   MetricsRecord `json:"contenido" bson:"contenido"`
	CreatedAt time.Time     `json:"creadaEn" bson:"creadaEn"`
	UpdatedAt time.Time     `json:"actualizadaEn" bson:"actualizadaEn"`
}
