package service

import (
	"time"

	"surveypulse/internal/model"
)

const defaultExportDays = 30

// ValidateExportRequest checks the export parameters, applying the
// default period when none was given.
func ValidateExportRequest(req *model.ExportRequest) error {
	if req.Days == 0 {
		req.Days = defaultExportDays
	}
	if req.Days < 1 || req.Days > 365 {
		return NewValidationError("dias must be between 1 and 365, got %d", req.Days)
	}
	return nil
}

// BuildExportData combines a set of metrics records into the flat
// structure the exporter renders.
func BuildExportData(records []*model.MetricsRecord, req *model.ExportRequest) *model.MetricsExportData {
	data := &model.MetricsExportData{
		Title:       "Reporte de Métricas de Encuestas",
		GeneratedAt: time.Now(),
		PeriodDays:  req.Days,
		Company:     req.Company,
		Area:        req.Area,
		Surveys:     make([]model.SurveyBreakdown, 0, len(records)),
	}

	sentiment := model.SentimentTotals{}
	confidenceSum := 0.0
	satisfaction := model.SatisfactionDistribution{}

	for _, r := range records {
		classified := r.ClassifiedCount()

		breakdown := model.SurveyBreakdown{
			SurveyID:       r.SurveyID,
			SurveyName:     r.SurveyName,
			TotalResponses: r.TotalResponses,
			Classified:     classified,
		}

		surveyConfidenceSum := 0.0
		for label, st := range r.Classifications {
			surveyConfidenceSum += st.AvgConfidence * float64(st.Count)
			if st.Count > breakdown.TopLabelCount ||
				(st.Count == breakdown.TopLabelCount && st.Count > 0 && label < breakdown.TopLabel) {
				breakdown.TopLabel = label
				breakdown.TopLabelCount = st.Count
			}
		}
		if classified > 0 {
			breakdown.AvgConfidence = surveyConfidenceSum / float64(classified)
		}

		if st, ok := r.Classifications[model.LabelServiceSatisfaction]; ok && st.Count > 0 {
			satisfaction.AvgConfidence = (satisfaction.AvgConfidence*float64(satisfaction.Count) +
				st.AvgConfidence*float64(st.Count)) / float64(satisfaction.Count+st.Count)
			satisfaction.Count += st.Count
		}

		data.Summary.TotalSurveys++
		data.Summary.TotalResponses += r.TotalResponses
		data.Summary.TotalClassified += classified
		confidenceSum += surveyConfidenceSum

		sentiment.Positive += r.SentimentTotals.Positive
		sentiment.Negative += r.SentimentTotals.Negative
		sentiment.Neutral += r.SentimentTotals.Neutral

		data.Surveys = append(data.Surveys, breakdown)
	}

	if data.Summary.TotalClassified > 0 {
		data.Summary.AvgConfidence = confidenceSum / float64(data.Summary.TotalClassified)
	}
	if sentiment.Sum() > 0 {
		data.Sentiment = &sentiment
	}
	if satisfaction.Count > 0 {
		if data.Summary.TotalResponses > 0 {
			satisfaction.Percentage = float64(satisfaction.Count) / float64(data.Summary.TotalResponses) * 100
		}
		data.Satisfaction = &satisfaction
	}

	return data
}
