package service

import (
	"time"

	"surveypulse/internal/model"
)

// Aggregator incrementally builds a per-survey MetricsRecord from a
// stream of classified answers. Addition order does not affect the
// final record.
type Aggregator struct {
	record model.MetricsRecord
}

// NewAggregator starts a metrics record for the survey. totalResponses
// is the count of all response documents, classified or not.
func NewAggregator(survey *model.Survey, totalResponses int) *Aggregator {
	return &Aggregator{
		record: model.MetricsRecord{
			SurveyID:        model.NormalizeID(survey.ID),
			SurveyName:      survey.Name,
			TotalResponses:  totalResponses,
			Classifications: make(map[string]model.LabelStats),
		},
	}
}

// Add folds one classified answer into the running record. The mean is
// updated with the pre-increment count as denominator weight, so the
// running average stays exact.
func (a *Aggregator) Add(answer model.ClassifiedAnswer) {
	st := a.record.Classifications[answer.Label]
	st.AvgConfidence = (st.AvgConfidence*float64(st.Count) + answer.Confidence) / float64(st.Count+1)
	st.Count++
	a.record.Classifications[answer.Label] = st

	switch model.SentimentFor(answer.Label) {
	case model.SentimentPositive:
		a.record.SentimentTotals.Positive++
	case model.SentimentNegative:
		a.record.SentimentTotals.Negative++
	default:
		a.record.SentimentTotals.Neutral++
	}
}

// ClassifiedCount returns how many answers have been added so far.
func (a *Aggregator) ClassifiedCount() int {
	return a.record.ClassifiedCount()
}

// Finalize recomputes every percentage and stamps the record.
// Percentages are shares of all respondents, not of the classified
// subset; a survey where nobody answered keeps them at zero.
func (a *Aggregator) Finalize() *model.MetricsRecord {
	for label, st := range a.record.Classifications {
		if a.record.TotalResponses > 0 {
			st.Percentage = float64(st.Count) / float64(a.record.TotalResponses) * 100
		} else {
			st.Percentage = 0
		}
		a.record.Classifications[label] = st
	}
	a.record.AnalysisTimestamp = time.Now()
	return a.record.Clone()
}
