package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/model"
)

func record(surveyID string, total int, sentiment model.SentimentTotals, labels map[string]model.LabelStats) *model.MetricsRecord {
	if labels == nil {
		labels = map[string]model.LabelStats{}
	}
	return &model.MetricsRecord{
		SurveyID:        surveyID,
		SurveyName:      "Encuesta " + surveyID,
		TotalResponses:  total,
		Classifications: labels,
		SentimentTotals: sentiment,
	}
}

func sumTotals(records []*model.MetricsRecord) int {
	sum := 0
	for _, r := range records {
		sum += r.TotalResponses
	}
	return sum
}

func TestNormalizeExactSum(t *testing.T) {
	records := []*model.MetricsRecord{
		record("a", 17, model.SentimentTotals{}, nil),
		record("b", 23, model.SentimentTotals{}, nil),
		record("c", 9, model.SentimentTotals{}, nil),
	}

	for _, desired := range []int{3, 10, 49, 50, 100, 1000} {
		out, err := Normalize(records, desired)
		require.NoError(t, err, "desired=%d", desired)
		assert.Equal(t, desired, sumTotals(out), "desired=%d", desired)
	}
}

func TestNormalizeUnchangedCases(t *testing.T) {
	records := []*model.MetricsRecord{record("a", 10, model.SentimentTotals{}, nil)}

	out, err := Normalize(records, 10)
	require.NoError(t, err)
	assert.Equal(t, records, out)

	empty := []*model.MetricsRecord{record("a", 0, model.SentimentTotals{}, nil)}
	out, err = Normalize(empty, 50)
	require.NoError(t, err)
	assert.Equal(t, empty, out)
}

func TestNormalizeNeverZeroesNonzeroRecords(t *testing.T) {
	// Large first record hogs the rounded allocation; the small ones
	// must still keep their floor of 1.
	records := []*model.MetricsRecord{
		record("a", 100, model.SentimentTotals{}, nil),
		record("b", 1, model.SentimentTotals{}, nil),
		record("c", 1, model.SentimentTotals{}, nil),
	}

	out, err := Normalize(records, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, sumTotals(out))
	for i, r := range out {
		assert.GreaterOrEqual(t, r.TotalResponses, 1, "record %d", i)
	}
}

func TestNormalizeKeepsZeroRecordsAtZero(t *testing.T) {
	// The rounding remainder goes to the last record with responses; a
	// trailing survey that never got answers must not be displayed with
	// responses it does not have.
	records := []*model.MetricsRecord{
		record("a", 12, model.SentimentTotals{}, nil),
		record("b", 12, model.SentimentTotals{}, nil),
		record("c", 12, model.SentimentTotals{}, nil),
		record("d", 0, model.SentimentTotals{}, nil),
	}

	out, err := Normalize(records, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, sumTotals(out))
	assert.Equal(t, 0, out[3].TotalResponses)
	for i, r := range out[:3] {
		assert.GreaterOrEqual(t, r.TotalResponses, 1, "record %d", i)
	}
}

func TestNormalizeRejectsImpossibleTotal(t *testing.T) {
	records := []*model.MetricsRecord{
		record("a", 5, model.SentimentTotals{}, nil),
		record("b", 5, model.SentimentTotals{}, nil),
		record("c", 5, model.SentimentTotals{}, nil),
	}

	_, err := Normalize(records, 2)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestNormalizeRescalesLabelsAndSentiment(t *testing.T) {
	records := []*model.MetricsRecord{
		record("a", 20,
			model.SentimentTotals{Positive: 4, Negative: 2, Neutral: 0},
			map[string]model.LabelStats{
				model.LabelServiceSatisfaction:  {Count: 4, Percentage: 20, AvgConfidence: 0.8125},
				model.LabelMalfunctionComplaint: {Count: 2, Percentage: 10, AvgConfidence: 0.675},
			}),
		record("b", 20, model.SentimentTotals{}, nil),
	}

	out, err := Normalize(records, 80) // scale x2
	require.NoError(t, err)

	a := out[0]
	assert.Equal(t, 40, a.TotalResponses)

	sat := a.Classifications[model.LabelServiceSatisfaction]
	assert.Equal(t, 8, sat.Count)
	assert.InDelta(t, 20.0, sat.Percentage, 1e-9)
	// Confidence is sample-size independent.
	assert.InDelta(t, 0.8125, sat.AvgConfidence, 1e-9)

	// Neutral absorbs so the buckets sum to the new total.
	assert.Equal(t, 40, a.SentimentTotals.Sum())
	assert.Equal(t, 8, a.SentimentTotals.Positive)
	assert.Equal(t, 4, a.SentimentTotals.Negative)

	// Count invariant holds after rescaling.
	assert.LessOrEqual(t, a.ClassifiedCount(), a.TotalResponses)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	original := record("a", 10, model.SentimentTotals{Positive: 2},
		map[string]model.LabelStats{model.LabelCompliment: {Count: 2, Percentage: 20, AvgConfidence: 0.9}})
	records := []*model.MetricsRecord{original, record("b", 10, model.SentimentTotals{}, nil)}

	_, err := Normalize(records, 200)
	require.NoError(t, err)

	assert.Equal(t, 10, original.TotalResponses)
	assert.Equal(t, 2, original.Classifications[model.LabelCompliment].Count)
	assert.Equal(t, 2, original.SentimentTotals.Positive)
}
