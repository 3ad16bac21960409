package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/model"
)

type fakeSurveyRepo struct {
	surveys []*model.Survey
}

func (f *fakeSurveyRepo) GetAll(ctx context.Context) ([]*model.Survey, error) {
	return f.surveys, nil
}

func (f *fakeSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	for _, s := range f.surveys {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

type fakeResponseRepo struct {
	responses map[string][]*model.Response
}

func (f *fakeResponseRepo) GetBySurvey(ctx context.Context, surveyID string) ([]*model.Response, error) {
	return f.responses[surveyID], nil
}

func (f *fakeResponseRepo) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	return int64(len(f.responses[surveyID])), nil
}

type fakeMetricsRepo struct {
	records map[string]*model.MetricsRecord
	failFor string
}

func (f *fakeMetricsRepo) Upsert(ctx context.Context, surveyID string, record *model.MetricsRecord) error {
	if surveyID == f.failFor {
		return errors.New("write concern failure")
	}
	if f.records == nil {
		f.records = make(map[string]*model.MetricsRecord)
	}
	f.records[surveyID] = record
	return nil
}

func (f *fakeMetricsRepo) GetLatest(ctx context.Context, surveyID string) (*model.MetricsDocument, error) {
	rec, ok := f.records[surveyID]
	if !ok {
		return nil, nil
	}
	return &model.MetricsDocument{SurveyID: surveyID, Content: *rec}, nil
}

// GetAll mirrors the mongo repo's stable survey-id sort.
func (f *fakeMetricsRepo) GetAll(ctx context.Context) ([]*model.MetricsDocument, error) {
	var docs []*model.MetricsDocument
	for id, rec := range f.records {
		docs = append(docs, &model.MetricsDocument{SurveyID: id, Content: *rec})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].SurveyID < docs[j].SurveyID })
	return docs, nil
}

// labelByKeyword classifies deterministically without the network.
type labelByKeyword struct{}

func (labelByKeyword) Classify(ctx context.Context, text string, labels []string) ClassifiedLabel {
	switch {
	case len(text) > 0 && text[0] == 'E': // "Excelente..."
		return ClassifiedLabel{Label: model.LabelPositiveExperience, Confidence: 0.9}
	default:
		return FallbackClassification()
	}
}

func pipelineFixtures() (*fakeSurveyRepo, *fakeResponseRepo) {
	surveys := &fakeSurveyRepo{surveys: []*model.Survey{
		{
			ID:   "enc-1",
			Name: "Satisfacción",
			Questions: []model.Question{
				{ID: "q1", Type: model.QuestionTypeOpenText, Text: "Comentarios"},
			},
		},
		{
			ID:   "enc-2",
			Name: "Soporte",
			Questions: []model.Question{
				{ID: "q1", Type: model.QuestionTypeOpenText, Text: "Describa el problema"},
			},
		},
	}}
	responses := &fakeResponseRepo{responses: map[string][]*model.Response{
		"enc-1": {
			response("r1", model.AnswerItem{QuestionID: "q1", Value: "Excelente servicio, muy recomendable"}),
			response("r2", model.AnswerItem{QuestionID: "q1", Value: "no"}),
			response("r3"),
		},
		"enc-2": {
			response("r4", model.AnswerItem{QuestionID: "q1", Value: "la pantalla no carga los archivos"}),
		},
	}}
	return surveys, responses
}

func TestAnalysisRun(t *testing.T) {
	surveys, responses := pipelineFixtures()
	metrics := &fakeMetricsRepo{}

	svc := NewAnalysisService(surveys, responses, metrics, labelByKeyword{}, nil, 0)
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SurveysProcessed)
	assert.Zero(t, summary.SurveysFailed)
	assert.Equal(t, 2, summary.AnswersClassified)
	assert.Equal(t, 1, summary.FallbacksUsed)

	rec1 := metrics.records["enc-1"]
	require.NotNil(t, rec1)
	// totalResponses counts every response document, including the
	// short answer and the empty one.
	assert.Equal(t, 3, rec1.TotalResponses)
	assert.Equal(t, 1, rec1.Classifications[model.LabelPositiveExperience].Count)
	assert.Equal(t, 1, rec1.SentimentTotals.Positive)

	rec2 := metrics.records["enc-2"]
	require.NotNil(t, rec2)
	assert.Equal(t, 1, rec2.TotalResponses)
	assert.Equal(t, 1, rec2.Classifications[model.LabelNeutralComment].Count)
}

func TestAnalysisRunFailureIsolation(t *testing.T) {
	surveys, responses := pipelineFixtures()
	metrics := &fakeMetricsRepo{failFor: "enc-1"}

	svc := NewAnalysisService(surveys, responses, metrics, labelByKeyword{}, nil, 0)
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SurveysProcessed)
	assert.Equal(t, 1, summary.SurveysFailed)
	require.Len(t, summary.Failures, 1)
	assert.Contains(t, summary.Failures[0], "enc-1")

	// The other survey still got its snapshot.
	assert.NotNil(t, metrics.records["enc-2"])
	assert.Nil(t, metrics.records["enc-1"])
}

func TestAnalysisRunRerunIsIdempotent(t *testing.T) {
	surveys, responses := pipelineFixtures()
	metrics := &fakeMetricsRepo{}

	svc := NewAnalysisService(surveys, responses, metrics, labelByKeyword{}, nil, 0)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	first := metrics.records["enc-1"].Clone()

	_, err = svc.Run(context.Background())
	require.NoError(t, err)
	second := metrics.records["enc-1"]

	first.AnalysisTimestamp = second.AnalysisTimestamp
	assert.Equal(t, first, second)
}
