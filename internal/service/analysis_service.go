package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// Classifier assigns a free-text answer to one of the candidate labels
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) ClassifiedLabel
}

// RunSummary reports the outcome of one batch pipeline run
type RunSummary struct {
	SurveysProcessed  int      `json:"surveysProcessed"`
	SurveysFailed     int      `json:"surveysFailed"`
	AnswersClassified int      `json:"answersClassified"`
	FallbacksUsed     int      `json:"fallbacksUsed"`
	Failures          []string `json:"failures,omitempty"`
}

// AnalysisService runs the classification and aggregation pipeline over
// every survey in the store. Surveys are processed one at a time; a
// failure in one survey never aborts the rest of the run.
type AnalysisService struct {
	surveys    repository.SurveyRepo
	responses  repository.ResponseRepo
	metrics    repository.MetricsRepo
	classifier Classifier
	cache      cache.MetricsCache

	// Pause between inference calls so the external endpoint is not
	// overwhelmed.
	classifyDelay time.Duration
}

// NewAnalysisService creates a new analysis service. cache may be nil
// when no dashboard cache is wired (one-shot CLI runs).
func NewAnalysisService(
	surveys repository.SurveyRepo,
	responses repository.ResponseRepo,
	metrics repository.MetricsRepo,
	classifier Classifier,
	metricsCache cache.MetricsCache,
	classifyDelay time.Duration,
) *AnalysisService {
	return &AnalysisService{
		surveys:       surveys,
		responses:     responses,
		metrics:       metrics,
		classifier:    classifier,
		cache:         metricsCache,
		classifyDelay: classifyDelay,
	}
}

// Run executes the full pipeline against all surveys currently in the
// store. Each survey's metrics snapshot is fully replaced, so a rerun
// after interruption is idempotent.
func (s *AnalysisService) Run(ctx context.Context) (*RunSummary, error) {
	surveys, err := s.surveys.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load surveys: %w", err)
	}

	summary := &RunSummary{}
	for _, survey := range surveys {
		classified, fallbacks, err := s.runSurvey(ctx, survey)
		if err != nil {
			log.Printf("[Pipeline] survey %s failed: %v", survey.ID, err)
			summary.SurveysFailed++
			summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", survey.ID, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		summary.SurveysProcessed++
		summary.AnswersClassified += classified
		summary.FallbacksUsed += fallbacks
		log.Printf("[Pipeline] survey %s done: %d answers classified (%d fallbacks)", survey.ID, classified, fallbacks)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("[Pipeline] warning: failed to invalidate dashboard cache: %v", err)
		}
	}
	return summary, nil
}

func (s *AnalysisService) runSurvey(ctx context.Context, survey *model.Survey) (classified, fallbacks int, err error) {
	total, err := s.responses.CountBySurvey(ctx, survey.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count responses: %w", err)
	}
	responses, err := s.responses.GetBySurvey(ctx, survey.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load responses: %w", err)
	}

	agg := NewAggregator(survey, int(total))
	for extracted := range EligibleAnswers(survey, responses) {
		if ctx.Err() != nil {
			return 0, 0, ctx.Err()
		}
		result := s.classifier.Classify(ctx, extracted.Text, model.CandidateLabels())
		if result.Fallback {
			fallbacks++
		}
		agg.Add(model.ClassifiedAnswer{
			SurveyID:     survey.ID,
			ResponseID:   extracted.Response.ID,
			QuestionID:   extracted.Question.ID,
			RespondentID: extracted.Response.RespondentID,
			Text:         extracted.Text,
			Label:        result.Label,
			Confidence:   result.Confidence,
			Timestamp:    time.Now(),
		})
		classified++
		sleepCtx(ctx, s.classifyDelay)
	}

	record := agg.Finalize()
	if err := s.metrics.Upsert(ctx, survey.ID, record); err != nil {
		return 0, 0, &PersistenceError{SurveyID: survey.ID, Err: err}
	}
	return classified, fallbacks, nil
}
