package service

import (
	"context"
	"log"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// DashboardService derives the presented metrics set from the stored
// snapshots: read from store, normalize to the configured display total,
// cache for the dashboard.
type DashboardService struct {
	metrics repository.MetricsRepo
	cache   cache.MetricsCache

	// displayTotal > 0 rescales the combined response total to a fixed
	// value expected by the dashboard; 0 disables normalization.
	displayTotal int
}

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(metrics repository.MetricsRepo, metricsCache cache.MetricsCache, displayTotal int) *DashboardService {
	return &DashboardService{
		metrics:      metrics,
		cache:        metricsCache,
		displayTotal: displayTotal,
	}
}

// GetMetrics returns all metrics records in stable survey-id order,
// normalized when a display total is configured. The redis cache is
// best-effort: a cache failure falls through to the store.
func (s *DashboardService) GetMetrics(ctx context.Context) ([]*model.MetricsRecord, error) {
	if s.cache != nil {
		records, err := s.cache.GetDashboard(ctx)
		if err != nil {
			log.Printf("[Dashboard] warning: cache read failed: %v", err)
		} else if records != nil {
			return records, nil
		}
	}

	docs, err := s.metrics.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]*model.MetricsRecord, 0, len(docs))
	for _, doc := range docs {
		rec := doc.Content
		records = append(records, &rec)
	}

	if s.displayTotal > 0 {
		records, err = Normalize(records, s.displayTotal)
		if err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, records); err != nil {
			log.Printf("[Dashboard] warning: cache write failed: %v", err)
		}
	}
	return records, nil
}

// GetSurveyMetrics returns the latest stored snapshot for one survey,
// or nil when the survey has never been analyzed.
func (s *DashboardService) GetSurveyMetrics(ctx context.Context, surveyID string) (*model.MetricsDocument, error) {
	return s.metrics.GetLatest(ctx, surveyID)
}
