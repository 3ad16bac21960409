package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"surveypulse/internal/model"
)

const dashboardKey = "dashboard:metrics"

// MetricsCache handles Redis caching of the normalized dashboard
// metrics set. The pipeline invalidates it after each run.
type MetricsCache interface {
	GetDashboard(ctx context.Context) ([]*model.MetricsRecord, error)
	SetDashboard(ctx context.Context, records []*model.MetricsRecord) error
	Invalidate(ctx context.Context) error
}

type metricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMetricsCache creates a new metrics cache
func NewMetricsCache(client *redis.Client) MetricsCache {
	return &metricsCache{
		client: client,
		ttl:    60 * time.Second,
	}
}

func (c *metricsCache) GetDashboard(ctx context.Context) ([]*model.MetricsRecord, error) {
	data, err := c.client.Get(ctx, dashboardKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []*model.MetricsRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *metricsCache) SetDashboard(ctx context.Context, records []*model.MetricsRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey, data, c.ttl).Err()
}

func (c *metricsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dashboardKey).Err()
}
