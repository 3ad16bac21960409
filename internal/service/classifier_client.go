package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"surveypulse/internal/config"
)

const classifyMaxAttempts = 3

var (
	errRateLimited   = errors.New("rate limited")
	errEmptyResponse = errors.New("empty classification response")
)

// ClassifiedLabel is the outcome of a single zero-shot classification call
type ClassifiedLabel struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Fallback   bool    `json:"fallback,omitempty"`
}

// FallbackClassification is the degraded result used when the endpoint
// is unavailable or misconfigured.
func FallbackClassification() ClassifiedLabel {
	return ClassifiedLabel{Label: "comentario neutro", Confidence: 0.5, Fallback: true}
}

// ClassifierClient wraps calls to the zero-shot classification endpoint.
// A classification failure never aborts the batch pipeline: when all
// retries are exhausted the client degrades to a neutral fallback.
type ClassifierClient struct {
	cfg        *config.ClassifierConfig
	httpClient *http.Client

	// Backoff bases; tests shrink these.
	rateLimitBackoff time.Duration
	retryBackoff     time.Duration
}

// NewClassifierClient creates a new classifier client
func NewClassifierClient(cfg *config.ClassifierConfig) *ClassifierClient {
	return &ClassifierClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		rateLimitBackoff: 500 * time.Millisecond,
		retryBackoff:     300 * time.Millisecond,
	}
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify assigns the text to one of the candidate labels. The
// endpoint returns labels sorted by descending score; index 0 wins.
// Rate limits back off exponentially (500ms doubling); other transient
// failures back off linearly (300ms per attempt number).
func (c *ClassifierClient) Classify(ctx context.Context, text string, labels []string) ClassifiedLabel {
	if !c.cfg.IsEnabled() {
		return FallbackClassification()
	}

	body, err := json.Marshal(zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels: labels,
			MultiLabel:      false,
		},
	})
	if err != nil {
		log.Printf("[Classifier] ERROR: failed to encode request: %v", err)
		return FallbackClassification()
	}

	for attempt := 1; attempt <= classifyMaxAttempts; attempt++ {
		result, err := c.attempt(ctx, body)
		if err == nil {
			return result
		}
		log.Printf("[Classifier] attempt %d/%d failed: %v", attempt, classifyMaxAttempts, err)

		if attempt == classifyMaxAttempts {
			break
		}
		var backoff time.Duration
		if errors.Is(err, errRateLimited) {
			backoff = c.rateLimitBackoff << (attempt - 1)
		} else {
			backoff = c.retryBackoff * time.Duration(attempt)
		}
		if !sleepCtx(ctx, backoff) {
			break
		}
	}

	log.Printf("[Classifier] retries exhausted, using neutral fallback")
	return FallbackClassification()
}

func (c *ClassifierClient) attempt(ctx context.Context, body []byte) (ClassifiedLabel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return ClassifiedLabel{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ClassifiedLabel{}, err
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ClassifiedLabel{}, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return ClassifiedLabel{}, errRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ClassifiedLabel{}, fmt.Errorf("classification API error %d: %s", resp.StatusCode, string(respBody))
	}

	var zs zeroShotResponse
	if err := json.Unmarshal(respBody, &zs); err != nil {
		return ClassifiedLabel{}, fmt.Errorf("failed to parse classification response: %w", err)
	}
	if len(zs.Labels) == 0 || len(zs.Scores) == 0 {
		return ClassifiedLabel{}, errEmptyResponse
	}

	return ClassifiedLabel{Label: zs.Labels[0], Confidence: zs.Scores[0]}, nil
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}
