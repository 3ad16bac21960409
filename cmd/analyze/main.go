package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/config"
	"surveypulse/internal/repository"
	"surveypulse/internal/service"
)

// One-shot batch run: classifies every eligible free-text answer in the
// store and replaces each survey's metrics snapshot. Classification
// fallbacks are not fatal; the process exits 0 once the run completes.
func main() {
	cfg := config.Load()
	classifierCfg := config.DefaultClassifierConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DatabaseName)

	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	metricsRepo := repository.NewMetricsRepo(db)

	classifier := service.NewClassifierClient(classifierCfg)
	analysisSvc := service.NewAnalysisService(
		surveyRepo, responseRepo, metricsRepo, classifier, nil,
		time.Duration(cfg.ClassifyDelayMS)*time.Millisecond,
	)

	if !classifierCfg.IsEnabled() {
		log.Println("Warning: HF_API_KEY not set, all classifications will use the neutral fallback")
	}

	started := time.Now()
	summary, err := analysisSvc.Run(ctx)
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	fmt.Println("=== Analysis run complete ===")
	fmt.Printf("Duration:            %s\n", time.Since(started).Round(time.Millisecond))
	fmt.Printf("Surveys processed:   %d\n", summary.SurveysProcessed)
	fmt.Printf("Surveys failed:      %d\n", summary.SurveysFailed)
	fmt.Printf("Answers classified:  %d\n", summary.AnswersClassified)
	fmt.Printf("Fallbacks used:      %d\n", summary.FallbacksUsed)
	for _, failure := range summary.Failures {
		fmt.Printf("  failed: %s\n", failure)
	}
}
