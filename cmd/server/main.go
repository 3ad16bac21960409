package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/cache"
	"surveypulse/internal/config"
	"surveypulse/internal/repository"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Classifier config
	classifierCfg := config.DefaultClassifierConfig()
	log.Printf("Classifier config:")
	log.Printf("  Model:    %s", classifierCfg.Model)
	log.Printf("  Endpoint: %s", classifierCfg.Endpoint())
	if classifierCfg.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (classifications fall back to neutral)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.DatabaseName)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	metricsRepo := repository.NewMetricsRepo(db)

	// Initialize cache
	metricsCache := cache.NewMetricsCache(rdb)

	// Initialize services
	classifier := service.NewClassifierClient(classifierCfg)
	analysisSvc := service.NewAnalysisService(
		surveyRepo, responseRepo, metricsRepo, classifier, metricsCache,
		time.Duration(cfg.ClassifyDelayMS)*time.Millisecond,
	)
	dashboardSvc := service.NewDashboardService(metricsRepo, metricsCache, cfg.DashboardTotal)
	exporter := service.NewReportExporter()

	router := rest.NewRouter(&rest.Container{
		AnalysisService:  analysisSvc,
		DashboardService: dashboardSvc,
		Exporter:         exporter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  GET  /v1/metrics")
		log.Println("  GET  /v1/metrics/{surveyId}")
		log.Println("  POST /v1/analysis/run")
		log.Println("  POST /v1/export")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
