package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"chainsight/internal/completion/anthropic"
	"chainsight/internal/config"
	"chainsight/internal/handler"
	"chainsight/internal/repository/postgres"
	"chainsight/internal/router"
	"chainsight/internal/service"
	s3storage "chainsight/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development convenience; absent .env files are not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Analyzer.Validate(); err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	runRepo := postgres.NewAnalysisRunRepo(db)

	// Initialize storage (optional; archival is disabled without a bucket)
	datasetSvcStorage := service.NewDatasetService(nil, cfg.Upload, cfg.S3)
	if cfg.S3.Enabled() {
		s3Client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		datasetSvcStorage = service.NewDatasetService(s3Client, cfg.Upload, cfg.S3)
	}

	// Initialize services
	provider := anthropic.NewClient(&cfg.Analyzer)
	analysisSvc := service.NewAnalysisService(provider, runRepo, cfg.Analyzer.AnalyzerMode())

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	datasetH := handler.NewDatasetHandler(datasetSvcStorage)
	debugH := handler.NewDebugHandler(cfg)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, analysisH, datasetH, debugH, healthH)

	log.Printf("Server starting on %s (mode: %s, model: %s)",
		cfg.Server.Port, cfg.Analyzer.Mode, cfg.Analyzer.ModelForMode())
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
