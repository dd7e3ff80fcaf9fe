package router

import (
	"github.com/gin-gonic/gin"

	"chainsight/internal/config"
	"chainsight/internal/handler"
	"chainsight/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	analysisH *handler.AnalysisHandler,
	datasetH *handler.DatasetHandler,
	debugH *handler.DebugHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Analysis routes
	analysis := v1.Group("/analysis")
	analysis.POST("", analysisH.Analyze)
	analysis.POST("/batch", analysisH.AnalyzeBatch)
	analysis.GET("/ping", analysisH.Ping)
	analysis.GET("/history", analysisH.History)

	// Dataset routes
	datasets := v1.Group("/datasets")
	datasets.POST("", datasetH.Upload)

	// Credential diagnostic, never registered in production
	if !cfg.Server.IsProduction() {
		v1.GET("/debug/env", debugH.Env)
	}

	return r
}
