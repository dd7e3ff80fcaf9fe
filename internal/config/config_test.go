package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainsight/internal/config"
	"chainsight/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.Server.IsProduction())

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Contains(t, cfg.DB.DSN(), "sslmode=disable")

	assert.False(t, cfg.S3.Enabled())

	assert.Equal(t, domain.ModeDetailed, cfg.Analyzer.AnalyzerMode())
	assert.Equal(t, "claude-3-opus-20240229", cfg.Analyzer.ModelForMode())
	assert.Equal(t, 4000, cfg.Analyzer.MaxTokens)
	assert.Equal(t, 0.2, cfg.Analyzer.Temperature)

	assert.Equal(t, int64(25), cfg.Upload.MaxFileSizeMB)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHAINSIGHT_SERVER_ENVIRONMENT", "production")
	t.Setenv("CHAINSIGHT_ANALYZER_MODE", "lightweight")
	t.Setenv("CHAINSIGHT_ANALYZER_API_KEY", "sk-ant-test")
	t.Setenv("CHAINSIGHT_S3_BUCKET", "chainsight-uploads")
	t.Setenv("CHAINSIGHT_CORS_ALLOWED_ORIGINS", "https://dashboard.chainsight.io, https://staging.chainsight.io")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, domain.ModeLightweight, cfg.Analyzer.AnalyzerMode())
	assert.Equal(t, "claude-3-haiku-20240307", cfg.Analyzer.ModelForMode())
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t,
		[]string{"https://dashboard.chainsight.io", "https://staging.chainsight.io"},
		cfg.CORS.AllowedOrigins)
	require.NoError(t, cfg.Analyzer.Validate())
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestAnalyzerConfig_ValidateMissingKey(t *testing.T) {
	a := config.AnalyzerConfig{}
	err := a.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "CHAINSIGHT_ANALYZER_API_KEY")
}
