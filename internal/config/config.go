package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"chainsight/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	CORS     CORSConfig
	Analyzer AnalyzerConfig
	Upload   UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsProduction reports whether the server runs in production mode. Debug
// affordances (the credential diagnostic endpoint) are registered only when
// this is false.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DBConfig holds PostgreSQL connection settings for analysis history.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for raw upload archival. An empty
// bucket disables archival.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether upload archival is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AnalyzerConfig holds completion backend settings. Mode selects both the
// system instruction depth and the backing model tier: one code path, not
// two API entry variants.
type AnalyzerConfig struct {
	APIKey           string  `mapstructure:"api_key"`
	Mode             string  `mapstructure:"mode"`
	DetailedModel    string  `mapstructure:"detailed_model"`
	LightweightModel string  `mapstructure:"lightweight_model"`
	PingModel        string  `mapstructure:"ping_model"`
	MaxTokens        int     `mapstructure:"max_tokens"`
	Temperature      float64 `mapstructure:"temperature"`
	TimeoutSecs      int     `mapstructure:"timeout_secs"`
}

// AnalyzerMode returns the configured mode, defaulting to detailed.
func (a *AnalyzerConfig) AnalyzerMode() domain.AnalyzerMode {
	if a.Mode == string(domain.ModeLightweight) {
		return domain.ModeLightweight
	}
	return domain.ModeDetailed
}

// ModelForMode returns the model tier matching the configured mode.
func (a *AnalyzerConfig) ModelForMode() string {
	if a.AnalyzerMode() == domain.ModeLightweight {
		return a.LightweightModel
	}
	return a.DetailedModel
}

// Validate fails fast on configuration the service cannot run without. A
// missing API key must surface here, not as a cryptic downstream auth error.
func (a *AnalyzerConfig) Validate() error {
	if a.APIKey == "" {
		return fmt.Errorf("%w: set CHAINSIGHT_ANALYZER_API_KEY", domain.ErrMissingAPIKey)
	}
	return nil
}

// UploadConfig holds spreadsheet upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// Load reads configuration from environment variables with the CHAINSIGHT_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHAINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "chainsight")
	v.SetDefault("db.password", "chainsight_secret")
	v.SetDefault("db.name", "chainsight_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults (archival disabled until a bucket is set)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Analyzer defaults
	v.SetDefault("analyzer.api_key", "")
	v.SetDefault("analyzer.mode", "detailed")
	v.SetDefault("analyzer.detailed_model", "claude-3-opus-20240229")
	v.SetDefault("analyzer.lightweight_model", "claude-3-haiku-20240307")
	v.SetDefault("analyzer.ping_model", "claude-3-haiku-20240307")
	v.SetDefault("analyzer.max_tokens", 4000)
	v.SetDefault("analyzer.temperature", 0.2)
	v.SetDefault("analyzer.timeout_secs", 120)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "CHAINSIGHT_SERVER_PORT",
		"server.read_timeout":        "CHAINSIGHT_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "CHAINSIGHT_SERVER_WRITE_TIMEOUT",
		"server.environment":         "CHAINSIGHT_SERVER_ENVIRONMENT",
		"db.host":                    "CHAINSIGHT_DB_HOST",
		"db.port":                    "CHAINSIGHT_DB_PORT",
		"db.user":                    "CHAINSIGHT_DB_USER",
		"db.password":                "CHAINSIGHT_DB_PASSWORD",
		"db.name":                    "CHAINSIGHT_DB_NAME",
		"db.sslmode":                 "CHAINSIGHT_DB_SSLMODE",
		"db.max_open":                "CHAINSIGHT_DB_MAX_OPEN",
		"db.max_idle":                "CHAINSIGHT_DB_MAX_IDLE",
		"s3.region":                  "CHAINSIGHT_S3_REGION",
		"s3.bucket":                  "CHAINSIGHT_S3_BUCKET",
		"s3.endpoint":                "CHAINSIGHT_S3_ENDPOINT",
		"s3.access_key":              "CHAINSIGHT_S3_ACCESS_KEY",
		"s3.secret_key":              "CHAINSIGHT_S3_SECRET_KEY",
		"cors.allowed_origins":       "CHAINSIGHT_CORS_ALLOWED_ORIGINS",
		"analyzer.api_key":           "CHAINSIGHT_ANALYZER_API_KEY",
		"analyzer.mode":              "CHAINSIGHT_ANALYZER_MODE",
		"analyzer.detailed_model":    "CHAINSIGHT_ANALYZER_DETAILED_MODEL",
		"analyzer.lightweight_model": "CHAINSIGHT_ANALYZER_LIGHTWEIGHT_MODEL",
		"analyzer.ping_model":        "CHAINSIGHT_ANALYZER_PING_MODEL",
		"analyzer.max_tokens":        "CHAINSIGHT_ANALYZER_MAX_TOKENS",
		"analyzer.temperature":       "CHAINSIGHT_ANALYZER_TEMPERATURE",
		"analyzer.timeout_secs":      "CHAINSIGHT_ANALYZER_TIMEOUT_SECS",
		"upload.max_file_size_mb":    "CHAINSIGHT_UPLOAD_MAX_FILE_SIZE_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CHAINSIGHT_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CHAINSIGHT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Analyzer = AnalyzerConfig{
		APIKey:           v.GetString("analyzer.api_key"),
		Mode:             v.GetString("analyzer.mode"),
		DetailedModel:    v.GetString("analyzer.detailed_model"),
		LightweightModel: v.GetString("analyzer.lightweight_model"),
		PingModel:        v.GetString("analyzer.ping_model"),
		MaxTokens:        v.GetInt("analyzer.max_tokens"),
		Temperature:      v.GetFloat64("analyzer.temperature"),
		TimeoutSecs:      v.GetInt("analyzer.timeout_secs"),
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	return cfg, nil
}
