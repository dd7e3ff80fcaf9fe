package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chainsight/internal/config"
)

// DebugHandler exposes a credential diagnostic for non-production
// environments. It reports whether the completion API key is present and
// plausibly shaped without ever revealing it.
type DebugHandler struct {
	cfg *config.Config
}

// NewDebugHandler creates a new DebugHandler.
func NewDebugHandler(cfg *config.Config) *DebugHandler {
	return &DebugHandler{cfg: cfg}
}

// Env handles GET /api/v1/debug/env
func (h *DebugHandler) Env(c *gin.Context) {
	key := h.cfg.Analyzer.APIKey

	prefix := ""
	if len(key) >= 7 {
		prefix = key[:7] + "..."
	} else if key != "" {
		prefix = "..."
	}

	c.JSON(http.StatusOK, gin.H{
		"environment": h.cfg.Server.Environment,
		"apiKeySet":   key != "",
		"apiKeyLen":   len(key),
		"apiKeyHint":  prefix,
		"mode":        h.cfg.Analyzer.Mode,
		"model":       h.cfg.Analyzer.ModelForMode(),
	})
}
