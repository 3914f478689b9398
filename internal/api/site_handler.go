package api

import (
	"net/http"

	"github.com/blog-post-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SiteHandler serves the static site configuration
type SiteHandler struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(cfg *config.Config, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		cfg: cfg,
		log: log.With().Str("handler", "site").Logger(),
	}
}

// GetConfig handles GET /api/config. The snapshot is captured at
// process start; no database access is involved.
func (h *SiteHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.Site)
}
