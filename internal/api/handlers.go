package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-vocab/internal/config"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host": cfg.Server.Host,
				"port": cfg.Server.Port,
			},
			"study": gin.H{
				"default_limit": cfg.Study.DefaultLimit,
				"max_limit":     cfg.Study.MaxLimit,
			},
			"uploads": gin.H{
				"max_mb": cfg.Uploads.MaxMB,
			},
		})
	}
}
