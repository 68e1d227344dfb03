package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AllowOrigins enables CORS for browser dashboards served from other origins.
// Call before InitRoutes; "*" allows any origin.
func (h *Handler) AllowOrigins(origins ...string) *Handler {
	h.corsOrigins = append(h.corsOrigins, origins...)
	return h
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range h.corsOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = h.corsOrigins
	return cors.New(cfg)
}
