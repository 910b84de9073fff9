package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint on the router.
func SetupRoutes(router *gin.Engine, h *Handlers) {
	// Health check endpoint
	router.GET("/health", h.healthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Manual pipeline triggers
		admin := v1.Group("/admin")
		{
			admin.POST("/update", h.triggerDailyUpdate)
			admin.POST("/matchups", h.triggerMatchups)
			admin.POST("/projections", h.triggerProjections)
			admin.POST("/pipeline", h.triggerFullPipeline)
			admin.GET("/scheduler", h.schedulerStatus)
		}

		// Slate intake
		v1.POST("/slate", h.uploadSlate)

		// Result reads
		v1.GET("/projections", h.getProjections)
		v1.GET("/matchups", h.getMatchups)
	}
}
