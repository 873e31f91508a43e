package routes

import (
	"net/http"
	"time"

	"bobbystable/config"
	"bobbystable/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAgentRoutes registers the voice-platform turn endpoint.
func RegisterAgentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/intent", hb.HandleTurn)
	}
}

// RegisterDashboardRoutes registers the read-only dashboard endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/reservations", hb.GetReservations)
		api.GET("/availability/:date", hb.GetAvailability)
		api.GET("/config", hb.GetConfig)
		api.GET("/events", hb.StreamEvents)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "agent": config.AppConfig.RestaurantName})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAgentRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterHealthRoute(r)
}
