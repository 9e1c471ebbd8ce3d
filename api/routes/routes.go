package routes

import (
	"log/slog"

	"github.com/devevent/devevent-backend/internal/config"
	"github.com/devevent/devevent-backend/internal/handlers"
	"github.com/devevent/devevent-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds the handlers used by the router
type HandlerDependencies struct {
	EventHandler   *handlers.EventHandler
	BookingHandler *handlers.BookingHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, logger *slog.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		events := api.Group("/events")
		{
			events.GET("", deps.EventHandler.ListEvents)
			events.POST("", deps.EventHandler.CreateEvent)
			events.GET("/:slug", deps.EventHandler.GetEventBySlug)
			events.GET("/:slug/similar", deps.EventHandler.GetSimilarEvents)
			events.PATCH("/:slug", deps.EventHandler.UpdateEvent)
		}

		api.POST("/bookings", deps.BookingHandler.CreateBooking)
	}

	return router
}
