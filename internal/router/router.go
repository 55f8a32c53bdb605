package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"bizdoc/internal/handler"
	"bizdoc/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	docH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))

	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.POST("/parse", docH.Parse)
	v1.POST("/analyze", docH.Analyze)
	v1.POST("/export", docH.Export)

	return r
}
