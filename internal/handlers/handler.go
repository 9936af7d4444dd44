package handlers

import (
	"taxi_dispatch/internal/logger"
	"taxi_dispatch/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Login is the only unauthenticated action besides health.
	router.POST("/auth/login", h.login)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Terminal-state stream for the map widget — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		api.GET("/state", h.getState)
		api.POST("/status", h.setStatus)
		api.GET("/status/options", h.statusOptions)
		api.GET("/history", h.getHistory)
		api.POST("/session/logout", h.logout)

		admin := api.Group("/admin", h.adminOnly)
		{
			admin.POST("/pin", h.changePin)
			admin.GET("/drivers", h.listDrivers)
		}
	}
}
