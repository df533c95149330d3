package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver/handlers"
)

// Only POST is registered on /recommend; every other verb falls through to the engine's 405 handler.
func registerRecommendRoutes(router gin.IRouter, handler *handlers.RecommendHandler, rateLimit gin.HandlerFunc) {
	router.POST("/recommend", rateLimit, handler.PostRecommend)
	router.GET("/recommend/schema", handler.GetSchema)
}
