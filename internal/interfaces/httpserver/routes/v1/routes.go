package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadreads/nomadreads-server/internal/config"
	"github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers  *handlers.Provider
	rateLimit gin.HandlerFunc
}

// NewRoutes builds the v1 route registrar. rateLimit guards the model-backed endpoints.
func NewRoutes(handlerProvider *handlers.Provider, rateLimit gin.HandlerFunc) *Routes {
	return &Routes{
		handlers:  handlerProvider,
		rateLimit: rateLimit,
	}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	group := engine.Group("/v1")
	group.GET("/version", getVersion)
	registerRecommendRoutes(group, r.handlers.Recommend, r.rateLimit)
}

func getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}
