package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// IdentityMessage is the body of GET /.
const IdentityMessage = "API for non-python applications"

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Models    string    `json:"models"`
	Cache     string    `json:"cache,omitempty"`
}

// Pinger is satisfied by the result cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	version     string
	lexiconSize int
	cache       Pinger
}

// NewHealthHandler reports the lexicon as loaded when lexiconSize > 0. cache
// may be nil.
func NewHealthHandler(serviceName, version string, lexiconSize int, cache Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		lexiconSize: lexiconSize,
		cache:       cache,
	}
}

func (h *HealthHandler) Identity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"camel_tools": IdentityMessage})
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	models := "empty"
	if h.lexiconSize > 0 {
		models = "loaded"
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.cache.Ping(pingCtx); err != nil {
			cacheStatus = "down"
		} else {
			cacheStatus = "up"
		}
	}

	status := "healthy"
	if models != "loaded" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Models:    models,
		Cache:     cacheStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Identity)
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
