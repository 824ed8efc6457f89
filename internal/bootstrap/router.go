package bootstrap

import (
	"net/http"

	analysishttp "github.com/camel-tools-api/camel-api/internal/analysis/http"
	"github.com/camel-tools-api/camel-api/internal/analysis/service"
	httpapi "github.com/camel-tools-api/camel-api/internal/api/http"
	"github.com/camel-tools-api/camel-api/internal/api/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	LexiconSize int
	Cache       httpapi.Pinger
	Analysis    *service.AnalysisService
	Metrics     http.Handler
	Log         *zap.Logger

	APIKey         string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Log))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.LexiconSize, dep.Cache)
	healthHandler.RegisterRoutes(r)

	if dep.Metrics != nil {
		r.GET("/metrics", gin.WrapH(dep.Metrics))
	}

	api := r.Group("/")
	api.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))
	api.Use(middleware.APIKeyMiddleware(dep.APIKey))

	analysisHandler := analysishttp.New(dep.Analysis)
	analysisHandler.Register(api)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, middleware.RequestIDHeader, middleware.APIKeyHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
