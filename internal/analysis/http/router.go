package http

import "github.com/gin-gonic/gin"

// Register registers the analysis routes
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST("/camel_tools", h.Analyze)
	rg.POST("/camel_tools/batch", h.AnalyzeBatch)
	rg.GET("/camel_tools/operations", h.ListOperations)
}
