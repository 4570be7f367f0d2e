package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/bulk-edit", h.BulkEdit)
		api.POST("/products/search", h.SearchProducts)
		api.GET("/batches", h.ListBatches)
	}
}
