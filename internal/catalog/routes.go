package catalog

import (
	"canteen-api/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	items := rg.Group("/items")
	items.Use(authMiddleware.RequireToken())
	{
		items.GET("", h.GetItems)
		items.POST("", h.PostItem)
		items.GET("/export", h.GetExport)
		items.POST("/enable-all", h.PostEnableAll)
		items.POST("/disable-all", h.PostDisableAll)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.PatchItem)
		items.DELETE("/:id", h.DeleteItem)
		items.PUT("/:id/stock", h.PutStock)
		items.PUT("/:id/enabled", h.PutEnabled)
	}

	stats := rg.Group("/stats")
	stats.Use(authMiddleware.RequireToken())
	{
		stats.GET("", h.GetStats)
	}
}
