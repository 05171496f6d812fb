package stockalert

import (
	"canteen-api/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	alerts := rg.Group("/stock-alerts")
	alerts.Use(authMiddleware.RequireToken())
	{
		alerts.GET("", h.GetAlerts)
		alerts.GET("/report", h.GetReport)
		alerts.GET("/status", h.GetStatus)
		alerts.POST("/dismiss", h.PostDismiss)
		alerts.PUT("/config", h.PutConfig)
	}
}
