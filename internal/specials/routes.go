package specials

import (
	"canteen-api/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	sp := rg.Group("/specials")
	sp.Use(authMiddleware.RequireToken())
	{
		sp.GET("", h.GetSchedule)
		sp.GET("/today", h.GetToday)
		sp.GET("/report", h.GetReport)
		sp.PUT("/:day", h.PutDay)
		sp.POST("/:day/items", h.PostDayItem)
		sp.DELETE("/:day/items/:id", h.DeleteDayItem)
	}
}
