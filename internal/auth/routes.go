package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all auth-related routes
func RegisterRoutes(
	router *gin.RouterGroup,
	handler *Handler,
	middleware *Middleware,
) {
	auth := router.Group("/auth")
	{
		// Public OAuth routes
		auth.GET("/login/:provider", handler.Login)
		auth.GET("/callback/:provider", handler.Callback)

		// Session-protected routes
		sessionProtected := auth.Group("")
		sessionProtected.Use(middleware.RequireSession())
		{
			sessionProtected.GET("/me", handler.Me)
			sessionProtected.GET("/logout", handler.Logout)

			// Token management
			sessionProtected.GET("/tokens", handler.ListTokens)
			sessionProtected.POST("/tokens", handler.CreateToken)
			sessionProtected.DELETE("/tokens/:id", handler.RevokeToken)
		}
	}
}
