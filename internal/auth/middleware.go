package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextKeyUser  = "auth_user"
	ContextKeyToken = "auth_token"

	// Headers
	HeaderAuthorization = "Authorization"
)

// Middleware provides authentication middleware
type Middleware struct {
	tokenStore   *TokenStore
	sessionStore *SessionStore
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokenStore *TokenStore, sessionStore *SessionStore) *Middleware {
	return &Middleware{
		tokenStore:   tokenStore,
		sessionStore: sessionStore,
	}
}

// RequireToken returns a middleware that accepts either a bearer API token
// or an active console session cookie.
func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(HeaderAuthorization)
		if authHeader == "" {
			// No bearer token, fall back to the console session
			if user := m.userFromSession(c); user != nil {
				c.Set(ContextKeyUser, user)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization header format",
			})
			return
		}

		validated, err := m.tokenStore.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}

		c.Set(ContextKeyUser, validated.User)
		c.Set(ContextKeyToken, validated.Token)
		c.Next()
	}
}

// RequireSession returns a middleware that validates session cookies
func (m *Middleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := m.sessionStore.GetSessionFromCookie(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not authenticated",
			})
			return
		}

		user, err := m.sessionStore.GetUserFromSession(sessionID)
		if err != nil || user == nil {
			m.sessionStore.ClearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session expired or invalid",
			})
			return
		}

		if user.Status != StatusActive {
			m.sessionStore.ClearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("account is %s", user.Status),
			})
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

func (m *Middleware) userFromSession(c *gin.Context) *User {
	sessionID, err := m.sessionStore.GetSessionFromCookie(c)
	if err != nil {
		return nil
	}
	user, err := m.sessionStore.GetUserFromSession(sessionID)
	if err != nil || user == nil || user.Status != StatusActive {
		return nil
	}
	return user
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(c *gin.Context) *User {
	userVal, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := userVal.(*User)
	if !ok {
		return nil
	}
	return user
}

// GetTokenFromContext retrieves the validated token from the context
func GetTokenFromContext(c *gin.Context) *Token {
	tokenVal, exists := c.Get(ContextKeyToken)
	if !exists {
		return nil
	}
	token, ok := tokenVal.(*Token)
	if !ok {
		return nil
	}
	return token
}
