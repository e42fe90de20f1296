// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gurukulpustakalaya/backend/internal/i18n"
	"github.com/gurukulpustakalaya/backend/internal/models"
	"github.com/gurukulpustakalaya/backend/internal/services"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLang(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthTokenExpired),
			})
			c.Abort()
			return
		}

		// The token identifies the user and nothing more. Role and
		// profile are loaded from the store by ProfileRequired.
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// ProfileRequired loads the caller's profile row and stores it in the
// request context. Runs after AuthRequired.
func ProfileRequired(profiles *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLang(c)

		userID, err := ContextUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		profile, err := profiles.GetProfileByUserID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyProfileNotFound),
			})
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}

// AdminRequired gates a route behind administrator capability. The role is
// re-read from the profiles table on every request; a token captured
// before a demotion grants nothing.
func AdminRequired(profiles *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := requestLang(c)

		userID, err := ContextUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(lang, i18n.KeyAuthRequired),
			})
			c.Abort()
			return
		}

		profile, err := profiles.GetProfileByUserID(userID)
		if err != nil || !profile.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": i18n.T(lang, i18n.KeyAdminAccessDenied),
			})
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}

func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// ContextUserID extracts the authenticated user id set by AuthRequired.
func ContextUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, utils.ErrNotAuthenticated
	}
	id, ok := raw.(string)
	if !ok {
		return uuid.Nil, utils.ErrNotAuthenticated
	}
	return uuid.Parse(id)
}

// ContextProfile extracts the profile loaded by ProfileRequired or
// AdminRequired.
func ContextProfile(c *gin.Context) (*models.Profile, bool) {
	raw, exists := c.Get("profile")
	if !exists {
		return nil, false
	}
	profile, ok := raw.(*models.Profile)
	return profile, ok
}

func requestLang(c *gin.Context) string {
	lang := c.GetHeader("Accept-Language")
	if lang == "" {
		return "en"
	}
	return lang
}
