package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"commerce-service/internal/models"
)

// identityClaims are the identity provider's token claims we consume
type identityClaims struct {
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// resolveIdentity maps the bearer token to a durable user identity and sets
// userId/userName/userEmail in the gin context. During migration the
// X-User-ID header from the auth gateway is accepted as a fallback.
func resolveIdentity(c *gin.Context, jwtSecret string) bool {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &identityClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err == nil && token.Valid && claims.Subject != "" {
			c.Set("userId", claims.Subject)
			c.Set("userFirstName", claims.FirstName)
			c.Set("userLastName", claims.LastName)
			c.Set("userEmail", claims.Email)
			return true
		}
	}

	if legacyID := c.GetHeader("X-User-ID"); legacyID != "" {
		c.Set("userId", legacyID)
		return true
	}

	return false
}

// RequireAuth rejects requests without a resolvable identity
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !resolveIdentity(c, jwtSecret) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "UNAUTHORIZED",
					Message: "Authentication required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves identity when present but never rejects. Handlers
// behind it see an empty userId for anonymous callers.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolveIdentity(c, jwtSecret)
		c.Next()
	}
}

// RequireAdmin gates elevated-trust operations on the admin API key
func RequireAdmin(adminAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminAPIKey == "" || c.GetHeader("X-Admin-Key") != adminAPIKey {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "UNAUTHORIZED",
					Message: "Admin credentials required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
