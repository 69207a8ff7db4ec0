package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/TakeshiImakurusu/contract-management-system/config"
	"github.com/TakeshiImakurusu/contract-management-system/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims for a back-office operator. An empty
// KentemScope means the operator may see every tenant.
type Claims struct {
	Username    string `json:"username"`
	KentemScope string `json:"kentem_scope,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken generates a new JWT token for an operator
func GenerateToken(username, kentemScope string, cfg *config.AuthConfig) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.TokenExpireHours) * time.Hour)

	claims := Claims{
		Username:    username,
		KentemScope: kentemScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// AuthMiddleware validates JWT token and extracts operator info
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Store operator info in gin context
		c.Set("username", claims.Username)
		c.Set("kentem_scope", claims.KentemScope)

		// Propagate to the request context so the logger picks it up
		ctx := context.WithValue(c.Request.Context(), logger.UsernameKey, claims.Username)
		if claims.KentemScope != "" {
			ctx = context.WithValue(ctx, logger.KentemIDKey, claims.KentemScope)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUsername gets the username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		return username.(string)
	}
	return ""
}

// GetKentemScope gets the operator's tenant scope from context
func GetKentemScope(c *gin.Context) string {
	if scope, exists := c.Get("kentem_scope"); exists {
		return scope.(string)
	}
	return ""
}
