package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sjperalta/cabinet-api/internal/access"
)

const (
	roleKey   = "role"
	claimsKey = "claims"
)

// Claims represents the JWT claims structure
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Revocations knows which tokens were ended by a logout
type Revocations interface {
	Revoked(tokenID string) bool
}

// Auth returns a middleware that validates JWT tokens. A nil revocations accepts every valid token.
func Auth(jwtSecret string, revocations Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""

		if authHeader == "" {
			// Check query param for download links
			tokenString = c.Query("token")
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Not logged in",
				})
				return
			}
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization header format",
				})
				return
			}
			tokenString = parts[1]
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			return
		}

		if revocations != nil && claims.ID != "" && revocations.Revoked(claims.ID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session has ended",
			})
			return
		}

		c.Set(roleKey, claims.Role)
		c.Set(claimsKey, claims)

		c.Next()
	}
}

// validateToken parses and validates a JWT token string
func validateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("session has expired")
		}
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role == "" {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// GetIdentity returns the role session of the request. Without Auth it is anonymous.
func GetIdentity(c *gin.Context) access.Identity {
	role, exists := c.Get(roleKey)
	if !exists {
		return access.Anonymous()
	}
	return access.AsRole(role.(string))
}

// RequireRole returns a middleware that requires specific roles
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c).Is(allowedRoles...) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized",
		})
	}
}

// GetClaims returns the token claims of the current session, or nil outside Auth
func GetClaims(c *gin.Context) *Claims {
	claims, _ := c.Get(claimsKey)
	typed, _ := claims.(*Claims)
	return typed
}
