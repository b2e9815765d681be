package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/vivekvardhan78/JalRakshak/internal/domain/services"
	"github.com/vivekvardhan78/JalRakshak/internal/infrastructure/config"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware wires the JWT service used by the auth middleware.
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// extractToken strips an optional "Bearer " prefix.
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": message,
		"data":    nil,
	})
	c.Abort()
}

func forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{
		"code":    403,
		"message": message,
		"data":    nil,
	})
	c.Abort()
}

// authenticate validates the token and hands back its claims, or writes the
// failure response and returns nil.
func authenticate(c *gin.Context) jwt.MapClaims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		unauthorized(c, "Authorization header is required")
		return nil
	}

	tokenString := extractToken(authHeader)
	token, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		unauthorized(c, "Invalid token: "+err.Error())
		return nil
	}
	if !token.Valid {
		unauthorized(c, "Invalid token")
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		unauthorized(c, "Invalid token claims")
		return nil
	}
	return claims
}

func storeClaims(c *gin.Context, claims jwt.MapClaims, role string) {
	c.Set("userID", claims["user_id"])
	c.Set("role", role)
	c.Set("claims", claims)
}

// AuthenticateAdmin allows only utility admins.
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := authenticate(c)
		if claims == nil {
			return
		}

		role, exists := claims["role"].(string)
		if !exists || role != "admin" {
			forbidden(c, "Insufficient permissions: requires admin role")
			return
		}

		storeClaims(c, claims, role)
		c.Next()
	}
}

// AuthenticateStaff allows field staff. Admins also pass.
func AuthenticateStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := authenticate(c)
		if claims == nil {
			return
		}

		role, exists := claims["role"].(string)
		if !exists || (role != "staff" && role != "admin") {
			forbidden(c, "Insufficient permissions: requires staff role")
			return
		}

		storeClaims(c, claims, role)
		c.Next()
	}
}

// AuthenticateUser allows any valid account, citizens included.
func AuthenticateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := authenticate(c)
		if claims == nil {
			return
		}

		role, exists := claims["role"].(string)
		if !exists || (role != "citizen" && role != "staff" && role != "admin") {
			forbidden(c, "Insufficient permissions: requires valid user role")
			return
		}

		storeClaims(c, claims, role)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID stored by the middleware.
func CurrentUserID(c *gin.Context) uint {
	raw, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return uint(v)
	case uint:
		return v
	case int:
		return uint(v)
	}
	return 0
}

// CurrentUserRole returns the authenticated role stored by the middleware.
func CurrentUserRole(c *gin.Context) string {
	role, _ := c.Get("role")
	if s, ok := role.(string); ok {
		return s
	}
	return ""
}
