package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/choir-api/internal/domain/entity"
	apperrors "github.com/yourusername/choir-api/internal/pkg/errors"
	"github.com/yourusername/choir-api/pkg/auth"
)

// Context keys set by RequireAuth.
const (
	ContextMemberID  = "member_id"
	ContextStudentID = "student_id"
	ContextRole      = "role"
)

// AuthMiddleware guards protected routes with bearer token auth.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireAuth validates the Authorization header and puts the member
// identity on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "error_type": "token_missing"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}", "error_type": "token_format"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, apperrors.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired", "error_type": "token_expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "error_type": "token_invalid"})
			}
			c.Abort()
			return
		}

		c.Set(ContextMemberID, claims.MemberID)
		c.Set(ContextStudentID, claims.StudentID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows only the listed roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
			c.Abort()
			return
		}

		current := role.(string)
		for _, allowed := range roles {
			if current == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions", "error_type": "forbidden"})
		c.Abort()
	}
}

// RequireStaff is shorthand for moderators and admins.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return m.RequireRole(entity.RoleModerator, entity.RoleAdmin)
}

// RequireAdmin allows only admins.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)
}

// MemberIDFromContext returns the authenticated member's ID.
func MemberIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextMemberID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// RoleFromContext returns the authenticated member's role.
func RoleFromContext(c *gin.Context) string {
	value, exists := c.Get(ContextRole)
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}
