package middleware

import (
	"strings"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/application/service"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// SessionKey is the gin context key holding the resolved *entity.Session.
const SessionKey = "session"

// AuthMiddleware resolves the bearer token to a live session and attaches the
// session's backend token to the request context. fallback names the login
// screen to send the client to when no session can be resolved.
func AuthMiddleware(auth *service.AuthService, fallback enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(response.LoginRouteKey, fallback.LoginRoute())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		session, err := auth.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		c.Set(response.LoginRouteKey, session.LoginRoute())
		ctx := backend.WithToken(c.Request.Context(), session.Token)
		ctx = backend.WithSessionID(ctx, session.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSession returns the session resolved by AuthMiddleware.
func GetSession(c *gin.Context) *entity.Session {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	session, _ := v.(*entity.Session)
	return session
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		if !lo.Contains(roles, session.User.Role) {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff admits admins and cashiers.
func RequireStaff() gin.HandlerFunc {
	return RequireRole(enum.UserRoleAdmin, enum.UserRoleCashier)
}
