package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/domain/enum"
	infraRepo "github.com/sangkips/scango-api/internal/infrastructure/repository"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
	"github.com/sangkips/scango-api/pkg/utils"
)

// Context keys set by AuthMiddleware
const (
	PrincipalIDKey   = "principal_id"
	PrincipalKindKey = "principal_kind"
	PrincipalNameKey = "principal_name"
	EmployeeRoleKey  = "employee_role"
	CustomerPhoneKey = "customer_phone"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(PrincipalIDKey, claims.Subject)
		c.Set(PrincipalKindKey, claims.Kind)
		c.Set(PrincipalNameKey, claims.Name)

		switch claims.Kind {
		case utils.PrincipalEmployee:
			c.Set(EmployeeRoleKey, enum.EmployeeRole(claims.Role))
		case utils.PrincipalCustomer:
			c.Set(CustomerPhoneKey, claims.Phone)
			c.Request = c.Request.WithContext(infraRepo.WithCustomer(c.Request.Context(), claims.Subject))
		}

		c.Next()
	}
}

// RequireCustomer only lets customer sessions through
func RequireCustomer() gin.HandlerFunc {
	return requireKind(utils.PrincipalCustomer, "This action is only available to customers")
}

// RequireEmployee only lets staff sessions through
func RequireEmployee() gin.HandlerFunc {
	return requireKind(utils.PrincipalEmployee, "This action is only available to staff")
}

func requireKind(kind, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(PrincipalKindKey) != kind {
			response.Forbidden(c, message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given staff roles
func RequireRole(roles ...enum.EmployeeRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(EmployeeRoleKey)
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		role, ok := value.(enum.EmployeeRole)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Your role cannot use this terminal mode")
		c.Abort()
	}
}
