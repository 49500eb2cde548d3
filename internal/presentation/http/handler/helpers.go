package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/internal/presentation/http/middleware"
)

// GetPrincipalID extracts the signed-in customer or employee ID from the Gin context
func GetPrincipalID(c *gin.Context) string {
	return c.GetString(middleware.PrincipalIDKey)
}

// GetPrincipalName extracts the signed-in display name from the Gin context
func GetPrincipalName(c *gin.Context) string {
	return c.GetString(middleware.PrincipalNameKey)
}

// GetEmployeeRole extracts the staff role from the Gin context
func GetEmployeeRole(c *gin.Context) enum.EmployeeRole {
	value, exists := c.Get(middleware.EmployeeRoleKey)
	if !exists {
		return ""
	}
	role, _ := value.(enum.EmployeeRole)
	return role
}
