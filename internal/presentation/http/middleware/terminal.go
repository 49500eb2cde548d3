package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/application/service"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
)

const (
	// TerminalIDHeader identifies the physical staff device
	TerminalIDHeader = "X-Terminal-ID"
	// TerminalIDKey is the context key for the resolved terminal
	TerminalIDKey = "terminal_id"
)

// TerminalMiddleware resolves which terminal a staff request comes from.
// Without the header each employee counts as one terminal.
func TerminalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := strings.TrimSpace(c.GetHeader(TerminalIDHeader))
		if terminalID == "" {
			terminalID = "emp:" + c.GetString(PrincipalIDKey)
		}
		c.Set(TerminalIDKey, terminalID)
		c.Next()
	}
}

// GetTerminalID returns the terminal resolved by TerminalMiddleware
func GetTerminalID(c *gin.Context) string {
	return c.GetString(TerminalIDKey)
}

// SingleScan rejects a scan while the same terminal is still processing another
func SingleScan(guard *service.TerminalGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		release, err := guard.Acquire(GetTerminalID(c))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		defer release()

		c.Next()
	}
}
