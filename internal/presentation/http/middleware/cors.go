package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/config"
)

// Request headers the API reads. Browsers must be allowed to send them
// whatever CORS_ALLOWED_HEADERS says.
var apiRequestHeaders = []string{
	"Accept",
	"Origin",
	"Content-Type",
	"Authorization",
	RequestIDHeader,
	IdempotencyKeyHeader,
	TerminalIDHeader,
}

// Response headers the terminals and the shopper app read back
var apiResponseHeaders = []string{
	"Content-Length",
	"Content-Type",
	RequestIDHeader,
	IdempotencyReplayedHeader,
	RateLimitLimitHeader,
	RateLimitRemainingHeader,
	RetryAfterHeader,
}

var apiMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CORSMiddleware builds the CORS policy. Configured origins and methods
// replace the defaults; configured headers are added to the ones the API needs.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     mergeHeaders(apiRequestHeaders, cfg.AllowedHeaders),
		ExposeHeaders:    apiResponseHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
		}
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = apiMethods
	}

	return cors.New(corsConfig)
}

// mergeHeaders appends extra to base, skipping case-insensitive duplicates and blanks
func mergeHeaders(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, h := range append(append([]string{}, base...), extra...) {
		h = strings.TrimSpace(h)
		key := http.CanonicalHeaderKey(h)
		if h == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}
