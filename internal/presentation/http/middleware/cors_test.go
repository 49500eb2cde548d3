package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMergeHeaders(t *testing.T) {
	got := mergeHeaders([]string{"Authorization", "X-Terminal-ID"}, []string{"authorization", " X-Store-Hint ", ""})
	assert.Equal(t, []string{"Authorization", "X-Terminal-ID", "X-Store-Hint"}, got)
}

func TestCORSMiddleware_AllowsApiHeadersWithCustomList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware(&config.CORSConfig{
		AllowedOrigins: []string{"https://pos.example.com"},
		AllowedHeaders: []string{"X-Custom"},
	}))
	router.POST("/api/v1/staff/lookup", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/staff/lookup", nil)
	req.Header.Set("Origin", "https://pos.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "x-terminal-id,idempotency-key,x-custom")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://pos.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	for _, h := range []string{"x-terminal-id", "idempotency-key", "x-custom"} {
		assert.Contains(t, allowed, h)
	}
}

func TestCORSMiddleware_RejectsUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware(&config.CORSConfig{AllowedOrigins: []string{"https://pos.example.com"}}))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
