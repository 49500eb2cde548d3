package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/internal/presentation/http/dto/response"
	"github.com/sangkips/scango-api/pkg/apperror"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired requires an idempotency key on POST and replays the
// stored response when the same principal repeats the key. Reusing a key
// with a different body is rejected. The key is reserved before the handler
// runs, so a concurrent duplicate gets 409 instead of a second checkout.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		principalID := c.GetString(PrincipalIDKey)
		if principalID == "" {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Could not read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])
		ctx := c.Request.Context()

		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, principalID)
		if err != nil {
			response.Error(c, apperror.NewPersistenceError("Failed to check idempotency key", err))
			c.Abort()
			return
		}
		if existing != nil && existing.IsExpired() {
			if err := config.Repo.Release(ctx, existing.ID); err != nil {
				response.Error(c, apperror.NewPersistenceError("Failed to check idempotency key", err))
				c.Abort()
				return
			}
			existing = nil
		}
		if existing != nil {
			answerExisting(c, existing, requestHash)
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:         idempotencyKey,
			PrincipalID: principalID,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: requestHash,
			ExpiresAt:   time.Now().Add(IdempotencyKeyTTL),
		}
		reserved, err := config.Repo.Reserve(ctx, ikey)
		if err != nil {
			response.Error(c, apperror.NewPersistenceError("Failed to reserve idempotency key", err))
			c.Abort()
			return
		}
		if !reserved {
			// another request took the key between the read and the insert
			response.Error(c, errKeyInFlight)
			c.Abort()
			return
		}

		// Capture the response
		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// the outcome is recorded even if the client went away
		done := context.WithoutCancel(ctx)
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			err = config.Repo.Complete(done, ikey.ID, status, blw.body.String())
		} else {
			// failed requests free the key for a retry
			err = config.Repo.Release(done, ikey.ID)
		}
		if err != nil && config.Logger != nil {
			config.Logger.Warn("failed to settle idempotency key", zap.String("endpoint", ikey.Endpoint), zap.Error(err))
		}
	}
}

var errKeyInFlight = &apperror.AppError{
	Code:    http.StatusConflict,
	Kind:    apperror.KindBusy,
	Message: "A request with this Idempotency-Key is still being processed",
}

func answerExisting(c *gin.Context, existing *entity.IdempotencyKey, requestHash string) {
	defer c.Abort()
	switch {
	case existing.RequestHash != "" && existing.RequestHash != requestHash:
		response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request")
	case existing.IsPending():
		response.Error(c, errKeyInFlight)
	default:
		c.Header(IdempotencyReplayedHeader, "true")
		c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
	}
}
